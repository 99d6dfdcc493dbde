package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/time/rate"

	"github.com/bastiangx/spellserve/internal/logger"
	"github.com/bastiangx/spellserve/pkg/checker"
)

const maxWordLength = 60

var log = logger.New("ipc")

// Server handles the IPC for spell checking
type Server struct {
	checker *checker.Checker
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	limiter *rate.Limiter
}

// NewServer creates a new spell check server using stdin/stdout for IPC
func NewServer(chk *checker.Checker, requestsPerSec float64, burst int) *Server {
	return newServer(chk, os.Stdin, os.Stdout, requestsPerSec, burst)
}

func newServer(chk *checker.Checker, r io.Reader, w io.Writer, requestsPerSec float64, burst int) *Server {
	if requestsPerSec <= 0 {
		requestsPerSec = 200
	}
	if burst < 1 {
		burst = 1
	}
	return &Server{
		checker: chk,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), burst),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	// Signal that the server is ready
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches an incoming request by op
func (s *Server) handleRequest(request Request) {
	if !s.limiter.Allow() {
		s.sendError(request.ID, "Too many requests", 429)
		log.Debugf("Rate limited request %s", request.ID)
		return
	}

	switch request.Op {
	case "check":
		s.handleCheck(request)
	case "suggest":
		s.handleSuggest(request)
	case "check_text":
		s.handleCheckText(request)
	case "add":
		s.handleAdd(request)
	case "remove":
		s.handleRemove(request)
	case "stats":
		s.handleStats(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// sendResponse encodes the given response as msgpack and writes it to
// the client.
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

// validWord checks the shared word constraints for single-word ops and
// reports the failure to the client itself.
func (s *Server) validWord(request Request) bool {
	if request.Word == "" {
		s.sendError(request.ID, "Missing 'w' parameter", 400)
		log.Debug("Word is empty in request")
		return false
	}
	if len(request.Word) > maxWordLength {
		s.sendError(request.ID, fmt.Sprintf("Word exceeds maximum length of %d characters", maxWordLength), 400)
		log.Debug("Word is too long in request")
		return false
	}
	return true
}

// handleCheck answers whether a word is correct, with corrections when
// it is not.
func (s *Server) handleCheck(request Request) {
	if !s.validWord(request) {
		return
	}

	start := time.Now()
	correct := s.checker.IsCorrect(request.Word)
	var suggestions []string
	if !correct {
		suggestions = s.capped(s.checker.Suggestions(request.Word), request.Limit)
	}
	elapsed := time.Since(start)

	s.sendResponse(CheckResponse{
		ID:          request.ID,
		Correct:     correct,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleSuggest returns corrections regardless of whether the word is
// already known.
func (s *Server) handleSuggest(request Request) {
	if !s.validWord(request) {
		return
	}

	start := time.Now()
	suggestions := s.capped(s.checker.Suggestions(request.Word), request.Limit)
	elapsed := time.Since(start)

	s.sendResponse(CheckResponse{
		ID:          request.ID,
		Correct:     s.checker.IsCorrect(request.Word),
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleCheckText spell checks a whole text and reports misspellings
// with positions.
func (s *Server) handleCheckText(request Request) {
	if request.Text == "" {
		s.sendError(request.ID, "Missing 'x' parameter", 400)
		log.Debug("Text is empty in request")
		return
	}

	start := time.Now()
	missing := s.checker.CheckText(request.Text)
	elapsed := time.Since(start)

	matches := make([]TextMatch, len(missing))
	for i, m := range missing {
		matches[i] = TextMatch{
			Word:   m.Word,
			Line:   m.Line,
			Column: m.Column,
			Offset: m.Offset,
		}
	}

	s.sendResponse(TextResponse{
		ID:        request.ID,
		Matches:   matches,
		Count:     len(matches),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleAdd inserts a word into the dictionary
func (s *Server) handleAdd(request Request) {
	if !s.validWord(request) {
		return
	}

	if request.Frequency > 0 {
		s.checker.AddWordWithFrequency(request.Word, request.Frequency)
	} else {
		s.checker.AddWord(request.Word)
	}
	s.sendResponse(StatusResponse{ID: request.ID, Status: "added"})
}

// handleRemove removes a word from the dictionary
func (s *Server) handleRemove(request Request) {
	if !s.validWord(request) {
		return
	}

	if s.checker.RemoveWord(request.Word) {
		s.sendResponse(StatusResponse{ID: request.ID, Status: "removed"})
		return
	}
	s.sendError(request.ID, fmt.Sprintf("Word not found: %s", request.Word), 404)
}

// handleStats reports dictionary size statistics
func (s *Server) handleStats(request Request) {
	stats := s.checker.Stats()
	s.sendResponse(StatsResponse{
		ID:          request.ID,
		WordCount:   stats.WordCount,
		MemoryBytes: stats.MemoryBytes,
	})
}

// capped trims suggestions to the client-requested limit
func (s *Server) capped(suggestions []string, limit int) []string {
	if limit > 0 && len(suggestions) > limit {
		return suggestions[:limit]
	}
	return suggestions
}
