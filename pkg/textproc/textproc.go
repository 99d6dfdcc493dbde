/*
Package textproc turns raw text into normalized word tokens with
source positions.

The processor splits text into whitespace-delimited chunks, discards
chunks that classify as URLs, emails or numbers, and segments the
remainder into words. Tokens that are too short or contain anything
besides letters and apostrophes are dropped before they ever reach the
dictionary, so the index and suggestion engine only see plausible word
candidates.
*/
package textproc

import (
	"regexp"
	"strings"

	"github.com/blevesearch/segment"
	"github.com/charmbracelet/log"
)

// Tokens shorter than this are never spell checked.
const minTokenLen = 3

// Token is a word candidate with its position in the source text.
// Line and Column are 1-based; Offset is the byte offset of the token
// in the original text.
type Token struct {
	Text   string
	Line   int
	Column int
	Offset int
}

var (
	urlRE    = regexp.MustCompile(`^(https?://\S+|www\.\S+|[a-zA-Z0-9][a-zA-Z0-9-]*\.[a-zA-Z]{2,}\S*)$`)
	emailRE  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	numberRE = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Processor extracts and classifies word tokens. The zero value is not
// usable; construct with NewProcessor.
type Processor struct {
	caseSensitive bool
	ignoreURLs    bool
	ignoreEmails  bool
	ignoreNumbers bool
}

// NewProcessor returns a processor that skips URLs, emails and
// numbers and lowercases extracted tokens.
func NewProcessor() *Processor {
	return &Processor{
		ignoreURLs:    true,
		ignoreEmails:  true,
		ignoreNumbers: true,
	}
}

// SetCaseSensitive controls whether extracted tokens keep their
// original casing.
func (p *Processor) SetCaseSensitive(v bool) { p.caseSensitive = v }

// SetIgnoreURLs controls URL chunk filtering.
func (p *Processor) SetIgnoreURLs(v bool) { p.ignoreURLs = v }

// SetIgnoreEmails controls email chunk filtering.
func (p *Processor) SetIgnoreEmails(v bool) { p.ignoreEmails = v }

// SetIgnoreNumbers controls numeric chunk filtering.
func (p *Processor) SetIgnoreNumbers(v bool) { p.ignoreNumbers = v }

// Tokens extracts word tokens from text with line, column and offset
// positions.
func (p *Processor) Tokens(text string) []Token {
	var tokens []Token

	line, col := 1, 1
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '\n' {
			line++
			col = 1
			i++
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' {
			col++
			i++
			continue
		}

		start, startCol := i, col
		for i < len(text) && text[i] != ' ' && text[i] != '\t' && text[i] != '\r' && text[i] != '\n' {
			i++
			col++
		}
		tokens = p.appendChunkTokens(tokens, text[start:i], line, startCol, start)
	}
	return tokens
}

// Normalize returns the token form of word: lowercased unless the
// processor is case sensitive.
func (p *Processor) Normalize(word string) string {
	if p.caseSensitive {
		return word
	}
	return strings.ToLower(word)
}

// ShouldIgnore reports whether a standalone word is outside the spell
// checker's business: URLs, emails, numbers, short tokens and
// non-alphabetic strings.
func (p *Processor) ShouldIgnore(word string) bool {
	if word == "" {
		return true
	}
	return p.ignoreChunk(word) || p.ignoreWord(word)
}

// CountWords returns the number of tokens Tokens would produce.
func (p *Processor) CountWords(text string) int {
	return len(p.Tokens(text))
}

// appendChunkTokens segments one whitespace-delimited chunk and
// appends its surviving word tokens.
func (p *Processor) appendChunkTokens(tokens []Token, chunk string, line, col, offset int) []Token {
	if p.ignoreChunk(chunk) {
		return tokens
	}

	seg := segment.NewWordSegmenterDirect([]byte(chunk))
	pos := 0
	for seg.Segment() {
		piece := seg.Text()
		rel := pos
		pos += len(piece)

		if seg.Type() != segment.Letter {
			continue
		}
		if p.ignoreWord(piece) {
			continue
		}
		tokens = append(tokens, Token{
			Text:   p.Normalize(piece),
			Line:   line,
			Column: col + rel,
			Offset: offset + rel,
		})
	}
	if err := seg.Err(); err != nil {
		// Cannot happen with direct byte segmentation, but the API
		// reports it and silence would hide real bugs.
		log.Errorf("segmenting %q: %v", chunk, err)
	}
	return tokens
}

// ignoreChunk classifies a whitespace-delimited chunk before
// segmentation. Trailing punctuation is stripped first so "see
// www.example.com." still classifies as a URL.
func (p *Processor) ignoreChunk(chunk string) bool {
	trimmed := strings.Trim(chunk, `.,;:!?()[]"'`)
	if trimmed == "" {
		return false
	}
	if p.ignoreURLs && urlRE.MatchString(trimmed) {
		return true
	}
	if p.ignoreEmails && emailRE.MatchString(trimmed) {
		return true
	}
	if p.ignoreNumbers && numberRE.MatchString(trimmed) {
		return true
	}
	return false
}

// ignoreWord drops tokens the checker should not second-guess: short
// words and anything with characters outside letters and apostrophes.
func (p *Processor) ignoreWord(word string) bool {
	if len(word) < minTokenLen {
		return true
	}
	for _, r := range word {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isLetter && r != '\'' {
			return true
		}
	}
	return false
}
