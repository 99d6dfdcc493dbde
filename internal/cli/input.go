// Package cli handles cmd line input and spell checking for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/checker"
	"github.com/charmbracelet/log"
)

// InputHandler processes user input from stdin, checking words and
// offering corrections. Plain input is treated as a word to check;
// commands prefixed with a colon manage the dictionary.
type InputHandler struct {
	checker      *checker.Checker
	dictPath     string
	suggestLimit int
	noFilter     bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(chk *checker.Checker, dictPath string, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		checker:      chk,
		dictPath:     dictPath,
		suggestLimit: limit,
		noFilter:     noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates on :quit or if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("SpellServe CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word and press Enter to check it, or :help for commands (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return nil
		}
		h.handleInput(line)
	}
}

// handleInput processes a single line: either a colon command or a
// word to spell check.
func (h *InputHandler) handleInput(line string) {
	if strings.HasPrefix(line, ":") {
		h.handleCommand(line)
		return
	}
	h.checkWord(line)
}

func (h *InputHandler) handleCommand(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ":help", ":h":
		h.printHelp()
	case ":add":
		if len(args) == 0 {
			log.Error("Usage: :add <word>")
			return
		}
		h.checker.AddWord(args[0])
		log.Printf("Added '%s'", args[0])
	case ":remove", ":rm":
		if len(args) == 0 {
			log.Error("Usage: :remove <word>")
			return
		}
		if h.checker.RemoveWord(args[0]) {
			log.Printf("Removed '%s'", args[0])
		} else {
			log.Warnf("Word not found: '%s'", args[0])
		}
	case ":suggest", ":s":
		if len(args) == 0 {
			log.Error("Usage: :suggest <word>")
			return
		}
		h.printSuggestions(args[0])
	case ":stats":
		stats := h.checker.Stats()
		log.Printf("Words:  %s", utils.FormatWithCommas(stats.WordCount))
		log.Printf("Memory: %s bytes", utils.FormatWithCommas(stats.MemoryBytes))
	case ":save":
		path := h.dictPath
		if len(args) > 0 {
			path = args[0]
		}
		if err := h.checker.SaveDictionary(path); err != nil {
			log.Errorf("Saving dictionary: %v", err)
			return
		}
		log.Printf("Saved dictionary to %s", path)
	default:
		log.Errorf("Unknown command: %s (try :help)", cmd)
	}
}

// checkWord verifies a single word and prints corrections when it is
// unknown.
func (h *InputHandler) checkWord(word string) {
	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(word) {
			log.Warnf("Not a checkable word: '%s'", word)
			return
		}
	} else {
		log.Debug("Input filtering disabled - checking all entries")
	}

	start := time.Now()
	correct := h.checker.IsCorrect(word)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for word '%s'", elapsed, word)

	if correct {
		log.Printf("'%s' is spelled correctly", word)
		return
	}
	log.Warnf("'%s' is not in the dictionary", word)
	h.printSuggestions(word)
}

func (h *InputHandler) printSuggestions(word string) {
	start := time.Now()
	suggestions := h.checker.Suggestions(word)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for word '%s'", elapsed, word)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for: '%s'", word)
		return
	}
	if len(suggestions) > h.suggestLimit {
		suggestions = suggestions[:h.suggestLimit]
	}

	log.Printf("Found %d suggestions for '%s':", len(suggestions), word)
	for i, s := range suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s)
		log.Printf("%2d. %s", i+1, clWord)
	}
}

func (h *InputHandler) printHelp() {
	log.Print("commands:")
	log.Print("  <word>            check spelling of a word")
	log.Print("  :suggest <word>   show corrections without checking")
	log.Print("  :add <word>       add a word to the dictionary")
	log.Print("  :remove <word>    remove a word from the dictionary")
	log.Print("  :stats            show dictionary statistics")
	log.Print("  :save [path]      write the dictionary to disk")
	log.Print("  :quit             exit")
}
