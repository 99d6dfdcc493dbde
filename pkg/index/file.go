package index

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// LoadFromFile replaces the index contents with the entries in path.
// Each line is either `word` (frequency 1) or `word:frequency`; blank
// lines are skipped and surrounding whitespace is stripped. A
// malformed frequency field fails the whole load and leaves the index
// empty rather than half-populated.
func (ix *WordIndex) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	ix.Clear()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		word, freqField, hasFreq := strings.Cut(line, ":")
		frequency := uint32(1)
		if hasFreq {
			n, err := strconv.ParseUint(freqField, 10, 32)
			if err != nil {
				ix.Clear()
				return fmt.Errorf("%s:%d: parse frequency %q: %w", path, lineNo, freqField, err)
			}
			frequency = uint32(n)
		}
		ix.Insert(word, frequency)
	}
	if err := scanner.Err(); err != nil {
		ix.Clear()
		return fmt.Errorf("read dictionary: %w", err)
	}

	log.Debugf("loaded %d words from %s", ix.Len(), path)
	return nil
}

// SaveToFile writes the index as `word:frequency` lines, sorted by
// word so round-trips are deterministic.
func (ix *WordIndex) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dictionary: %w", err)
	}

	words := ix.AllWords()
	sort.Strings(words)

	w := bufio.NewWriter(f)
	for _, word := range words {
		fmt.Fprintf(w, "%s:%d\n", word, ix.freqs[word])
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write dictionary: %w", err)
	}
	return f.Close()
}
