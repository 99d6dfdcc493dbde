// Package checker composes the word index, suggestion engine and text
// processor into a single spell-checking facade.
package checker

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/pkg/index"
	"github.com/bastiangx/spellserve/pkg/suggest"
	"github.com/bastiangx/spellserve/pkg/textproc"
)

// DefaultAddFrequency is the frequency assigned to words added at
// runtime rather than loaded from a dictionary file.
const DefaultAddFrequency = 1

// Misspelling is one unknown word found in a text, with its position.
type Misspelling struct {
	Word   string
	Line   int
	Column int
	Offset int
}

// Checker owns a mutable dictionary and answers correctness and
// suggestion queries against it. Checker is not safe for concurrent
// use.
type Checker struct {
	index  *index.WordIndex
	engine *suggest.Engine
	proc   *textproc.Processor

	maxSuggestions int
}

// New returns a checker with an empty dictionary and default engine
// settings.
func New() *Checker {
	idx := index.NewWordIndex()
	return &Checker{
		index:          idx,
		engine:         suggest.NewEngine(idx),
		proc:           textproc.NewProcessor(),
		maxSuggestions: suggest.DefaultMaxSuggestions,
	}
}

// LoadDictionary replaces the current dictionary with the contents of
// the file at path.
func (c *Checker) LoadDictionary(path string) error {
	if err := c.index.LoadFromFile(path); err != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}
	log.Debugf("loaded %d words from %s", c.index.Len(), path)
	return nil
}

// SaveDictionary writes the current dictionary to the file at path.
func (c *Checker) SaveDictionary(path string) error {
	if err := c.index.SaveToFile(path); err != nil {
		return fmt.Errorf("saving dictionary: %w", err)
	}
	return nil
}

// AddWord inserts word into the dictionary with the default runtime
// frequency.
func (c *Checker) AddWord(word string) {
	c.index.Insert(word, DefaultAddFrequency)
}

// AddWordWithFrequency inserts word with an explicit frequency.
func (c *Checker) AddWordWithFrequency(word string, frequency uint32) {
	c.index.Insert(word, frequency)
}

// RemoveWord removes word from the dictionary and reports whether it
// was present.
func (c *Checker) RemoveWord(word string) bool {
	return c.index.Remove(word)
}

// IsCorrect reports whether word is acceptable: empty and ignorable
// tokens count as correct, everything else must be in the dictionary.
func (c *Checker) IsCorrect(word string) bool {
	if word == "" {
		return true
	}
	if c.proc.ShouldIgnore(word) {
		return true
	}
	return c.index.Contains(c.proc.Normalize(word))
}

// Suggestions returns ranked corrections for word, capped at the
// checker's suggestion limit.
func (c *Checker) Suggestions(word string) []string {
	results := c.engine.Suggest(c.proc.Normalize(word))
	if len(results) > c.maxSuggestions {
		results = results[:c.maxSuggestions]
	}
	return results
}

// SetMaxSuggestions caps how many suggestions queries return. Values
// below one are ignored.
func (c *Checker) SetMaxSuggestions(n int) {
	if n < 1 {
		return
	}
	c.maxSuggestions = n
	c.engine.SetMaxSuggestions(n)
}

// CheckText tokenizes text and returns every token missing from the
// dictionary, in source order.
func (c *Checker) CheckText(text string) []Misspelling {
	var missing []Misspelling
	for _, tok := range c.proc.Tokens(text) {
		if c.index.Contains(c.proc.Normalize(tok.Text)) {
			continue
		}
		missing = append(missing, Misspelling{
			Word:   tok.Text,
			Line:   tok.Line,
			Column: tok.Column,
			Offset: tok.Offset,
		})
	}
	return missing
}

// CheckFile reads the file at path and spell checks its contents.
func (c *Checker) CheckFile(path string) ([]Misspelling, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c.CheckText(string(data)), nil
}

// WordCount returns the number of words in the dictionary.
func (c *Checker) WordCount() int {
	return c.index.Len()
}

// Stats returns the dictionary's size statistics.
func (c *Checker) Stats() index.Stats {
	return c.index.Stats()
}

// Engine exposes the suggestion engine for tuning.
func (c *Checker) Engine() *suggest.Engine {
	return c.engine
}

// Processor exposes the text processor for tuning.
func (c *Checker) Processor() *textproc.Processor {
	return c.proc
}
