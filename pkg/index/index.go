/*
Package index owns all dictionary state for spelling verification.

A WordIndex combines four views of the same word set: a patricia trie
for prefix queries, a hash set for O(1) membership checks, a frequency
table, and phonetic buckets grouping words that share a sound code.
Words are normalized to lowercase on the way in, so every query is
case-insensitive.

The index has no internal locking. Callers mixing mutations and
queries across goroutines must confine access to one goroutine or wrap
every operation behind a single reader/writer lock.
*/
package index

import (
	"errors"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// errStopVisit aborts a subtree walk once enough words are collected.
var errStopVisit = errors.New("stop trie visit")

// stringOverhead approximates the header cost of a Go string when
// estimating memory usage.
const stringOverhead = 16

// Stats describes the size of an index. MemoryBytes sums the string
// payloads held by the word set, frequency table and phonetic buckets;
// trie memory is excluded from the estimate.
type Stats struct {
	WordCount   int
	MemoryBytes int
}

// WordIndex is the mutable dictionary. The word set is the
// authoritative existence check; the trie, frequency table and
// phonetic buckets are maintained alongside it.
type WordIndex struct {
	trie     *patricia.Trie
	words    map[string]struct{}
	freqs    map[string]uint32
	phonetic map[string][]string
}

// NewWordIndex returns an empty index.
func NewWordIndex() *WordIndex {
	return &WordIndex{
		trie:     patricia.NewTrie(),
		words:    make(map[string]struct{}),
		freqs:    make(map[string]uint32),
		phonetic: make(map[string][]string),
	}
}

// Insert adds word with the given frequency. Empty input is a no-op.
// Re-inserting an existing word overwrites its frequency and leaves
// its phonetic bucket membership untouched.
func (ix *WordIndex) Insert(word string, frequency uint32) {
	if word == "" {
		return
	}
	word = strings.ToLower(word)

	_, known := ix.words[word]
	ix.words[word] = struct{}{}
	ix.freqs[word] = frequency
	ix.trie.Set(patricia.Prefix(word), frequency)

	if !known {
		code := PhoneticCode(word)
		ix.phonetic[code] = append(ix.phonetic[code], word)
	}
}

// Remove deletes word from the index, reporting whether it was
// present. The trie terminal is deliberately not pruned: the word set
// stays the authoritative existence check and trie-backed queries
// filter through it, so removal stays O(1).
func (ix *WordIndex) Remove(word string) bool {
	if word == "" {
		return false
	}
	word = strings.ToLower(word)

	if _, ok := ix.words[word]; !ok {
		return false
	}
	delete(ix.words, word)
	delete(ix.freqs, word)

	code := PhoneticCode(word)
	bucket := ix.phonetic[code]
	for i, w := range bucket {
		if w == word {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(ix.phonetic, code)
	} else {
		ix.phonetic[code] = bucket
	}
	return true
}

// Contains reports whether word is in the index.
func (ix *WordIndex) Contains(word string) bool {
	_, ok := ix.words[strings.ToLower(word)]
	return ok
}

// Frequency returns the stored frequency for word, or 0 if absent.
func (ix *WordIndex) Frequency(word string) uint32 {
	return ix.freqs[strings.ToLower(word)]
}

// Len returns the number of words in the index.
func (ix *WordIndex) Len() int {
	return len(ix.words)
}

// WordsWithPrefix returns up to maxResults words starting with prefix,
// sorted by frequency descending. Equal frequencies break
// lexicographically so results are stable across runs. A missing
// prefix or non-positive maxResults yields nil.
func (ix *WordIndex) WordsWithPrefix(prefix string, maxResults int) []string {
	if maxResults <= 0 {
		return nil
	}
	prefix = strings.ToLower(prefix)

	var results []string
	err := ix.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		word := string(p)
		if _, ok := ix.words[word]; !ok {
			// Stale terminal left behind by Remove.
			return nil
		}
		results = append(results, word)
		if len(results) >= maxResults {
			return errStopVisit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Errorf("visiting trie subtree for %q: %v", prefix, err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		fi, fj := ix.freqs[results[i]], ix.freqs[results[j]]
		if fi != fj {
			return fi > fj
		}
		return results[i] < results[j]
	})
	return results
}

// PhoneticMatches returns a copy of the phonetic bucket for word, in
// insertion order and unranked. The input does not have to be a
// dictionary word.
func (ix *WordIndex) PhoneticMatches(word string) []string {
	bucket := ix.phonetic[PhoneticCode(word)]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]string, len(bucket))
	copy(out, bucket)
	return out
}

// AllWords returns a snapshot of every word in the index. Order is
// unspecified.
func (ix *WordIndex) AllWords() []string {
	words := make([]string, 0, len(ix.words))
	for w := range ix.words {
		words = append(words, w)
	}
	return words
}

// Clear empties the index, including the trie.
func (ix *WordIndex) Clear() {
	ix.trie = patricia.NewTrie()
	ix.words = make(map[string]struct{})
	ix.freqs = make(map[string]uint32)
	ix.phonetic = make(map[string][]string)
}

// Stats computes the current word count and memory estimate.
func (ix *WordIndex) Stats() Stats {
	mem := 0
	for w := range ix.words {
		mem += len(w) + stringOverhead
	}
	for w := range ix.freqs {
		mem += len(w) + stringOverhead + 4
	}
	for code, bucket := range ix.phonetic {
		mem += len(code) + stringOverhead
		for _, w := range bucket {
			mem += len(w) + stringOverhead
		}
	}
	return Stats{WordCount: len(ix.words), MemoryBytes: mem}
}
