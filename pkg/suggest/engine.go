/*
Package suggest generates and ranks correction candidates for
misspelled words.

The Engine combines five single-edit candidate generators (deletion,
insertion, substitution, transposition, split) with phonetic and
prefix lookups against a Lexicon, then ranks the union with a weighted
score. Candidate generation is restricted to ASCII a-z; callers are
expected to hand in already normalized lowercase tokens.

Every call is a pure function of the input word, the current lexicon
contents and the engine configuration; nothing is cached between
calls. The engine only reads through its Lexicon and follows whatever
locking discipline the lexicon owner imposes.
*/
package suggest

import (
	"math"
	"sort"
	"strings"
)

// Defaults mirror a typical interactive correction setup.
const (
	DefaultMaxEditDistance = 2
	DefaultMaxSuggestions  = 10

	// Per-prefix cap when expanding prefix candidates.
	prefixMatchLimit = 20
	// Shortest prefix worth expanding.
	minPrefixLen = 3
)

// Lexicon is the read-only dictionary view the engine works against.
// *index.WordIndex satisfies it.
type Lexicon interface {
	Contains(word string) bool
	Frequency(word string) uint32
	WordsWithPrefix(prefix string, maxResults int) []string
	PhoneticMatches(word string) []string
	AllWords() []string
}

// Weights control the ranking formula in Score. Phonetic is accepted
// and surfaced for configuration symmetry but is not consulted by
// Score; see the package tests for the exact formula.
type Weights struct {
	EditDistance float64
	Frequency    float64
	Phonetic     float64
	Prefix       float64
}

// DefaultWeights returns the stock ranking weights.
func DefaultWeights() Weights {
	return Weights{
		EditDistance: 1.0,
		Frequency:    0.5,
		Phonetic:     0.3,
		Prefix:       0.2,
	}
}

// Engine generates ranked corrections against a borrowed Lexicon. It
// never mutates the lexicon and holds no per-call state.
type Engine struct {
	lex             Lexicon
	maxEditDistance int
	maxSuggestions  int
	weights         Weights
}

// NewEngine returns an engine bound to lex with default configuration.
func NewEngine(lex Lexicon) *Engine {
	return &Engine{
		lex:             lex,
		maxEditDistance: DefaultMaxEditDistance,
		maxSuggestions:  DefaultMaxSuggestions,
		weights:         DefaultWeights(),
	}
}

// SetMaxEditDistance bounds how far prefix-derived candidates may
// stray from the input.
func (e *Engine) SetMaxEditDistance(d int) { e.maxEditDistance = d }

// SetMaxSuggestions caps the length of ranked result lists.
func (e *Engine) SetMaxSuggestions(n int) { e.maxSuggestions = n }

// SetWeights replaces the ranking weights.
func (e *Engine) SetWeights(w Weights) { e.weights = w }

// Weights returns the current ranking weights.
func (e *Engine) Weights() Weights { return e.weights }

// Suggest returns ranked corrections for word. Single-edit candidates
// are kept only when present in the lexicon; split candidates are
// validated during generation; phonetic bucket matches join the pool
// unfiltered. The union is deduplicated, scored and truncated to the
// configured maximum.
func (e *Engine) Suggest(word string) []string {
	if e.lex == nil || word == "" {
		return nil
	}

	seen := make(map[string]struct{})
	keepKnown := func(candidates []string) {
		for _, c := range candidates {
			if e.lex.Contains(c) {
				seen[c] = struct{}{}
			}
		}
	}

	keepKnown(deletions(word))
	keepKnown(insertions(word))
	keepKnown(substitutions(word))
	keepKnown(transpositions(word))
	for _, c := range e.splits(word) {
		seen[c] = struct{}{}
	}
	for _, c := range e.lex.PhoneticMatches(word) {
		seen[c] = struct{}{}
	}
	for _, c := range e.prefixCandidates(word) {
		seen[c] = struct{}{}
	}

	candidates := make([]string, 0, len(seen))
	for c := range seen {
		candidates = append(candidates, c)
	}
	return e.rank(word, candidates)
}

// SuggestByEditDistance is the exhaustive alternate strategy: scan the
// whole lexicon, keep words within maxDistance, order by distance then
// frequency. Cost is O(|lexicon| * len^2) with no built-in bound, so
// callers needing responsiveness must cap the lexicon or budget the
// call themselves.
func (e *Engine) SuggestByEditDistance(word string, maxDistance int) []string {
	if e.lex == nil || word == "" {
		return nil
	}

	type match struct {
		word string
		dist int
	}
	var matches []match
	for _, dictWord := range e.lex.AllWords() {
		if d := Levenshtein(word, dictWord); d <= maxDistance {
			matches = append(matches, match{dictWord, d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		fi, fj := e.lex.Frequency(matches[i].word), e.lex.Frequency(matches[j].word)
		if fi != fj {
			return fi > fj
		}
		return matches[i].word < matches[j].word
	})

	n := len(matches)
	if e.maxSuggestions > 0 && n > e.maxSuggestions {
		n = e.maxSuggestions
	}
	out := make([]string, 0, n)
	for _, m := range matches[:n] {
		out = append(out, m.word)
	}
	return out
}

// splits produces "first second" candidates for every split point
// where both halves are independently in the lexicon.
func (e *Engine) splits(word string) []string {
	var out []string
	for i := 1; i < len(word); i++ {
		first, second := word[:i], word[i:]
		if e.lex.Contains(first) && e.lex.Contains(second) {
			out = append(out, first+" "+second)
		}
	}
	return out
}

// prefixCandidates expands prefixes of length 3..len(word) against
// the lexicon. Matches that merely share a short prefix can be
// arbitrarily far from the input, so a candidate is kept only when it
// completes the whole input or sits within the configured edit
// distance.
func (e *Engine) prefixCandidates(word string) []string {
	var out []string
	start := minPrefixLen
	if len(word) < start {
		start = len(word)
	}
	for l := start; l <= len(word); l++ {
		for _, m := range e.lex.WordsWithPrefix(word[:l], prefixMatchLimit) {
			if strings.HasPrefix(m, word) || Levenshtein(word, m) <= e.maxEditDistance {
				out = append(out, m)
			}
		}
	}
	return out
}

// rank orders candidates by Score descending, breaking ties
// lexicographically so results are reproducible, and truncates to the
// configured maximum.
func (e *Engine) rank(original string, candidates []string) []string {
	type scored struct {
		word  string
		score float64
	}
	list := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		list = append(list, scored{c, e.Score(original, c)})
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].word < list[j].word
	})

	n := len(list)
	if e.maxSuggestions > 0 && n > e.maxSuggestions {
		n = e.maxSuggestions
	}
	out := make([]string, 0, n)
	for _, s := range list[:n] {
		out = append(out, s.word)
	}
	return out
}

// Score computes the ranking value of candidate against the original
// input; higher is better. The components are a reciprocal edit
// distance, log-damped frequency, a length similarity ratio and a
// common prefix bonus.
func (e *Engine) Score(original, candidate string) float64 {
	if original == "" || candidate == "" {
		return 0
	}

	dist := Levenshtein(original, candidate)
	score := e.weights.EditDistance / (1.0 + float64(dist))

	freq := e.lex.Frequency(candidate)
	score += e.weights.Frequency * math.Log(1.0+float64(freq)) / 10.0

	shorter, longer := len(original), len(candidate)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	score += 0.1 * float64(shorter) / float64(longer)

	score += e.weights.Prefix * float64(commonPrefixLen(original, candidate)) / float64(len(original))
	return score
}
