package suggest

import (
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/bastiangx/spellserve/pkg/index"
)

func buildIndex(words map[string]uint32) *index.WordIndex {
	ix := index.NewWordIndex()
	for w, f := range words {
		ix.Insert(w, f)
	}
	return ix
}

func TestSuggestTransposition(t *testing.T) {
	e := NewEngine(buildIndex(map[string]uint32{"the": 100}))

	got := e.Suggest("teh")
	if !slices.Contains(got, "the") {
		t.Errorf("Suggest(\"teh\") = %v, want it to contain \"the\"", got)
	}
}

func TestSuggestSingleEditClasses(t *testing.T) {
	cases := []struct {
		name  string
		dict  map[string]uint32
		input string
		want  string
	}{
		{"deletion", map[string]uint32{"cat": 10}, "cart", "cat"},
		{"insertion", map[string]uint32{"cart": 10}, "cat", "cart"},
		{"substitution", map[string]uint32{"cat": 10}, "car", "cat"},
		{"transposition", map[string]uint32{"form": 10}, "from", "form"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(buildIndex(tc.dict))
			got := e.Suggest(tc.input)
			if !slices.Contains(got, tc.want) {
				t.Errorf("Suggest(%q) = %v, want it to contain %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSuggestSplit(t *testing.T) {
	e := NewEngine(buildIndex(map[string]uint32{"ice": 5, "cream": 5}))

	got := e.Suggest("icecream")
	if !slices.Contains(got, "ice cream") {
		t.Errorf("Suggest(\"icecream\") = %v, want it to contain \"ice cream\"", got)
	}
}

func TestSuggestPhoneticUnfiltered(t *testing.T) {
	// "night" is three edits from "nacht" but shares its sound code,
	// so it must surface through the phonetic bucket.
	e := NewEngine(buildIndex(map[string]uint32{"night": 5}))

	got := e.Suggest("nacht")
	if !slices.Contains(got, "night") {
		t.Errorf("Suggest(\"nacht\") = %v, want it to contain \"night\"", got)
	}
}

func TestSuggestPrefixCompletionKept(t *testing.T) {
	e := NewEngine(buildIndex(map[string]uint32{"catalog": 5}))

	got := e.Suggest("cata")
	if !slices.Contains(got, "catalog") {
		t.Errorf("Suggest(\"cata\") = %v, want completion \"catalog\"", got)
	}
}

func TestSuggestPrefixDistanceFiltered(t *testing.T) {
	// "carpenter" shares the prefix "car" but is five edits away and
	// does not complete the input, so it must not surface.
	e := NewEngine(buildIndex(map[string]uint32{"carpenter": 50, "carpet": 5}))

	got := e.Suggest("cart")
	if slices.Contains(got, "carpenter") {
		t.Errorf("Suggest(\"cart\") = %v, must not contain \"carpenter\"", got)
	}
	if !slices.Contains(got, "carpet") {
		t.Errorf("Suggest(\"cart\") = %v, want \"carpet\" (within edit distance)", got)
	}
}

func TestSuggestEmptyInputs(t *testing.T) {
	e := NewEngine(buildIndex(map[string]uint32{"the": 1}))
	if got := e.Suggest(""); got != nil {
		t.Errorf("Suggest(\"\") = %v, want nil", got)
	}

	var nilEngine = NewEngine(nil)
	if got := nilEngine.Suggest("word"); got != nil {
		t.Errorf("Suggest with nil lexicon = %v, want nil", got)
	}
}

func TestSuggestTruncation(t *testing.T) {
	dict := map[string]uint32{}
	for _, w := range []string{"bat", "cab", "cad", "cam", "can", "cap", "car", "cot", "cut", "fat", "hat", "mat", "oat", "pat", "rat", "sat", "vat"} {
		dict[w] = 1
	}
	e := NewEngine(buildIndex(dict))
	e.SetMaxSuggestions(3)

	if got := e.Suggest("cat"); len(got) > 3 {
		t.Errorf("Suggest returned %d results, want at most 3", len(got))
	}
}

func TestSuggestDeterministic(t *testing.T) {
	e := NewEngine(buildIndex(map[string]uint32{
		"bat": 5, "cab": 5, "can": 5, "cap": 5, "car": 5, "cot": 5,
	}))

	first := e.Suggest("cat")
	for i := 0; i < 10; i++ {
		if got := e.Suggest("cat"); !reflect.DeepEqual(got, first) {
			t.Fatalf("Suggest is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestSuggestRanksFrequencyOnTies(t *testing.T) {
	// Same edit distance and shape; the frequent word must rank first.
	e := NewEngine(buildIndex(map[string]uint32{"car": 1000, "cab": 1}))

	got := e.Suggest("cat")
	ci, bi := slices.Index(got, "car"), slices.Index(got, "cab")
	if ci == -1 || bi == -1 {
		t.Fatalf("Suggest(\"cat\") = %v, want both \"car\" and \"cab\"", got)
	}
	if ci > bi {
		t.Errorf("Suggest(\"cat\") = %v, want \"car\" ranked above \"cab\"", got)
	}
}

func TestScoreFormula(t *testing.T) {
	ix := buildIndex(map[string]uint32{"the": 100})
	e := NewEngine(ix)

	w := e.Weights()
	want := w.EditDistance/(1.0+2.0) +
		w.Frequency*math.Log(101.0)/10.0 +
		0.1*1.0 +
		w.Prefix*1.0/3.0

	got := e.Score("teh", "the")
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Score(\"teh\", \"the\") = %v, want %v", got, want)
	}
}

func TestScoreRespectsWeights(t *testing.T) {
	ix := buildIndex(map[string]uint32{"the": 100})
	e := NewEngine(ix)

	base := e.Score("teh", "the")
	e.SetWeights(Weights{EditDistance: 2.0, Frequency: 0.5, Phonetic: 0.3, Prefix: 0.2})
	boosted := e.Score("teh", "the")
	if boosted <= base {
		t.Errorf("doubling the edit weight should raise the score: %v -> %v", base, boosted)
	}
}

func TestSuggestByEditDistance(t *testing.T) {
	e := NewEngine(buildIndex(map[string]uint32{
		"the":   2000,
		"their": 950,
		"there": 500,
		"zebra": 100,
	}))

	got := e.SuggestByEditDistance("ther", 2)
	if len(got) == 0 {
		t.Fatal("SuggestByEditDistance(\"ther\", 2) returned nothing")
	}
	// "the" and "there" are both one edit away; "the" is more frequent.
	if got[0] != "the" {
		t.Errorf("first suggestion = %q, want \"the\" (distance then frequency)", got[0])
	}
	if slices.Contains(got, "zebra") {
		t.Errorf("SuggestByEditDistance = %v, must not contain \"zebra\"", got)
	}
}

func TestSuggestByEditDistanceTruncation(t *testing.T) {
	dict := map[string]uint32{}
	for _, w := range []string{"cab", "cad", "cam", "can", "cap", "car", "caw", "cot", "cut", "oat", "pat", "rat"} {
		dict[w] = 1
	}
	e := NewEngine(buildIndex(dict))
	e.SetMaxSuggestions(4)

	if got := e.SuggestByEditDistance("cat", 2); len(got) != 4 {
		t.Errorf("SuggestByEditDistance returned %d results, want 4", len(got))
	}
}
