//go:build test

package mem

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/bastiangx/spellserve/pkg/checker"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var dictWords = map[string]uint32{
	"hello": 2415, "help": 880, "held": 320, "hell": 150,
	"world": 1938, "word": 1200, "work": 2200, "worm": 90,
	"program": 700, "progress": 430, "project": 1100,
	"there": 3100, "their": 2900, "then": 2500, "them": 2400, "the": 9000,
	"computer": 950, "compute": 300, "company": 1700, "complete": 820,
	"international": 400, "internal": 510, "internet": 1300,
	"development": 760, "developer": 540, "develop": 610,
}

var misspellings = []string{
	"helo", "wrold", "teh", "progam", "ther", "comptuer",
	"developement", "internation", "wrok", "compleet",
}

func newTestChecker(t testing.TB) *checker.Checker {
	t.Helper()
	chk := checker.New()
	for w, f := range dictWords {
		chk.AddWordWithFrequency(w, f)
	}
	return chk
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount)
		})
	}
}

func TestMemoryStabilityLongRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running memory stability test in short mode")
	}

	runChurnMemoryTest(t, 50, 200)
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	chk := newTestChecker(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	for i := 0; i < iterations; i++ {
		for _, word := range misspellings {
			suggestions := chk.Suggestions(word)
			_ = suggestions
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc - baseline.Alloc)
	totalOps := iterations * len(misspellings)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f",
		iterations, totalOps, memDelta, memPerOp)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}
}

// runChurnMemoryTest exercises repeated add/remove cycles to catch
// growth in the index's internal maps and phonetic buckets.
func runChurnMemoryTest(t *testing.T, cycles, opsPerCycle int) {
	chk := newTestChecker(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	for cycle := 0; cycle < cycles; cycle++ {
		for i := 0; i < opsPerCycle; i++ {
			word := fmt.Sprintf("churnword%d", i)
			chk.AddWord(word)
			_ = chk.Suggestions(word[:len(word)-1])
			chk.RemoveWord(word)
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc - baseline.Alloc)
	t.Logf("cycles=%d ops_per_cycle=%d mem_delta=%d bytes", cycles, opsPerCycle, memDelta)

	// Churned words are removed every cycle, so steady-state growth
	// should stay well under a megabyte.
	if memDelta > 4<<20 {
		t.Errorf("memory grew %d bytes across churn cycles", memDelta)
	}
}
