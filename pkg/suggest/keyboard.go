package suggest

import "math"

// unknownKeyDistance is reported for characters outside the letter
// rows.
const unknownKeyDistance = 10.0

// qwertyPos maps each letter to its (row, column) on a three-row
// QWERTY layout.
var qwertyPos = func() map[byte][2]int {
	rows := []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}
	pos := make(map[byte][2]int, 26)
	for r, row := range rows {
		for c := 0; c < len(row); c++ {
			pos[row[c]] = [2]int{r, c}
		}
	}
	return pos
}()

// KeyboardDistance returns the Euclidean distance between two keys on
// a QWERTY layout, case-insensitively. It is an extension point for
// typo-aware substitution weighting and is not consulted by Score.
func KeyboardDistance(a, b byte) float64 {
	pa, ok := qwertyPos[lowerByte(a)]
	if !ok {
		return unknownKeyDistance
	}
	pb, ok := qwertyPos[lowerByte(b)]
	if !ok {
		return unknownKeyDistance
	}
	dx := float64(pa[0] - pb[0])
	dy := float64(pa[1] - pb[1])
	return math.Sqrt(dx*dx + dy*dy)
}

func lowerByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
