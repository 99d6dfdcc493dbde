package suggest

// Generation alphabet; candidates are ASCII lowercase only.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// deletions removes one character at each position.
func deletions(word string) []string {
	out := make([]string, 0, len(word))
	for i := range word {
		out = append(out, word[:i]+word[i+1:])
	}
	return out
}

// insertions inserts each letter at each of len(word)+1 positions.
func insertions(word string) []string {
	out := make([]string, 0, len(alphabet)*(len(word)+1))
	for i := 0; i <= len(word); i++ {
		for j := 0; j < len(alphabet); j++ {
			out = append(out, word[:i]+string(alphabet[j])+word[i:])
		}
	}
	return out
}

// substitutions replaces each position with each of the 25 other
// letters.
func substitutions(word string) []string {
	out := make([]string, 0, (len(alphabet)-1)*len(word))
	b := []byte(word)
	for i := range b {
		orig := b[i]
		for j := 0; j < len(alphabet); j++ {
			if alphabet[j] == orig {
				continue
			}
			b[i] = alphabet[j]
			out = append(out, string(b))
		}
		b[i] = orig
	}
	return out
}

// transpositions swaps each adjacent pair.
func transpositions(word string) []string {
	if len(word) < 2 {
		return nil
	}
	out := make([]string, 0, len(word)-1)
	b := []byte(word)
	for i := 0; i < len(b)-1; i++ {
		b[i], b[i+1] = b[i+1], b[i]
		out = append(out, string(b))
		b[i], b[i+1] = b[i+1], b[i]
	}
	return out
}
