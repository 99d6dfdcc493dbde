package index

// Consonant sound classes for the phonetic code. Vowels and anything
// outside a-z carry no digit and are skipped outright.
func phoneticDigit(c byte) (byte, bool) {
	switch c {
	case 'b', 'f', 'p', 'v':
		return '1', true
	case 'c', 'g', 'j', 'k', 'q', 's', 'x', 'z':
		return '2', true
	case 'd', 't':
		return '3', true
	case 'l':
		return '4', true
	case 'm', 'n':
		return '5', true
	case 'r':
		return '6', true
	}
	return 0, false
}

// PhoneticCode returns the 4 character sound code for word: the
// uppercased first letter followed by consonant class digits, with
// runs of the same digit collapsed and the result padded with zeros.
// Collapsing compares against the last emitted character, so identical
// digits separated only by skipped vowels still collapse. The empty
// string yields an empty code.
func PhoneticCode(word string) string {
	if word == "" {
		return ""
	}

	code := make([]byte, 0, 4)
	first := word[0]
	if 'a' <= first && first <= 'z' {
		first -= 'a' - 'A'
	}
	code = append(code, first)

	for i := 1; i < len(word) && len(code) < 4; i++ {
		c := word[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		digit, ok := phoneticDigit(c)
		if !ok {
			continue
		}
		if code[len(code)-1] != digit {
			code = append(code, digit)
		}
	}

	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}
