package verify

import "unicode"

// similarity is the Dice coefficient over normalized rune multisets:
// whitespace and punctuation stripped, roman letters case-folded. 1.0 means
// the same character content regardless of formatting.
func similarity(a, b string) float64 {
	ca, na := runeCounts(a)
	cb, nb := runeCounts(b)
	if na == 0 && nb == 0 {
		return 1
	}
	if na == 0 || nb == 0 {
		return 0
	}

	inter := 0
	for r, n := range ca {
		if m := cb[r]; m < n {
			inter += m
		} else {
			inter += n
		}
	}
	return 2 * float64(inter) / float64(na+nb)
}

func runeCounts(s string) (map[rune]int, int) {
	counts := make(map[rune]int)
	total := 0
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		r = unicode.ToLower(r)
		counts[r]++
		total++
	}
	return counts, total
}
