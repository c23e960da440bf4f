package vocabulary

import (
	"math"
	"unicode"
)

// tokens splits text on non-letters and on case boundaries: a lower to
// upper transition ("pet|Id") and the last capital of an acronym that
// starts a new word ("HTTP|Server").
func tokens(text string) []string {
	var out []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

// split finds the cheapest segmentation of a lowercase run into known words.
// best[i] is the cost of the first i runes; ties prefer the longer final
// word. ok is false when no segmentation uses only known words.
func (v *Vocabulary) split(run string) (words []string, ok bool) {
	r := []rune(run)
	n := len(r)
	if n == 0 {
		return nil, true
	}

	best := make([]float64, n+1)
	last := make([]int, n+1)
	for i := 1; i <= n; i++ {
		best[i] = math.Inf(1)
		for k := 1; k <= v.maxWord && k <= i; k++ {
			prev := best[i-k]
			if math.IsInf(prev, 1) {
				continue
			}
			c, known := v.cost(string(r[i-k : i]))
			if !known {
				continue
			}
			if total := prev + c; total < best[i] || (total == best[i] && k > last[i]) {
				best[i] = total
				last[i] = k
			}
		}
	}
	if math.IsInf(best[n], 1) {
		return nil, false
	}

	for i := n; i > 0; i -= last[i] {
		words = append(words, string(r[i-last[i]:i]))
	}
	for a, b := 0, len(words)-1; a < b; a, b = a+1, b-1 {
		words[a], words[b] = words[b], words[a]
	}
	return words, true
}
