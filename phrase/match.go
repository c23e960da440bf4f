package phrase

// MatchCost returns the cost of matching key inside target. ok is false when
// some word of key does not occur in target. A cost of 0 means target equals
// key or contains it contiguously; otherwise the cost is the number of
// unrelated words inside the smallest window of target holding every key
// word, plus the fraction of target words that are not key words.
func MatchCost(target, key Phrase) (cost float64, ok bool) {
	if !target.Covers(key) {
		return 0, false
	}
	if target.Equal(key) || target.Contains(key) {
		return 0, true
	}

	// key positions are distinct words; duplicates in key map to one slot.
	slot := make(map[string]int, len(key))
	for _, w := range key {
		if _, dup := slot[w]; !dup {
			slot[w] = len(slot)
		}
	}
	width := windowWidth(target, slot)

	targetWords := target.Set().Cardinality()
	overhead := float64(targetWords-len(slot)) / float64(targetWords)
	return float64(width-len(slot)) + overhead, true
}

// windowWidth finds the narrowest span of target holding one occurrence of
// every slotted word. last[k] is the most recent position of slot k; the
// current position is always the right edge, so only the oldest entry needs
// to be found.
func windowWidth(target Phrase, slot map[string]int) int {
	last := make([]int, len(slot))
	for i := range last {
		last[i] = -1
	}
	seen := 0
	best := len(target)
	for i, w := range target {
		k, ok := slot[w]
		if !ok {
			continue
		}
		if last[k] < 0 {
			seen++
		}
		last[k] = i
		if seen < len(slot) {
			continue
		}
		lo := i
		for _, pos := range last {
			if pos < lo {
				lo = pos
			}
		}
		if w := i - lo + 1; w < best {
			best = w
		}
	}
	return best
}
