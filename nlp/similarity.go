package nlp

// verbSynonyms groups words that name the same resource action.
var verbSynonyms = map[string][]string{
	"create":   {"add", "new", "make", "insert", "register", "submit", "generate", "creation", "post", "place"},
	"update":   {"modify", "change", "edit", "replace", "alter", "patch", "set"},
	"delete":   {"remove", "erase", "destroy", "cancel", "purge", "drop", "deletion"},
	"retrieve": {"get", "fetch", "find", "read", "return", "show", "lookup", "view", "obtain", "load", "list", "search", "query"},
}

const (
	synonymSimilarity = 0.8
	bigramWeight      = 0.6
)

// Similarity implements Model. Identical lemmas score 1, members of the same
// synonym group score 0.8, anything else scores a damped bigram Dice
// coefficient of the two lemmas.
func (m *English) Similarity(a, b string) float64 {
	la, lb := m.Lemmatize(a), m.Lemmatize(b)
	if la == lb {
		return 1
	}
	ga, oka := m.groups[la]
	gb, okb := m.groups[lb]
	if oka && okb && ga == gb {
		return synonymSimilarity
	}
	return bigramWeight * dice(la, lb)
}

func dice(a, b string) float64 {
	ba, bb := bigrams(a), bigrams(b)
	if len(ba) == 0 || len(bb) == 0 {
		return 0
	}
	counts := make(map[string]int, len(ba))
	for _, g := range ba {
		counts[g]++
	}
	shared := 0
	for _, g := range bb {
		if counts[g] > 0 {
			counts[g]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(ba)+len(bb))
}

func bigrams(s string) []string {
	r := []rune(s)
	if len(r) < 2 {
		return nil
	}
	out := make([]string, 0, len(r)-1)
	for i := 0; i+1 < len(r); i++ {
		out = append(out, string(r[i:i+2]))
	}
	return out
}
