package engine

import "strings"

// Similarity returns the word-overlap ratio between two question texts:
// |common words| / max(|words a|, |words b|), case-folded. The result is
// in [0, 1]; identical word sets score 1.
func Similarity(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	common := 0
	for w := range wa {
		if wb[w] {
			common++
		}
	}

	denom := len(wa)
	if len(wb) > denom {
		denom = len(wb)
	}
	return float64(common) / float64(denom)
}

func wordSet(s string) map[string]bool {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
