package lib

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance of a suggestion when the name
// is not a subsequence of any candidate.
const maxSuggestDistance = 2

// SuggestMnemonic returns the known mnemonic closest to name.
func (t *InstructionTable) SuggestMnemonic(name string) (string, bool) {
	return closestMatch(name, t.Mnemonics())
}

// SuggestCondition returns the known compare condition closest to name.
func (t *InstructionTable) SuggestCondition(name string) (string, bool) {
	return closestMatch(name, t.Conditions())
}

func closestMatch(name string, candidates []string) (string, bool) {
	if name == "" || len(candidates) == 0 {
		return "", false
	}
	upper := strings.ToUpper(name)

	ranks := fuzzy.RankFindFold(upper, candidates)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target, true
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(upper, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}
