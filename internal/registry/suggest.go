package registry

import "github.com/agext/levenshtein"

// NameSuggestion returns the candidate closest to given, or "" when none is
// close enough to be a plausible typo.
func NameSuggestion(given string, candidates []string) string {
	best := ""
	bestDist := 3
	for _, c := range candidates {
		if dist := levenshtein.Distance(given, c, nil); dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}
