package flags

import "github.com/sahilm/fuzzy"

// Suggest returns the best fuzzy match for a misspelled flag among the
// candidates, used for "did you mean" hints in the unused-flag report.
func Suggest(name string, candidates []string) (string, bool) {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		// Also match candidates that are subsequences of the flag,
		// e.g. "just" for "justs".
		for _, candidate := range candidates {
			if reverse := fuzzy.Find(candidate, []string{name}); len(reverse) > 0 {
				return candidate, true
			}
		}
		return "", false
	}
	return matches[0].Str, true
}
