package scraper

import "strings"

// MatchKeyword returns the first keyword (in caller-supplied order) whose
// lowercased form is a substring of the lowercased title. No stemming, no
// tokenization, no fuzziness — a keyword either appears in the title or it
// doesn't.
func MatchKeyword(title string, keywords []string) (string, bool) {
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}
