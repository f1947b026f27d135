// Package scraper mines candidate job postings out of raw career-page HTML.
//
// It is deliberately not an HTML parser: target pages are uncontrolled,
// frequently malformed, and full of script noise, so the extractor runs an
// ordered regex battery over fixed-size text windows and filters the results.
// Missed jobs are acceptable; boilerplate false positives are filtered but not
// eliminated.
package scraper

import (
	"net/url"
	"strings"
)

// Candidate is a tentative job posting extracted from text, before the store
// has deduplicated or persisted it.
type Candidate struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	PostedDate  string `json:"posted_date,omitempty"`
}

const (
	// MaxInputBytes caps how much of a remote page is ever scanned.
	// Anything past it is ignored, not an error.
	MaxInputBytes = 1 << 20

	defaultWindowSize    = 5000
	defaultMaxCandidates = 50
	defaultURLRadius     = 500

	minTitleLen = 10
	maxTitleLen = 150
)

// Extractor turns raw HTML into candidates. Zero-value tuning fields fall
// back to the defaults above, so Extractor{} is usable as-is.
type Extractor struct {
	WindowSize    int
	MaxCandidates int
	URLRadius     int
	Stoplist      []string
}

// NewExtractor applies defaults for any unset tuning value.
func NewExtractor(windowSize, maxCandidates, urlRadius int, stoplist []string) *Extractor {
	e := &Extractor{
		WindowSize:    windowSize,
		MaxCandidates: maxCandidates,
		URLRadius:     urlRadius,
		Stoplist:      stoplist,
	}
	if e.WindowSize <= 0 {
		e.WindowSize = defaultWindowSize
	}
	if e.MaxCandidates <= 0 {
		e.MaxCandidates = defaultMaxCandidates
	}
	if e.URLRadius <= 0 {
		e.URLRadius = defaultURLRadius
	}
	if len(e.Stoplist) == 0 {
		e.Stoplist = defaultStoplist
	}
	return e
}

// Extract runs the rule battery over html and returns accepted candidates,
// deduplicated by case-insensitive title (first occurrence wins) and capped
// at MaxCandidates. sourceURL anchors relative links and is the fallback URL
// when no link is found near a match.
func (e *Extractor) Extract(html, sourceURL string) []Candidate {
	if len(html) > MaxInputBytes {
		html = html[:MaxInputBytes]
	}

	base, _ := url.Parse(sourceURL)

	seen := make(map[string]bool)
	var out []Candidate

	for _, r := range titleRules {
		for _, m := range e.matchWindows(html, r) {
			title := cleanTitle(m.text)
			if !acceptTitle(title, e.Stoplist) {
				continue
			}
			if r.requireRole && !containsRoleWord(title) {
				continue
			}

			key := strings.ToLower(title)
			if seen[key] {
				continue
			}
			seen[key] = true

			window := surrounding(html, m.start, m.end, e.URLRadius)
			cand := Candidate{
				Title:      title,
				URL:        associateURL(html, m.start, m.end, e.URLRadius, base, sourceURL),
				Location:   findLocation(window),
				PostedDate: findPostedDate(window),
			}
			out = append(out, cand)
			if len(out) >= e.MaxCandidates {
				return out
			}
		}
	}

	return out
}

// windowMatch is one rule hit with offsets into the full input text.
type windowMatch struct {
	text  string
	start int
	end   int
}

// matchWindows runs one rule over the input in fixed-size windows so a
// pathological page never hands the regex engine an unbounded scan. A title
// straddling a window boundary is lost; that is within the best-effort
// contract.
func (e *Extractor) matchWindows(html string, r rule) []windowMatch {
	var matches []windowMatch
	for offset := 0; offset < len(html); offset += e.WindowSize {
		end := offset + e.WindowSize
		if end > len(html) {
			end = len(html)
		}
		chunk := html[offset:end]
		for _, idx := range r.pattern.FindAllStringSubmatchIndex(chunk, -1) {
			if len(idx) < 4 || idx[2] < 0 {
				continue
			}
			matches = append(matches, windowMatch{
				text:  chunk[idx[2]:idx[3]],
				start: offset + idx[2],
				end:   offset + idx[3],
			})
		}
	}
	return matches
}

// cleanTitle strips nested markup, decodes the handful of entities that show
// up in practice, and collapses whitespace.
func cleanTitle(raw string) string {
	s := tagRe.ReplaceAllString(raw, " ")
	s = decodeEntities(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&ndash;", "-",
	"&mdash;", "-",
)

func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

// acceptTitle is the boilerplate filter: length bounds, no leftover markup
// fragments, at least one letter, and nothing from the stoplist.
func acceptTitle(title string, stoplist []string) bool {
	if len(title) < minTitleLen || len(title) > maxTitleLen {
		return false
	}
	if strings.ContainsAny(title, "<>") {
		return false
	}
	if !letterRe.MatchString(title) {
		return false
	}
	lower := strings.ToLower(title)
	for _, stop := range stoplist {
		if strings.Contains(lower, strings.ToLower(stop)) {
			return false
		}
	}
	return true
}

func containsRoleWord(title string) bool {
	lower := strings.ToLower(title)
	for _, w := range roleWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// surrounding returns the fixed-width character window around a match used
// for URL and metadata association.
func surrounding(html string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(html) {
		hi = len(html)
	}
	return html[lo:hi]
}

// associateURL searches the fixed-width window around a title match for an
// href-like link and picks the one closest to the match — the anchor wrapping
// the title itself when there is one. Relative links resolve against base; no
// usable link falls back to the source page itself.
func associateURL(html string, start, end, radius int, base *url.URL, sourceURL string) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(html) {
		hi = len(html)
	}
	window := html[lo:hi]

	best := ""
	bestDist := -1
	for _, idx := range hrefRe.FindAllStringSubmatchIndex(window, -1) {
		raw := strings.TrimSpace(decodeEntities(window[idx[2]:idx[3]]))
		if raw == "" {
			continue
		}
		low := strings.ToLower(raw)
		if strings.HasPrefix(low, "javascript:") || strings.HasPrefix(low, "mailto:") || strings.HasPrefix(low, "tel:") {
			continue
		}
		ref, err := url.Parse(raw)
		if err != nil {
			continue
		}

		resolved := ""
		switch {
		case base != nil:
			resolved = base.ResolveReference(ref).String()
		case ref.IsAbs():
			resolved = ref.String()
		default:
			continue
		}

		pos := lo + idx[2]
		dist := 0
		if pos < start {
			dist = start - pos
		} else if pos > end {
			dist = pos - end
		}
		if bestDist < 0 || dist < bestDist {
			best = resolved
			bestDist = dist
		}
	}

	if best == "" {
		return sourceURL
	}
	return best
}

// findLocation makes a best-effort pass for a location near the match:
// an explicit "Location:" label first, then a remote/hybrid/on-site marker.
func findLocation(window string) string {
	if m := locationRe.FindStringSubmatch(window); m != nil {
		return strings.TrimSpace(spaceRe.ReplaceAllString(m[1], " "))
	}
	if m := remoteRe.FindString(window); m != "" {
		return m
	}
	return ""
}

func findPostedDate(window string) string {
	if m := postedDateRe.FindStringSubmatch(window); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
