package scraper

import "regexp"

// rule is one extraction heuristic. The battery is an ordered list iterated
// uniformly: adding or removing a heuristic is a data change, not new control
// flow. Group 1 of the pattern is the candidate title text.
type rule struct {
	name string
	// requireRole gates the rule's matches on the role-word vocabulary.
	// Broad patterns (headings, anchors, title attributes) need it; the
	// narrow structured-data and label patterns do not.
	requireRole bool
	pattern     *regexp.Regexp
}

// titleRules is the ordered battery run against every text window.
var titleRules = []rule{
	// JSON-LD / embedded structured data: "title": "Backend Engineer"
	{"structured-title", false, regexp.MustCompile(`(?i)"(?:title|jobTitle)"\s*:\s*"([^"]{3,200})"`)},
	// Headings are the most common way career pages list openings.
	{"heading", true, regexp.MustCompile(`(?is)<h[1-4][^>]*>(.{3,300}?)</h[1-4]>`)},
	// title="Senior Data Scientist" attributes on links and cards.
	{"title-attr", true, regexp.MustCompile(`(?i)\btitle\s*=\s*"([^"]{5,200})"`)},
	// Anchor text, the noisiest source; the role-word gate and the
	// acceptance filter carry most of the weight here.
	{"anchor", true, regexp.MustCompile(`(?is)<a\b[^>]*>(.{3,300}?)</a>`)},
	// Plain-text "Title: X" / "Position: X" labels.
	{"label", false, regexp.MustCompile(`(?i)(?:title|position)\s*:\s*([^<\r\n]{5,160})`)},
}

// roleWords is the fixed vocabulary a heading/attribute/anchor match must
// contain to count as a job title at all.
var roleWords = []string{
	"engineer", "developer", "scientist", "analyst", "manager",
	"lead", "senior", "junior", "intern", "designer",
	"architect", "specialist", "coordinator", "director",
}

// defaultStoplist rejects boilerplate that survives the role-word gate
// (cookie banners, legal links, nav chrome). Matched case-insensitively as a
// substring of the cleaned title.
var defaultStoplist = []string{
	"cookie", "privacy", "subscribe", "newsletter",
	"sign in", "log in", "javascript", "terms of",
}

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	spaceRe      = regexp.MustCompile(`\s+`)
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
	hrefRe       = regexp.MustCompile(`(?i)href\s*=\s*["']([^"'#][^"']*)["']`)
	locationRe   = regexp.MustCompile(`(?i)\blocation\s*:?\s*(?:<[^>]*>\s*)*([A-Za-z][A-Za-z ,.\-]{1,60})`)
	remoteRe     = regexp.MustCompile(`(?i)\b(remote|hybrid|on-?site)\b`)
	postedDateRe = regexp.MustCompile(`(?i)\bposted\s*(?:on)?\s*:?\s*([A-Za-z0-9][A-Za-z0-9 ,./\-]{3,30})`)
)
