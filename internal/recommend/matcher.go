package recommend

import (
	"slices"
	"strings"
)

// DefaultKeywords are the phrases treated as a signal for band recommendations.
var DefaultKeywords = []string{
	"recommend",
	"check out",
	"similar to",
	"sounds like",
	"band",
	"listen to",
	"you might like",
	"reminds me of",
}

// Matcher performs case-insensitive keyword membership checks.
type Matcher struct {
	keywords []string
}

// NewMatcher creates a [Matcher] for the given keywords, lowercased and with blanks dropped.
//
// With no usable keywords the [DefaultKeywords] are used.
func NewMatcher(keywords ...string) *Matcher {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}
	if len(kw) == 0 {
		kw = slices.Clone(DefaultKeywords)
	}
	return &Matcher{keywords: kw}
}

// Matches reports whether any keyword is a case-insensitive substring of text.
func (m *Matcher) Matches(text string) bool {
	lowered := strings.ToLower(text)
	for _, k := range m.keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the keyword set in order.
func (m *Matcher) Keywords() []string {
	return slices.Clone(m.keywords)
}
