package recommend

import (
	"fmt"
	"strings"
)

const bullet = "  • "

// Extractor builds report lines from posts and comments using a [Matcher].
type Extractor struct {
	matcher *Matcher
}

// NewExtractor creates an [Extractor]; a nil matcher uses the default keywords.
func NewExtractor(m *Matcher) *Extractor {
	if m == nil {
		m = NewMatcher()
	}
	return &Extractor{matcher: m}
}

// Matcher returns the matcher used for classification.
func (e *Extractor) Matcher() *Matcher {
	return e.matcher
}

// FromPost returns a header followed by one bullet per matching self text line, or nothing when the post does not match.
func (e *Extractor) FromPost(title, selftext string) []string {
	if !e.matcher.Matches(strings.ToLower(title) + " " + strings.ToLower(selftext)) {
		return nil
	}

	lines := []string{PostHeader(title)}
	for _, line := range strings.Split(selftext, "\n") {
		if e.matcher.Matches(line) {
			lines = append(lines, bullet+strings.TrimSpace(line))
		}
	}
	return lines
}

// FromComment returns a header and a single bullet holding the trimmed body, or nothing when the body does not match.
func (e *Extractor) FromComment(postTitle, body string) []string {
	if !e.matcher.Matches(body) {
		return nil
	}
	return []string{CommentHeader(postTitle), bullet + strings.TrimSpace(body)}
}

// PostHeader is the group header for lines taken from a post.
func PostHeader(title string) string {
	return fmt.Sprintf("From post '%s':", title)
}

// CommentHeader is the group header for a comment on the post with the given title.
func CommentHeader(title string) string {
	return fmt.Sprintf("From comment on '%s':", title)
}
