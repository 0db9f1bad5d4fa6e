// Package coverage turns the free-text "principal coverage" description of an
// insurance plan into discrete coverage labels.
package coverage

import (
	"fmt"
	"regexp"
	"strings"
)

// PreviewLimit is the number of items shown on a plan card before truncating.
const PreviewLimit = 3

// separators matches a comma with trailing whitespace or the standalone
// conjunction "y" surrounded by whitespace.
var separators = regexp.MustCompile(`,\s*|\s+y\s+`)

// Parse splits text into trimmed, non-empty coverage labels in source order.
// Duplicates are kept. Empty input yields an empty, non-nil slice.
func Parse(text string) []string {
	items := []string{}
	if strings.TrimSpace(text) == "" {
		return items
	}

	for _, token := range separators.Split(text, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		items = append(items, token)
	}
	return items
}

// Preview is the truncated view of a coverage list used on plan cards.
type Preview struct {
	Items     []string
	Remaining int
}

// NewPreview parses text and keeps at most limit items.
func NewPreview(text string, limit int) Preview {
	items := Parse(text)
	if limit < 0 {
		limit = 0
	}
	if len(items) <= limit {
		return Preview{Items: items}
	}
	return Preview{
		Items:     items[:limit],
		Remaining: len(items) - limit,
	}
}

// MoreLabel returns the "+N más" suffix, or "" when nothing was truncated.
func (p Preview) MoreLabel() string {
	if p.Remaining <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d más", p.Remaining)
}
