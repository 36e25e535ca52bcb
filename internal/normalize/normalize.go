// Package normalize turns the raw, best-effort parsed records supplied by the
// listing and permit source collaborators into the typed records the analysis
// engine consumes. Unparseable values are dropped, never guessed.
package normalize

import (
	"strings"
	"time"
)

// Date layouts the two sources are known to emit.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
}

// ParseDate parses a source date string in either registry format. Returns
// nil when the text does not parse; callers drop the value rather than guess.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
