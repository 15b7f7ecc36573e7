package probe

import (
	"fmt"
	"regexp"
	"strings"
)

// Page-text classifier for the heuristic (Strategy B) probe. Unavailability
// phrases are checked before any availability signal: an explicit "sold
// out" on the page beats a stray "book now" in the footer.

var unavailablePhrases = []string{
	"sold out",
	"no tours available",
	"no dates available",
	"not available",
	"fully booked",
	"currently unavailable",
	"check back later",
}

var availablePhrases = []string{
	"book now",
	"reserve your spot",
	"tours available",
	"dates available",
	"select a date",
	"register now",
}

var (
	// "March 5", "march 21" and the like; a concrete date on a booking
	// page is a strong availability signal.
	datePattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}\b`)

	tourLinkPattern = regexp.MustCompile(`(?i)<a\b[^>]*href="[^"]*tour[^"]*"`)
)

// Classification is the verdict for one rendered page.
type Classification struct {
	Found    bool
	Evidence string
}

// Classify inspects page text for availability. Order matters:
// unavailability phrases win, then availability phrases, a date pattern,
// and tour-link markup; with no signal at all the page is indeterminate
// and treated as not found.
func Classify(text string) Classification {
	lower := strings.ToLower(text)

	for _, phrase := range unavailablePhrases {
		if strings.Contains(lower, phrase) {
			return Classification{Found: false, Evidence: fmt.Sprintf("unavailable: page says %q", phrase)}
		}
	}

	for _, phrase := range availablePhrases {
		if strings.Contains(lower, phrase) {
			return Classification{Found: true, Evidence: fmt.Sprintf("page says %q", phrase)}
		}
	}
	if m := datePattern.FindString(text); m != "" {
		return Classification{Found: true, Evidence: fmt.Sprintf("date listed: %q", m)}
	}
	if tourLinkPattern.MatchString(text) {
		return Classification{Found: true, Evidence: "tour links present"}
	}

	return Classification{Found: false, Evidence: "indeterminate page state, no availability signals detected"}
}
