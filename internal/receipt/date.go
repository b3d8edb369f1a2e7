package receipt

import (
	"fmt"
	"regexp"
	"strconv"
)

// datePattern pairs a regexp with a builder for the normalized date string.
// Patterns are tried in order and the first match wins, so more specific
// forms must come before weaker ones.
type datePattern struct {
	re    *regexp.Regexp
	build func(m []string) string
}

var datePatterns = []datePattern{
	{
		// Full date: 2025-11-03, 2025.11.3, 2025/11/03, 2025년 11월 3일
		re: regexp.MustCompile(`(20\d{2})\s*[.\-/년]\s*(\d{1,2})\s*[.\-/월]\s*(\d{1,2})\s*일?`),
		build: func(m []string) string {
			return fmt.Sprintf("%s-%02d-%02d", m[1], mustAtoi(m[2]), mustAtoi(m[3]))
		},
	},
	{
		// Two-digit year, assumed 2000s: 25.11.03, 25-11-3
		re: regexp.MustCompile(`(\d{2})\s*[.\-/]\s*(\d{1,2})\s*[.\-/]\s*(\d{1,2})`),
		build: func(m []string) string {
			return fmt.Sprintf("20%s-%02d-%02d", m[1], mustAtoi(m[2]), mustAtoi(m[3]))
		},
	},
	{
		// Month and day only: 11/03, 11월 3일. No year is recoverable.
		re: regexp.MustCompile(`(\d{1,2})\s*[/월]\s*(\d{1,2})\s*일?`),
		build: func(m []string) string {
			return fmt.Sprintf("%02d-%02d", mustAtoi(m[1]), mustAtoi(m[2]))
		},
	},
}

// ExtractDate scans text against the ordered date patterns. A full date wins
// over a month-day-only match even when both are present. Returns "" when no
// pattern matches.
func ExtractDate(text string) string {
	for _, p := range datePatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return p.build(m)
		}
	}
	return ""
}

// mustAtoi converts digit-only regexp captures.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
