// Package receipt turns noisy OCR text from scanned receipts into a
// structured expense record: merchant, amount, date, line items, and a
// suggested category.
package receipt

import (
	"regexp"
	"strings"
)

var wsRun = regexp.MustCompile(`\s+`)

// Normalize splits raw OCR output into ordered non-empty lines. Internal
// whitespace runs are collapsed to a single space and edges are trimmed.
func Normalize(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(wsRun.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
