package trends

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model output is never trusted as-is. The repair chain tries parsers in
// sequence; each either produces a result or declines, and the final stage
// always yields a (possibly empty) result rather than an error.

var (
	fenceMarkerRe = regexp.MustCompile("```[a-zA-Z]*")
	roleTagRe     = regexp.MustCompile(`\b(system|user|assistant)\b\s*`)
	jsonSpanRe    = regexp.MustCompile(`(?s)\{.*\}`)
	bulletLineRe  = regexp.MustCompile(`(?m)^\s*[-*•]\s*(.+)$`)
	sectionWS     = regexp.MustCompile(`\s+`)
)

// repaired holds the four summary sections recovered from model output.
type repaired struct {
	Bullets       []string `json:"bullets"`
	KeyStats      []string `json:"key_stats"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
}

// repairModelOutput recovers the summary sections from freeform model text.
// Fence markers and role tags are stripped first; then the first {...} span
// is parsed as JSON; failing that, section headers are scraped for bullet
// lines. An all-empty result is valid, never an error.
func repairModelOutput(raw string) repaired {
	txt := fenceMarkerRe.ReplaceAllString(raw, "")
	txt = roleTagRe.ReplaceAllString(txt, "")

	if span := jsonSpanRe.FindString(txt); span != "" {
		var r repaired
		if err := json.Unmarshal([]byte(span), &r); err == nil {
			return r
		}
	}

	return repaired{
		Bullets:       grabSection(txt, "bullets"),
		KeyStats:      grabSection(txt, "key_stats"),
		Risks:         grabSection(txt, "risks"),
		Opportunities: grabSection(txt, "opportunities"),
	}
}

// grabSection captures the text between a section label and the next label
// (or end of text), then extracts bullet-prefixed lines. When no bullets are
// found the first 6 non-empty lines are taken verbatim.
func grabSection(txt, label string) []string {
	re := regexp.MustCompile(`(?is)` + label + `\s*[:：]\s*(.*?)(?:\n\s*\w+\s*[:：]|\z)`)
	m := re.FindStringSubmatch(txt)
	if m == nil {
		return nil
	}
	block := m[1]

	var items []string
	for _, bm := range bulletLineRe.FindAllStringSubmatch(block, -1) {
		if it := cleanItem(bm[1]); it != "" {
			items = append(items, it)
		}
	}
	if len(items) > 0 {
		return items
	}

	for _, line := range strings.Split(block, "\n") {
		if it := cleanItem(line); it != "" {
			items = append(items, it)
			if len(items) == 6 {
				break
			}
		}
	}
	return items
}

func cleanItem(s string) string {
	return strings.TrimSpace(sectionWS.ReplaceAllString(s, " "))
}
