package collector

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

var wsRun = regexp.MustCompile(`\s+`)

// extractText pulls the visible text of an article page. Paragraph text is
// preferred; when the paragraphs alone are shorter than minChars the whole
// visible page text is used instead.
func extractText(r io.Reader, minChars int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", eris.Wrap(err, "collector: parse html")
	}

	doc.Find("script, style, noscript").Remove()

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	pText := collapseWS(strings.Join(parts, " "))

	if runeLen(pText) >= minChars {
		return pText, nil
	}

	return collapseWS(doc.Text()), nil
}

func collapseWS(s string) string {
	return strings.TrimSpace(wsRun.ReplaceAllString(s, " "))
}

func runeLen(s string) int {
	return len([]rune(s))
}

// clampRunes truncates s to at most max runes.
func clampRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
