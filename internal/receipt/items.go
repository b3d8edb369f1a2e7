package receipt

import (
	"regexp"
	"strings"

	"github.com/openwallet/openwallet-cli/internal/model"
)

// itemLineRe matches "<name> <qty>[unit] <price>[원]", e.g.
// "아메리카노 2개 4500원" or "우유 1 2,500".
var itemLineRe = regexp.MustCompile(`^(.+?)\s+(\d+)\s*(?:개|EA|ea)?\s+([0-9][0-9,]*)\s*원?$`)

// ExtractItems parses line items from normalized receipt lines. Lines that
// do not fit the item shape are skipped silently.
func ExtractItems(lines []string) []model.Item {
	var items []model.Item
	for _, line := range lines {
		m := itemLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		items = append(items, model.Item{
			Name:  strings.TrimSpace(m[1]),
			Qty:   mustAtoi(m[2]),
			Price: ToIntMoney(m[3]),
		})
	}
	return items
}
