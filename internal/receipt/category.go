package receipt

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openwallet/openwallet-cli/internal/model"
)

// Category is one entry of the ordered classification table.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type keywordTables struct {
	Categories []Category `yaml:"categories"`
	BrandHints []string   `yaml:"brand_hints"`
}

//go:embed categories.yaml
var categoriesYAML []byte

var tables = mustLoadTables()

func mustLoadTables() keywordTables {
	var t keywordTables
	if err := yaml.Unmarshal(categoriesYAML, &t); err != nil {
		panic(fmt.Sprintf("receipt: parse categories.yaml: %v", err))
	}
	return t
}

// Categories returns the ordered category table.
func Categories() []Category { return tables.Categories }

func brandHints() []string { return tables.BrandHints }

// SuggestCategory scores each category by how many of its keywords occur as
// substrings of merchant + item names + memo (case-insensitive). The
// strictly highest count wins; ties keep the earlier-declared category.
// Returns "" when no keyword matched at all.
func SuggestCategory(merchant string, items []model.Item, memo string) string {
	var parts []string
	if merchant != "" {
		parts = append(parts, merchant)
	}
	for _, it := range items {
		parts = append(parts, it.Name)
	}
	if memo != "" {
		parts = append(parts, memo)
	}
	search := strings.ToLower(strings.Join(parts, " "))

	best := ""
	bestCount := 0
	for _, c := range tables.Categories {
		n := 0
		for _, kw := range c.Keywords {
			if strings.Contains(search, strings.ToLower(kw)) {
				n++
			}
		}
		if n > bestCount {
			bestCount = n
			best = c.Name
		}
	}
	return best
}
