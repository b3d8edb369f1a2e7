// Package stats computes deterministic spend aggregates over transaction
// rows. All date comparisons work lexically on YYYY-MM-DD strings and every
// range is half-open: start inclusive, end exclusive.
package stats

import (
	"sort"

	"github.com/openwallet/openwallet-cli/internal/model"
)

// Filter narrows an aggregate to a user and optional category/merchant sets.
// Empty slices mean no filtering on that dimension.
type Filter struct {
	UserID     string
	Categories []string
	Merchants  []string
}

func inRange(date, start, end string) bool {
	return start <= date && date < end
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (f Filter) matches(tx model.Transaction) bool {
	if tx.UserID != f.UserID {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, tx.Category) {
		return false
	}
	if len(f.Merchants) > 0 && !contains(f.Merchants, tx.Merchant) {
		return false
	}
	return true
}

// TotalSpend sums amounts in [start, end) for rows passing the filter.
func TotalSpend(txs []model.Transaction, f Filter, start, end string) int {
	total := 0
	for _, tx := range txs {
		if !f.matches(tx) || !inRange(tx.Date, start, end) {
			continue
		}
		total += tx.Amount
	}
	return total
}

// TopMerchants ranks merchants by total spend in [start, end), descending.
// Ties break on merchant name so the ranking is stable across runs. A
// non-positive limit returns the full ranking.
func TopMerchants(txs []model.Transaction, f Filter, start, end string, limit int) []model.MerchantSpend {
	agg := map[string]int{}
	for _, tx := range txs {
		if !f.matches(tx) || !inRange(tx.Date, start, end) {
			continue
		}
		agg[tx.Merchant] += tx.Amount
	}

	ranked := make([]model.MerchantSpend, 0, len(agg))
	for m, amt := range agg {
		ranked = append(ranked, model.MerchantSpend{Merchant: m, Amount: amt})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Merchant < ranked[j].Merchant
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MonthlyTrend buckets spend by calendar month (YYYY-MM, taken from the date
// prefix) for rows passing the filter, ascending by period.
func MonthlyTrend(txs []model.Transaction, f Filter) []model.TrendPoint {
	box := map[string]int{}
	for _, tx := range txs {
		if !f.matches(tx) || len(tx.Date) < 7 {
			continue
		}
		box[tx.Date[:7]] += tx.Amount
	}

	series := make([]model.TrendPoint, 0, len(box))
	for p, amt := range box {
		series = append(series, model.TrendPoint{Period: p, Amount: amt})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Period < series[j].Period })
	return series
}
