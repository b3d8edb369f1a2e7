package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/openwallet/openwallet-cli/internal/model"
	"github.com/openwallet/openwallet-cli/internal/stats"
	"github.com/openwallet/openwallet-cli/internal/store"
)

var (
	statsUserID     string
	statsStart      string
	statsEnd        string
	statsCategories []string
	statsMerchants  []string
	statsLimit      int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Deterministic spend aggregates",
}

func loadStatsRows(cmd *cobra.Command) ([]model.Transaction, stats.Filter, error) {
	ctx := cmd.Context()

	filter := stats.Filter{
		UserID:     statsUserID,
		Categories: statsCategories,
		Merchants:  statsMerchants,
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, filter, err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return nil, filter, eris.Wrap(err, "migrate store")
	}

	txs, err := st.ListTransactions(ctx, store.TxFilter{UserID: statsUserID})
	if err != nil {
		return nil, filter, eris.Wrap(err, "list transactions")
	}
	return txs, filter, nil
}

var statsTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Total spend in a date range",
	RunE: func(cmd *cobra.Command, _ []string) error {
		txs, filter, err := loadStatsRows(cmd)
		if err != nil {
			return err
		}
		total := stats.TotalSpend(txs, filter, statsStart, statsEnd)
		return printJSON(map[string]any{"total": total, "currency": "KRW"})
	},
}

var statsTopMerchantsCmd = &cobra.Command{
	Use:   "top-merchants",
	Short: "Merchants ranked by spend in a date range",
	RunE: func(cmd *cobra.Command, _ []string) error {
		txs, filter, err := loadStatsRows(cmd)
		if err != nil {
			return err
		}
		ranked := stats.TopMerchants(txs, filter, statsStart, statsEnd, statsLimit)
		return printJSON(map[string]any{"top_merchants": ranked, "currency": "KRW"})
	},
}

var statsTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Monthly spend series",
	RunE: func(cmd *cobra.Command, _ []string) error {
		txs, filter, err := loadStatsRows(cmd)
		if err != nil {
			return err
		}
		series := stats.MonthlyTrend(txs, filter)
		return printJSON(map[string]any{"series": series, "currency": "KRW"})
	},
}

func init() {
	statsCmd.PersistentFlags().StringVar(&statsUserID, "user", "", "user ID (required)")
	statsCmd.PersistentFlags().StringVar(&statsStart, "start", "", "start date YYYY-MM-DD, inclusive")
	statsCmd.PersistentFlags().StringVar(&statsEnd, "end", "", "end date YYYY-MM-DD, exclusive")
	statsCmd.PersistentFlags().StringSliceVar(&statsCategories, "category", nil, "limit to categories")
	statsCmd.PersistentFlags().StringSliceVar(&statsMerchants, "merchant", nil, "limit to merchants")
	statsTopMerchantsCmd.Flags().IntVar(&statsLimit, "limit", 5, "ranking size")
	_ = statsCmd.MarkPersistentFlagRequired("user")

	statsCmd.AddCommand(statsTotalCmd, statsTopMerchantsCmd, statsTrendCmd)
	rootCmd.AddCommand(statsCmd)
}
