package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openwallet/openwallet-cli/internal/report"
	"github.com/openwallet/openwallet-cli/internal/store"
)

var (
	reportUserID   string
	reportStart    string
	reportEnd      string
	reportQuestion string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an LLM spending report for a user and period",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		txs, err := st.ListTransactions(ctx, store.TxFilter{
			UserID:    reportUserID,
			StartDate: reportStart,
			EndDate:   reportEnd,
		})
		if err != nil {
			return eris.Wrap(err, "list transactions")
		}

		client, err := initLLM()
		if err != nil {
			return err
		}

		g := report.NewGenerator(client)
		res, err := g.Generate(ctx, report.Request{
			UserID:    reportUserID,
			StartDate: reportStart,
			EndDate:   reportEnd,
			Question:  reportQuestion,
		}, txs)
		if eris.Is(err, report.ErrNoData) {
			return eris.Errorf("no transactions for user %s in %s..%s", reportUserID, reportStart, reportEnd)
		}
		if err != nil {
			return eris.Wrap(err, "generate report")
		}

		zap.L().Info("report generated",
			zap.String("user_id", res.UserID),
			zap.Int("transaction_count", res.TransactionCount),
		)
		return printJSON(res)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportUserID, "user", "", "user ID (required)")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "start date YYYY-MM-DD, inclusive")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "end date YYYY-MM-DD, exclusive")
	reportCmd.Flags().StringVar(&reportQuestion, "question", "", "custom report question")
	_ = reportCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(reportCmd)
}
