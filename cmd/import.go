package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openwallet/openwallet-cli/internal/model"
)

var (
	importFilePath string
	importUserID   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from a JSON file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(importFilePath)
		if err != nil {
			return eris.Wrap(err, "read transactions file")
		}

		var txs []model.Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			return eris.Wrap(err, "parse transactions file")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		created := 0
		for _, tx := range txs {
			if importUserID != "" {
				tx.UserID = importUserID
			}
			if tx.UserID == "" {
				return eris.New("transaction without user_id and no --user override")
			}
			if _, err := st.SaveTransaction(ctx, tx); err != nil {
				return eris.Wrapf(err, "save transaction %s %s", tx.Date, tx.Merchant)
			}
			created++
		}

		zap.L().Info("import complete",
			zap.Int("created", created),
			zap.String("file", importFilePath),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "JSON file with a transaction array (required)")
	importCmd.Flags().StringVar(&importUserID, "user", "", "override user ID for every row")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
