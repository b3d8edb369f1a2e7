package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openwallet/openwallet-cli/internal/model"
	"github.com/openwallet/openwallet-cli/internal/ocr"
	"github.com/openwallet/openwallet-cli/internal/receipt"
)

var (
	scanImagePath string
	scanTextPath  string
	scanMemo      string
	scanUserID    string
	scanSave      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Parse a receipt image or raw OCR text into a structured result",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var rawText string
		switch {
		case scanTextPath != "":
			data, err := os.ReadFile(scanTextPath)
			if err != nil {
				return eris.Wrap(err, "read text file")
			}
			rawText = string(data)
		case scanImagePath != "":
			image, err := os.ReadFile(scanImagePath)
			if err != nil {
				return eris.Wrap(err, "read image file")
			}
			if len(image) == 0 {
				return eris.New("image file is empty")
			}
			if maxBytes := cfg.OCR.MaxBytes; maxBytes > 0 && len(image) > maxBytes {
				return eris.Errorf("image exceeds %d bytes", maxBytes)
			}

			gateway, err := ocr.NewGateway(cfg.OCR)
			if err != nil {
				return err
			}
			rawText, err = gateway.RecognizeText(ctx, image)
			if err != nil {
				return eris.Wrap(err, "recognize text")
			}
		default:
			return eris.New("either --image or --text is required")
		}

		result := receipt.Parse(rawText, scanMemo)

		zap.L().Info("receipt parsed",
			zap.String("merchant", result.Merchant),
			zap.Int("amount", result.Amount),
			zap.String("date", result.Date),
			zap.Int("items", len(result.Items)),
			zap.String("category", result.SuggestedCategory),
		)

		if scanSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}

			saved, err := st.SaveTransaction(ctx, model.Transaction{
				UserID:   scanUserID,
				Date:     result.Date,
				Merchant: result.Merchant,
				Amount:   result.Amount,
				Category: result.SuggestedCategory,
				Memo:     scanMemo,
			})
			if err != nil {
				return eris.Wrap(err, "save transaction")
			}
			zap.L().Info("transaction saved", zap.String("id", saved.ID))
		}

		return printJSON(result)
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanImagePath, "image", "", "receipt image file")
	scanCmd.Flags().StringVar(&scanTextPath, "text", "", "raw OCR text file (skips the vision gateway)")
	scanCmd.Flags().StringVar(&scanMemo, "memo", "", "user memo attached to the receipt")
	scanCmd.Flags().StringVar(&scanUserID, "user", "", "user ID for --save")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "store the parsed result as a transaction")
	rootCmd.AddCommand(scanCmd)
}
