package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwallet/openwallet-cli/internal/config"
	"github.com/openwallet/openwallet-cli/internal/store"
)

func resetScanFlags() {
	scanImagePath = ""
	scanTextPath = ""
	scanMemo = ""
	scanUserID = ""
	scanSave = false
	// Execute normally installs the context; invoking RunE directly needs
	// one set explicitly or store calls receive a nil context.
	scanCmd.SetContext(context.Background())
}

func TestScanCmd_NoInput(t *testing.T) {
	resetScanFlags()
	cfg = &config.Config{}

	err := scanCmd.RunE(scanCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --image or --text is required")
}

func TestScanCmd_EmptyImageRejected(t *testing.T) {
	resetScanFlags()
	cfg = &config.Config{OCR: config.OCRConfig{MaxBytes: 8 * 1024 * 1024}}

	path := filepath.Join(t.TempDir(), "empty.jpg")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	scanImagePath = path

	err := scanCmd.RunE(scanCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestScanCmd_OversizedImageRejected(t *testing.T) {
	resetScanFlags()
	cfg = &config.Config{OCR: config.OCRConfig{MaxBytes: 16}}

	path := filepath.Join(t.TempDir(), "big.jpg")
	require.NoError(t, os.WriteFile(path, make([]byte, 17), 0o644))
	scanImagePath = path

	err := scanCmd.RunE(scanCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestScanCmd_TextInputSkipsGateway(t *testing.T) {
	resetScanFlags()
	// Provider "none" would fail any vision call; text input must not touch it.
	cfg = &config.Config{OCR: config.OCRConfig{Provider: "none"}}

	path := filepath.Join(t.TempDir(), "receipt.txt")
	raw := "스타카페 강남점\n2025.11.03\n아메리카노 2 9,000원\n합계 9,000원\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	scanTextPath = path

	err := scanCmd.RunE(scanCmd, nil)
	require.NoError(t, err)
}

func TestScanCmd_SaveStoresTransaction(t *testing.T) {
	resetScanFlags()
	cfg = &config.Config{
		OCR: config.OCRConfig{Provider: "none"},
		Store: config.StoreConfig{
			Driver:      "sqlite",
			DatabaseURL: filepath.Join(t.TempDir(), "scan.db"),
		},
	}

	path := filepath.Join(t.TempDir(), "receipt.txt")
	raw := "스타카페 강남점\n2025.11.03\n합계 9,500원\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	scanTextPath = path
	scanUserID = "u_123"
	scanSave = true

	require.NoError(t, scanCmd.RunE(scanCmd, nil))

	st, err := initStore(scanCmd.Context())
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	txs, err := st.ListTransactions(scanCmd.Context(), store.TxFilter{UserID: "u_123"})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 9500, txs[0].Amount)
	assert.Equal(t, "2025-11-03", txs[0].Date)
}
