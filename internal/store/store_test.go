package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwallet/openwallet-cli/internal/config"
)

func TestOpen_SQLite(t *testing.T) {
	st, err := Open(context.Background(), config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	assert.IsType(t, &SQLiteStore{}, st)
}

func TestOpen_DefaultDriverIsSQLite(t *testing.T) {
	st, err := Open(context.Background(), config.StoreConfig{
		DatabaseURL: filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	assert.IsType(t, &SQLiteStore{}, st)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
