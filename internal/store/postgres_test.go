package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwallet/openwallet-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_SaveTransaction(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), "u_123", "2025-11-03", "스타카페", 6100, "카페/커피", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	saved, err := s.SaveTransaction(context.Background(), model.Transaction{
		UserID: "u_123", Date: "2025-11-03", Merchant: "스타카페", Amount: 6100, Category: "카페/커피",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListTransactions_Empty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	// ListTransactions always appends the default LIMIT argument.
	mock.ExpectQuery(`SELECT id, user_id, date, merchant, amount, category, memo, created_at FROM transactions`).
		WithArgs("u_123", 1000).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.ListTransactions(context.Background(), TxFilter{UserID: "u_123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list transactions")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveArticles_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT \(url\) DO UPDATE`).
		WithArgs(pgxmock.AnyArg(), "https://news.example.com/a", "제목", "example.com", "", "본문", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	n, err := s.SaveArticles(context.Background(), []model.Article{
		{URL: "https://news.example.com/a", Title: "제목", Source: "example.com", Content: "본문"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS transactions`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
