package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/openwallet/openwallet-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS transactions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	date       TEXT NOT NULL,
	merchant   TEXT NOT NULL DEFAULT '',
	amount     INTEGER NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	memo       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS articles (
	id           TEXT PRIMARY KEY,
	url          TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT '',
	published_at TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL DEFAULT '',
	fetched_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveTransaction(ctx context.Context, tx model.Transaction) (*model.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, date, merchant, amount, category, memo, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Date, tx.Merchant, tx.Amount, tx.Category, tx.Memo, tx.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert transaction")
	}
	return &tx, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, filter TxFilter) ([]model.Transaction, error) {
	query := `SELECT id, user_id, date, merchant, amount, category, memo, created_at FROM transactions WHERE 1=1`
	var args []any

	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.StartDate != "" {
		query += ` AND date >= ?`
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += ` AND date < ?`
		args = append(args, filter.EndDate)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Merchant != "" {
		query += ` AND merchant = ?`
		args = append(args, filter.Merchant)
	}
	query += ` ORDER BY date ASC, created_at ASC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list transactions")
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Date, &tx.Merchant, &tx.Amount, &tx.Category, &tx.Memo, &tx.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan transaction")
		}
		txs = append(txs, tx)
	}
	return txs, eris.Wrap(rows.Err(), "sqlite: list transactions iterate")
}

func (s *SQLiteStore) SaveArticles(ctx context.Context, articles []model.Article) (int, error) {
	saved := 0
	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO articles (id, url, title, source, published_at, content, fetched_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (url) DO UPDATE SET title = ?, source = ?, published_at = ?, content = ?, fetched_at = ?`,
			uuid.New().String(), a.URL, a.Title, a.Source, a.PublishedAt, a.Content, time.Now().UTC(),
			a.Title, a.Source, a.PublishedAt, a.Content, time.Now().UTC(),
		)
		if err != nil {
			return saved, eris.Wrapf(err, "sqlite: upsert article %s", a.URL)
		}
		saved++
	}
	return saved, nil
}

func (s *SQLiteStore) ListArticles(ctx context.Context, limit int) ([]model.Article, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT url, title, source, published_at, content FROM articles
		 ORDER BY published_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list articles")
	}
	defer rows.Close()

	var arts []model.Article
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.URL, &a.Title, &a.Source, &a.PublishedAt, &a.Content); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan article")
		}
		arts = append(arts, a)
	}
	return arts, eris.Wrap(rows.Err(), "sqlite: list articles iterate")
}
