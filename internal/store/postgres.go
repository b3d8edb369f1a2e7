package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/openwallet/openwallet-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS transactions (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id    TEXT NOT NULL,
	date       TEXT NOT NULL,
	merchant   TEXT NOT NULL DEFAULT '',
	amount     BIGINT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	memo       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS articles (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	url          TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT '',
	published_at TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL DEFAULT '',
	fetched_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveTransaction(ctx context.Context, tx model.Transaction) (*model.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO transactions (id, user_id, date, merchant, amount, category, memo, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.ID, tx.UserID, tx.Date, tx.Merchant, tx.Amount, tx.Category, tx.Memo, tx.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert transaction")
	}
	return &tx, nil
}

func (s *PostgresStore) ListTransactions(ctx context.Context, filter TxFilter) ([]model.Transaction, error) {
	query := `SELECT id, user_id, date, merchant, amount, category, memo, created_at FROM transactions WHERE true`
	args := []any{}
	argIdx := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(` AND user_id = $%d`, argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.StartDate != "" {
		query += fmt.Sprintf(` AND date >= $%d`, argIdx)
		args = append(args, filter.StartDate)
		argIdx++
	}
	if filter.EndDate != "" {
		query += fmt.Sprintf(` AND date < $%d`, argIdx)
		args = append(args, filter.EndDate)
		argIdx++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(` AND category = $%d`, argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Merchant != "" {
		query += fmt.Sprintf(` AND merchant = $%d`, argIdx)
		args = append(args, filter.Merchant)
		argIdx++
	}
	query += ` ORDER BY date ASC, created_at ASC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list transactions")
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Date, &tx.Merchant, &tx.Amount, &tx.Category, &tx.Memo, &tx.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan transaction")
		}
		txs = append(txs, tx)
	}
	return txs, eris.Wrap(rows.Err(), "postgres: list transactions iterate")
}

func (s *PostgresStore) SaveArticles(ctx context.Context, articles []model.Article) (int, error) {
	saved := 0
	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		_, err := s.pool.Exec(ctx,
			`INSERT INTO articles (id, url, title, source, published_at, content, fetched_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (url) DO UPDATE SET title = $3, source = $4, published_at = $5, content = $6, fetched_at = $7`,
			uuid.New().String(), a.URL, a.Title, a.Source, a.PublishedAt, a.Content, time.Now().UTC(),
		)
		if err != nil {
			return saved, eris.Wrapf(err, "postgres: upsert article %s", a.URL)
		}
		saved++
	}
	return saved, nil
}

func (s *PostgresStore) ListArticles(ctx context.Context, limit int) ([]model.Article, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT url, title, source, published_at, content FROM articles
		 ORDER BY published_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list articles")
	}
	defer rows.Close()

	var arts []model.Article
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.URL, &a.Title, &a.Source, &a.PublishedAt, &a.Content); err != nil {
			return nil, eris.Wrap(err, "postgres: scan article")
		}
		arts = append(arts, a)
	}
	return arts, eris.Wrap(rows.Err(), "postgres: list articles iterate")
}
