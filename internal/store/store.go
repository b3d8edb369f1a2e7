package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/openwallet/openwallet-cli/internal/config"
	"github.com/openwallet/openwallet-cli/internal/model"
)

// TxFilter specifies criteria for listing transactions. StartDate is
// inclusive and EndDate exclusive, both YYYY-MM-DD.
type TxFilter struct {
	UserID    string `json:"user_id,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Category  string `json:"category,omitempty"`
	Merchant  string `json:"merchant,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for transactions and collected
// articles.
type Store interface {
	// Transactions
	SaveTransaction(ctx context.Context, tx model.Transaction) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filter TxFilter) ([]model.Transaction, error)

	// Articles
	SaveArticles(ctx context.Context, articles []model.Article) (int, error)
	ListArticles(ctx context.Context, limit int) ([]model.Article, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
