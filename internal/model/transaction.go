package model

import "time"

// Transaction is one stored expense row, typically created from an OCRResult.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Merchant  string    `json:"merchant"`
	Amount    int       `json:"amount"` // KRW
	Category  string    `json:"category,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MerchantSpend is one row of a top-merchants ranking.
type MerchantSpend struct {
	Merchant string `json:"merchant"`
	Amount   int    `json:"amount"`
}

// TrendPoint is one bucket of a periodic spend series.
type TrendPoint struct {
	Period string `json:"period"` // YYYY-MM
	Amount int    `json:"amount"`
}
