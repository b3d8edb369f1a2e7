package model

// Item is a single purchased line item extracted from a receipt.
type Item struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price int    `json:"price"`
}

// OCRResult is the structured record produced from one scanned receipt.
// Zero values mean "unknown": empty Merchant/Date and Amount of 0 indicate
// that the extractor found nothing, not that the receipt was free.
type OCRResult struct {
	Merchant          string `json:"merchant,omitempty"`
	Amount            int    `json:"amount,omitempty"`
	Date              string `json:"date,omitempty"`
	Items             []Item `json:"items"`
	SuggestedCategory string `json:"suggested_category,omitempty"`
	RawText           string `json:"raw_text,omitempty"`
}
