package receipt

import "github.com/openwallet/openwallet-cli/internal/model"

// Parse runs the full extraction pipeline over raw OCR text and assembles
// the receipt record. Every field degrades independently to its zero value
// when extraction fails; Parse itself never errors.
func Parse(rawText, memo string) model.OCRResult {
	lines := Normalize(rawText)

	merchant := ExtractMerchant(lines)
	items := ExtractItems(lines)

	return model.OCRResult{
		Merchant:          merchant,
		Amount:            ExtractAmount(rawText),
		Date:              ExtractDate(rawText),
		Items:             items,
		SuggestedCategory: SuggestCategory(merchant, items, memo),
		RawText:           rawText,
	}
}
