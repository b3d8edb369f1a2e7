package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openwallet/openwallet-cli/internal/model"
)

const sampleReceipt = `스타카페 강남점
2025.11.03 14:22
아메리카노 2개 4500원
카페라떼 1개 5,000원
합계: 9,500원
감사합니다`

func TestParse(t *testing.T) {
	got := Parse(sampleReceipt, "")

	assert.Equal(t, "스타카페 강남점", got.Merchant)
	assert.Equal(t, 9500, got.Amount)
	assert.Equal(t, "2025-11-03", got.Date)
	assert.Equal(t, []model.Item{
		{Name: "아메리카노", Qty: 2, Price: 4500},
		{Name: "카페라떼", Qty: 1, Price: 5000},
	}, got.Items)
	assert.Equal(t, "카페/커피", got.SuggestedCategory)
	assert.Equal(t, sampleReceipt, got.RawText)
}

func TestParse_EmptyText(t *testing.T) {
	got := Parse("", "")

	assert.Empty(t, got.Merchant)
	assert.Zero(t, got.Amount)
	assert.Empty(t, got.Date)
	assert.Empty(t, got.Items)
	assert.Empty(t, got.SuggestedCategory)
}
