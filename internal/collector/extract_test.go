package collector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PrefersParagraphs(t *testing.T) {
	html := `<html><body>
		<nav>메뉴 메뉴 메뉴</nav>
		<p>첫 번째 문단입니다.</p>
		<p>두 번째   문단입니다.</p>
	</body></html>`

	got, err := extractText(strings.NewReader(html), 5)
	require.NoError(t, err)
	assert.Equal(t, "첫 번째 문단입니다. 두 번째 문단입니다.", got)
}

func TestExtractText_FallsBackToWholePage(t *testing.T) {
	// Paragraph text is too short, so the whole visible page text is used.
	html := `<html><body>
		<p>짧음</p>
		<div>본문이 div 안에만 들어 있는 기사 페이지입니다.</div>
	</body></html>`

	got, err := extractText(strings.NewReader(html), 50)
	require.NoError(t, err)
	assert.Contains(t, got, "본문이 div 안에만 들어 있는 기사 페이지입니다.")
	assert.Contains(t, got, "짧음")
}

func TestExtractText_IgnoresScriptAndStyle(t *testing.T) {
	html := `<html><head><style>p{color:red}</style></head><body>
		<script>var tracking = "analytics";</script>
		<p>실제 본문 텍스트입니다.</p>
	</body></html>`

	got, err := extractText(strings.NewReader(html), 5)
	require.NoError(t, err)
	assert.Equal(t, "실제 본문 텍스트입니다.", got)
}

func TestClampRunes(t *testing.T) {
	assert.Equal(t, "가나다", clampRunes("가나다라마", 3))
	assert.Equal(t, "가나", clampRunes("가나", 10))
}
