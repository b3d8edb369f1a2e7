package model

// Article is one collected news article. URL is the dedup key when the
// article is persisted.
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"` // RFC 3339, UTC
	Content     string `json:"content"`                // clamped to collector max_chars
}

// TrendSummary is the structured digest produced by the summary orchestrator.
type TrendSummary struct {
	PeriodStart   string         `json:"period_start"` // ISO date, <= PeriodEnd
	PeriodEnd     string         `json:"period_end"`
	Keywords      []string       `json:"keywords"`
	Bullets       []string       `json:"bullets"`
	KeyStats      []string       `json:"key_stats"`
	Risks         []string       `json:"risks"`
	Opportunities []string       `json:"opportunities"`
	Sources       []string       `json:"sources"`
	Model         string         `json:"model"`
	RawResponse   map[string]any `json:"raw_response,omitempty"`
}
