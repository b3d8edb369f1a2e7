// Package collector gathers recent news articles for a set of keywords from
// the Google News RSS search feed. Per-entry failures are never fatal: bad
// dates, dead links, and thin pages are logged at debug level and skipped.
package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/openwallet/openwallet-cli/internal/config"
	"github.com/openwallet/openwallet-cli/internal/model"
)

const defaultFeedBase = "https://news.google.com/rss/search"

// Collector fetches and filters news articles keyword by keyword.
type Collector struct {
	cfg      config.CollectorConfig
	feed     *gofeed.Parser
	client   *http.Client
	limiter  *rate.Limiter
	feedBase string
}

// New creates a Collector from config.
func New(cfg config.CollectorConfig) *Collector {
	if cfg.MinChars == 0 {
		cfg.MinChars = 10
	}
	if cfg.MaxChars == 0 {
		cfg.MaxChars = 25000
	}
	if cfg.TimeoutSecs == 0 {
		cfg.TimeoutSecs = 10
	}
	if cfg.RatePerSec == 0 {
		cfg.RatePerSec = 5
	}

	client := &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second}

	fp := gofeed.NewParser()
	fp.Client = client
	fp.UserAgent = cfg.UserAgent

	return &Collector{
		cfg:      cfg,
		feed:     fp,
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		feedBase: defaultFeedBase,
	}
}

// searchURL builds the news-search feed URL for one keyword.
func (c *Collector) searchURL(keyword string) string {
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("hl", c.cfg.Lang)
	q.Set("gl", c.cfg.Region)
	q.Set("ceid", c.cfg.Region+":"+c.cfg.Lang)
	return c.feedBase + "?" + q.Encode()
}

// Collect walks each keyword's feed and returns up to maxArticles articles
// published within the last `days` days. Collection stops across all
// keywords the moment the cap is reached. A soft rate limit separates
// keyword fetches.
func (c *Collector) Collect(ctx context.Context, keywords []string, days, maxArticles int) []model.Article {
	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	var out []model.Article

	zap.L().Info("collecting articles",
		zap.Strings("keywords", keywords),
		zap.Int("days", days),
		zap.Int("max_articles", maxArticles),
	)

	for i, kw := range keywords {
		if i > 0 {
			if err := c.limiter.Wait(ctx); err != nil {
				return out
			}
		}

		feed, err := c.feed.ParseURLWithContext(c.searchURL(kw), ctx)
		if err != nil {
			zap.L().Debug("feed fetch failed, skipping keyword",
				zap.String("keyword", kw),
				zap.Error(err),
			)
			continue
		}

		for _, entry := range feed.Items {
			if entry.Link == "" {
				continue
			}

			pub := entry.PublishedParsed
			if pub == nil {
				zap.L().Debug("entry has no parseable publication date",
					zap.String("link", entry.Link),
				)
				continue
			}
			pubUTC := pub.UTC()

			if c.cfg.AcceptedYear != 0 && pubUTC.Year() != c.cfg.AcceptedYear {
				continue
			}
			if pubUTC.Before(cutoff) {
				continue
			}

			content, ok := c.fetchContent(ctx, entry.Link)
			if !ok {
				continue
			}

			out = append(out, model.Article{
				URL:         entry.Link,
				Title:       entry.Title,
				Source:      sourceOf(entry.Link),
				PublishedAt: pubUTC.Format(time.RFC3339),
				Content:     content,
			})

			if len(out) >= maxArticles {
				zap.L().Info("reached article cap", zap.Int("collected", len(out)))
				return out
			}
		}
	}

	zap.L().Info("collection finished", zap.Int("collected", len(out)))
	return out
}

// fetchContent downloads one article page and extracts its text. The second
// return value is false when the entry should be skipped.
func (c *Collector) fetchContent(ctx context.Context, link string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", false
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		zap.L().Debug("article fetch failed", zap.String("link", link), zap.Error(err))
		return "", false
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		zap.L().Debug("article fetch rejected",
			zap.String("link", link),
			zap.Int("status", resp.StatusCode),
		)
		return "", false
	}

	text, err := extractText(resp.Body, c.cfg.MinChars)
	if err != nil {
		zap.L().Debug("article parse failed", zap.String("link", link), zap.Error(err))
		return "", false
	}
	if runeLen(text) < c.cfg.MinChars {
		zap.L().Debug("article too short", zap.String("link", link), zap.Int("chars", runeLen(text)))
		return "", false
	}

	return clampRunes(text, c.cfg.MaxChars), true
}

func sourceOf(link string) string {
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		return u.Host
	}
	return "Google News"
}
