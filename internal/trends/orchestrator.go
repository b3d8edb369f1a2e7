// Package trends produces structured spending-trend summaries from recently
// collected news articles. When collection comes back empty the orchestrator
// substitutes fixed demo content instead of failing.
package trends

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openwallet/openwallet-cli/internal/llm"
	"github.com/openwallet/openwallet-cli/internal/model"
)

const dateISO = "2006-01-02"

const (
	defaultDays        = 7
	defaultMaxArticles = 30
	maxNewTokens       = 500
)

const systemPrompt = "너는 한국어 경제/리테일/소비 트렌드 애널리스트다. " +
	"반드시 '유효한 JSON 한 개'만 출력하라. " +
	"말머리/설명/코드블록 없이, 아래 스키마 그대로 출력하라."

// ArticleCollector gathers recent articles for a keyword set.
type ArticleCollector interface {
	Collect(ctx context.Context, keywords []string, days, maxArticles int) []model.Article
}

// Orchestrator runs the collect-then-summarize pipeline.
type Orchestrator struct {
	collector    ArticleCollector
	client       llm.Client
	contextChars int
	now          func() time.Time
}

// NewOrchestrator wires a collector and a model client. contextChars bounds
// the joined article text sent to the model; zero means 32768.
func NewOrchestrator(collector ArticleCollector, client llm.Client, contextChars int) *Orchestrator {
	if contextChars <= 0 {
		contextChars = 32768
	}
	return &Orchestrator{
		collector:    collector,
		client:       client,
		contextChars: contextChars,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Request describes one summarization run. Zero Days and MaxArticles take
// the defaults (7 days, 30 articles).
type Request struct {
	Keywords    []string
	Days        int
	MaxArticles int
}

// Run collects articles and summarizes them into a TrendSummary. The period
// fields always reflect the requested window ending now, whether or not any
// articles were found. A model transport failure is returned as an error;
// unparseable model output is not, it degrades to empty sections.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*model.TrendSummary, error) {
	days := req.Days
	if days <= 0 {
		days = defaultDays
	}
	maxArticles := req.MaxArticles
	if maxArticles <= 0 {
		maxArticles = defaultMaxArticles
	}

	arts := o.collector.Collect(ctx, req.Keywords, days, maxArticles)
	zap.L().Info("articles collected",
		zap.Strings("keywords", req.Keywords),
		zap.Int("days", days),
		zap.Int("count", len(arts)))

	now := o.now()
	if len(arts) == 0 {
		zap.L().Warn("no articles collected, using demo fallback summary")
		return demoSummary(req.Keywords, days, o.client.Model(), now), nil
	}

	out, err := o.client.Generate(ctx, o.buildMessages(arts), llm.Options{MaxTokens: maxNewTokens})
	if err != nil {
		return nil, eris.Wrap(err, "failed to generate trend summary")
	}

	rep := repairModelOutput(out)
	sources := make([]string, 0, len(arts))
	for _, a := range arts {
		sources = append(sources, a.URL)
	}

	return &model.TrendSummary{
		PeriodStart:   now.AddDate(0, 0, -days).Format(dateISO),
		PeriodEnd:     now.Format(dateISO),
		Keywords:      req.Keywords,
		Bullets:       orEmpty(rep.Bullets),
		KeyStats:      orEmpty(rep.KeyStats),
		Risks:         orEmpty(rep.Risks),
		Opportunities: orEmpty(rep.Opportunities),
		Sources:       sources,
		Model:         o.client.Model(),
		RawResponse: map[string]any{
			"bullets":       orEmpty(rep.Bullets),
			"key_stats":     orEmpty(rep.KeyStats),
			"risks":         orEmpty(rep.Risks),
			"opportunities": orEmpty(rep.Opportunities),
		},
	}, nil
}

// buildMessages joins the articles into one block, clamped to 90% of the
// context budget, and wraps it in the JSON-forcing prompt pair.
func (o *Orchestrator) buildMessages(arts []model.Article) []llm.Message {
	blocks := make([]string, 0, len(arts))
	for _, a := range arts {
		blocks = append(blocks, fmt.Sprintf("# %s\n%s", a.Title, a.Content))
	}
	joined := strings.Join(blocks, "\n\n")

	limit := o.contextChars * 9 / 10
	if r := []rune(joined); len(r) > limit {
		joined = string(r[:limit])
	}

	user := "아래 기사 묶음을 요약해 bullets, key_stats, risks, opportunities 키를 포함한 JSON으로 내놔. " +
		"가능하면 각 배열에 3~6개 항목을 넣고, 없으면 빈 배열을 넣어라.\n\n" +
		joined +
		"\n\n출력 JSON 예시:\n" +
		"{\n" +
		"  \"bullets\": [\"...\"],\n" +
		"  \"key_stats\": [\"...\"],\n" +
		"  \"risks\": [\"...\"],\n" +
		"  \"opportunities\": [\"...\"]\n" +
		"}\n"

	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
