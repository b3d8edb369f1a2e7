package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openwallet/openwallet-cli/internal/collector"
	"github.com/openwallet/openwallet-cli/internal/model"
	"github.com/openwallet/openwallet-cli/internal/trends"
)

// recordingCollector keeps the last batch of collected articles so the
// command can persist them after the summary run.
type recordingCollector struct {
	inner trends.ArticleCollector
	arts  []model.Article
}

func (r *recordingCollector) Collect(ctx context.Context, keywords []string, days, maxArticles int) []model.Article {
	r.arts = r.inner.Collect(ctx, keywords, days, maxArticles)
	return r.arts
}

var (
	trendsKeywords    string
	trendsDays        int
	trendsMaxArticles int
	trendsSave        bool
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Collect recent news and summarize spending trends",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var keywords []string
		for _, k := range strings.Split(trendsKeywords, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) == 0 {
			return eris.New("at least one keyword is required")
		}

		client, err := initLLM()
		if err != nil {
			return err
		}

		col := &recordingCollector{inner: collector.New(cfg.Collector)}
		o := trends.NewOrchestrator(col, client, cfg.LLM.ContextChars)

		summary, err := o.Run(ctx, trends.Request{
			Keywords:    keywords,
			Days:        trendsDays,
			MaxArticles: trendsMaxArticles,
		})
		if err != nil {
			return eris.Wrap(err, "trend summary")
		}

		if trendsSave && len(summary.Sources) > 0 {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}

			n, err := st.SaveArticles(ctx, col.arts)
			if err != nil {
				return eris.Wrap(err, "save articles")
			}
			zap.L().Info("articles saved", zap.Int("count", n))
		}

		return printJSON(summary)
	},
}

func init() {
	trendsCmd.Flags().StringVar(&trendsKeywords, "keywords", "", "comma-separated search keywords (required)")
	trendsCmd.Flags().IntVar(&trendsDays, "days", 7, "recency window in days")
	trendsCmd.Flags().IntVar(&trendsMaxArticles, "max-articles", 30, "article cap across all keywords")
	trendsCmd.Flags().BoolVar(&trendsSave, "save", false, "store collected articles")
	_ = trendsCmd.MarkFlagRequired("keywords")
	rootCmd.AddCommand(trendsCmd)
}
