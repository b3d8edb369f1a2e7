package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwallet/openwallet-cli/internal/config"
)

type rssEntry struct {
	link    string
	title   string
	pubDate string // RFC 1123Z, empty to omit
}

func rssXML(entries []rssEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>news</title>`)
	for _, e := range entries {
		b.WriteString("<item>")
		fmt.Fprintf(&b, "<title>%s</title>", e.title)
		if e.link != "" {
			fmt.Fprintf(&b, "<link>%s</link>", e.link)
		}
		if e.pubDate != "" {
			fmt.Fprintf(&b, "<pubDate>%s</pubDate>", e.pubDate)
		}
		b.WriteString("</item>")
	}
	b.WriteString("</channel></rss>")
	return b.String()
}

// newsServer serves an RSS feed at /rss and article pages at /article/{n}.
type newsServer struct {
	*httptest.Server
	entries      []rssEntry
	pages        map[string]string
	articleHits  atomic.Int64
	articleCodes map[string]int
}

func startNewsServer(t *testing.T) *newsServer {
	t.Helper()
	ns := &newsServer{pages: map[string]string{}, articleCodes: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/rss", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssXML(ns.entries)))
	})
	mux.HandleFunc("/article/", func(w http.ResponseWriter, r *http.Request) {
		ns.articleHits.Add(1)
		if code, ok := ns.articleCodes[r.URL.Path]; ok {
			http.Error(w, "nope", code)
			return
		}
		_, _ = w.Write([]byte(ns.pages[r.URL.Path]))
	})
	ns.Server = httptest.NewServer(mux)
	t.Cleanup(ns.Close)
	return ns
}

func testCollector(srv *newsServer, cfg config.CollectorConfig) *Collector {
	cfg.Lang = "ko"
	cfg.Region = "KR"
	cfg.RatePerSec = 1000 // keep tests fast
	c := New(cfg)
	c.feedBase = srv.URL + "/rss"
	return c
}

func recentDate(age time.Duration) string {
	return time.Now().UTC().Add(-age).Format(time.RFC1123Z)
}

const longBody = `<html><body>
<p>소비 트렌드 기사 본문입니다. 카페와 구독 서비스 지출이 늘고 있습니다.</p>
<p>근거리 여행 수요도 꾸준히 증가하는 추세입니다.</p>
</body></html>`

func TestCollect_HappyPath(t *testing.T) {
	srv := startNewsServer(t)
	srv.entries = []rssEntry{
		{link: srv.URL + "/article/1", title: "기사 하나", pubDate: recentDate(2 * time.Hour)},
		{link: srv.URL + "/article/2", title: "기사 둘", pubDate: recentDate(4 * time.Hour)},
	}
	srv.pages["/article/1"] = longBody
	srv.pages["/article/2"] = longBody

	c := testCollector(srv, config.CollectorConfig{})
	arts := c.Collect(context.Background(), []string{"소비"}, 7, 30)

	require.Len(t, arts, 2)
	assert.Equal(t, srv.URL+"/article/1", arts[0].URL)
	assert.Equal(t, "기사 하나", arts[0].Title)
	assert.Contains(t, arts[0].Content, "소비 트렌드 기사 본문입니다.")
	assert.NotContains(t, arts[0].Content, "<p>")
	assert.NotEmpty(t, arts[0].PublishedAt)
}

func TestCollect_SkipsEntriesWithoutLinkOrDate(t *testing.T) {
	srv := startNewsServer(t)
	srv.entries = []rssEntry{
		{link: "", title: "링크 없음", pubDate: recentDate(time.Hour)},
		{link: srv.URL + "/article/1", title: "날짜 없음"},
		{link: srv.URL + "/article/2", title: "정상", pubDate: recentDate(time.Hour)},
	}
	srv.pages["/article/2"] = longBody

	c := testCollector(srv, config.CollectorConfig{})
	arts := c.Collect(context.Background(), []string{"소비"}, 7, 30)

	require.Len(t, arts, 1)
	assert.Equal(t, "정상", arts[0].Title)
}

func TestCollect_AcceptedYearPolicy(t *testing.T) {
	srv := startNewsServer(t)
	srv.entries = []rssEntry{
		{link: srv.URL + "/article/1", title: "작년 기사", pubDate: recentDate(time.Hour)},
	}
	srv.pages["/article/1"] = longBody

	// The entry is fresh, but the policy pins an impossible calendar year.
	c := testCollector(srv, config.CollectorConfig{AcceptedYear: 1999})
	arts := c.Collect(context.Background(), []string{"소비"}, 36500, 30)

	assert.Empty(t, arts)
	assert.Zero(t, srv.articleHits.Load(), "rejected entries must not be fetched")
}

func TestCollect_RecencyWindow(t *testing.T) {
	srv := startNewsServer(t)
	srv.entries = []rssEntry{
		{link: srv.URL + "/article/1", title: "오래된 기사", pubDate: recentDate(10 * 24 * time.Hour)},
		{link: srv.URL + "/article/2", title: "최근 기사", pubDate: recentDate(24 * time.Hour)},
	}
	srv.pages["/article/1"] = longBody
	srv.pages["/article/2"] = longBody

	c := testCollector(srv, config.CollectorConfig{})
	arts := c.Collect(context.Background(), []string{"소비"}, 7, 30)

	require.Len(t, arts, 1)
	assert.Equal(t, "최근 기사", arts[0].Title)
}

func TestCollect_GlobalCapStopsFetching(t *testing.T) {
	srv := startNewsServer(t)
	srv.entries = []rssEntry{
		{link: srv.URL + "/article/1", title: "하나", pubDate: recentDate(time.Hour)},
		{link: srv.URL + "/article/2", title: "둘", pubDate: recentDate(time.Hour)},
		{link: srv.URL + "/article/3", title: "셋", pubDate: recentDate(time.Hour)},
	}
	for _, p := range []string{"/article/1", "/article/2", "/article/3"} {
		srv.pages[p] = longBody
	}

	c := testCollector(srv, config.CollectorConfig{})
	arts := c.Collect(context.Background(), []string{"소비", "여행"}, 7, 1)

	require.Len(t, arts, 1)
	assert.Equal(t, int64(1), srv.articleHits.Load(), "no fetches after the cap is hit")
}

func TestCollect_TransportFailureIsSkipAndContinue(t *testing.T) {
	srv := startNewsServer(t)
	srv.entries = []rssEntry{
		{link: srv.URL + "/article/1", title: "죽은 링크", pubDate: recentDate(time.Hour)},
		{link: srv.URL + "/article/2", title: "살아있는 링크", pubDate: recentDate(time.Hour)},
	}
	srv.articleCodes["/article/1"] = http.StatusInternalServerError
	srv.pages["/article/2"] = longBody

	c := testCollector(srv, config.CollectorConfig{})
	arts := c.Collect(context.Background(), []string{"소비"}, 7, 30)

	require.Len(t, arts, 1)
	assert.Equal(t, "살아있는 링크", arts[0].Title)
}

func TestCollect_ShortContentSkipped(t *testing.T) {
	srv := startNewsServer(t)
	srv.entries = []rssEntry{
		{link: srv.URL + "/article/1", title: "빈 기사", pubDate: recentDate(time.Hour)},
	}
	srv.pages["/article/1"] = `<html><body><p>짧음</p></body></html>`

	c := testCollector(srv, config.CollectorConfig{MinChars: 200})
	arts := c.Collect(context.Background(), []string{"소비"}, 7, 30)

	assert.Empty(t, arts)
}

func TestCollect_ContentClampedToMaxChars(t *testing.T) {
	srv := startNewsServer(t)
	srv.entries = []rssEntry{
		{link: srv.URL + "/article/1", title: "긴 기사", pubDate: recentDate(time.Hour)},
	}
	srv.pages["/article/1"] = "<html><body><p>" + strings.Repeat("가나다라 ", 200) + "</p></body></html>"

	c := testCollector(srv, config.CollectorConfig{MaxChars: 50})
	arts := c.Collect(context.Background(), []string{"소비"}, 7, 30)

	require.Len(t, arts, 1)
	assert.Equal(t, 50, len([]rune(arts[0].Content)))
}

func TestSearchURL(t *testing.T) {
	c := New(config.CollectorConfig{Lang: "ko", Region: "KR"})
	raw := c.searchURL("소비 트렌드")
	assert.True(t, strings.HasPrefix(raw, defaultFeedBase+"?"))

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "소비 트렌드", q.Get("q"))
	assert.Equal(t, "ko", q.Get("hl"))
	assert.Equal(t, "KR", q.Get("gl"))
	assert.Equal(t, "KR:ko", q.Get("ceid"))
}
