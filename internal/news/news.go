package news

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"github.com/daniyyer/kindle-dash/internal/config"
	"github.com/daniyyer/kindle-dash/internal/logger"
	"github.com/daniyyer/kindle-dash/internal/models"
)

const (
	// MaxTitleLength is the widest headline the display can fit.
	MaxTitleLength = 28
	// Ellipsis occupies the last character slot of a truncated title.
	Ellipsis = "…"

	fetchTimeout = 10 * time.Second

	// Some providers reject non-browser clients outright.
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	placeholderDomestic      = "暂无国内新闻"
	placeholderInternational = "暂无国际新闻"
)

// Aggregator fetches the configured feeds and assembles a NewsSnapshot.
type Aggregator struct {
	client        *resty.Client
	parser        *gofeed.Parser
	domestic      []config.FeedSource
	international []config.FeedSource
	log           *logger.Logger
}

// NewAggregator creates a news aggregator from configuration.
func NewAggregator(cfg *config.Config) *Aggregator {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetHeader("User-Agent", browserUserAgent)

	return &Aggregator{
		client:        client,
		parser:        gofeed.NewParser(),
		domestic:      cfg.DomesticFeeds(),
		international: cfg.InternationalFeeds(),
		log:           logger.WithComponent("news"),
	}
}

// FetchNews fetches all configured feeds and returns the aggregated
// snapshot. Both category lists are guaranteed non-empty: a category whose
// sources all failed gets a single localized placeholder item.
func (a *Aggregator) FetchNews(ctx context.Context) *models.NewsSnapshot {
	domestic := a.fetchCategory(ctx, a.domestic)
	international := a.fetchCategory(ctx, a.international)

	if len(domestic) == 0 {
		domestic = []models.NewsItem{{Title: placeholderDomestic}}
	}
	if len(international) == 0 {
		international = []models.NewsItem{{Title: placeholderInternational}}
	}

	a.log.Info("news snapshot assembled", map[string]interface{}{
		"domestic":      len(domestic),
		"international": len(international),
	})
	return &models.NewsSnapshot{Domestic: domestic, International: international}
}

// fetchCategory fans out over the category's sources concurrently and fans
// results back in preserving source order. Each source is isolated: one
// failing feed contributes zero entries without touching the others.
func (a *Aggregator) fetchCategory(ctx context.Context, sources []config.FeedSource) []models.NewsItem {
	results := make([][]models.NewsItem, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src config.FeedSource) {
			defer wg.Done()
			results[i] = a.fetchFeed(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var items []models.NewsItem
	for _, r := range results {
		items = append(items, r...)
	}
	return items
}

// fetchFeed fetches and parses one feed, returning up to src.Count entries
// in feed order. Failures are logged and contribute nothing.
func (a *Aggregator) fetchFeed(ctx context.Context, src config.FeedSource) []models.NewsItem {
	resp, err := a.client.R().SetContext(ctx).Get(src.URL)
	if err != nil {
		a.log.Warn("feed fetch failed", map[string]interface{}{"url": src.URL, "error": err.Error()})
		return nil
	}

	feed, err := a.parser.Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		a.log.Warn("feed parse failed", map[string]interface{}{"url": src.URL, "error": err.Error()})
		return nil
	}

	var items []models.NewsItem
	for _, entry := range feed.Items {
		if len(items) >= src.Count {
			break
		}

		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}
		title = StripPublisherSuffix(title)
		title = TruncateTitle(title, MaxTitleLength)
		if src.Label != "" {
			title = "[" + src.Label + "]" + title
		}

		items = append(items, models.NewsItem{
			Title: title,
			Link:  entry.Link,
		})
	}
	return items
}

// StripPublisherSuffix removes a trailing " - Source" publisher tag, the
// pattern aggregated feeds append to every headline.
func StripPublisherSuffix(title string) string {
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return title
}

// TruncateTitle caps a title at maxLength display characters, keeping the
// last slot for the ellipsis marker. Titles at or under the cap pass
// through unchanged.
func TruncateTitle(title string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(title) <= maxLength {
		return title
	}
	runes := []rune(title)
	return string(runes[:maxLength-1]) + Ellipsis
}
