package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/score"
)

const googleTrendsFeedURL = "https://trends.google.com/trending/rss?geo=IN"

// trendingNewsPages are India-focused trending/viral sections scraped when
// both the trends feed and the trends24 mirror come up empty.
var trendingNewsPages = []struct {
	URL  string
	Name string
}{
	{"https://www.indiatoday.in/trending-news", "India Today"},
	{"https://www.indiatoday.in/entertainment", "India Today Entertainment"},
	{"https://www.hindustantimes.com/entertainment", "Hindustan Times Entertainment"},
	{"https://timesofindia.indiatimes.com/etimes/trending", "Times of India Etimes"},
	{"https://indianexpress.com/section/trending/", "Indian Express Trending"},
	{"https://www.news18.com/trending", "News18"},
	{"https://www.news18.com/viral", "News18 Viral"},
	{"https://timesofindia.indiatimes.com/trending-topics", "Times of India"},
	{"https://www.hindustantimes.com/trending", "Hindustan Times"},
	{"https://www.republicworld.com/trending-news", "Republic World"},
	{"https://www.freepressjournal.in/viral", "Free Press Journal"},
	{"https://www.indiatv.in/viral", "India TV Viral"},
	{"https://www.dnaindia.com/viral", "DNA India Viral"},
}

// CuratedTrendingTopics is the static last-resort list when every live
// source fails.
var CuratedTrendingTopics = []string{
	"India vs England Test Series 2025",
	"Indian Stock Market Hits All-Time High",
	"Delhi Air Pollution Crisis",
	"Bollywood Box Office Collections",
	"Modi Government Infrastructure Projects",
	"Indian Startup Unicorn Funding",
	"Ayodhya Tourism Boom",
	"ISRO Chandrayaan Mission Updates",
	"Indian Railway Expansion Plans",
	"Farmer Income Doubling Scheme",
	"Digital India Payment Revolution",
	"Indian IT Industry Growth",
}

// SearchTrends collects Indian search trends. The fallback chain runs
// official RSS feed, then the trends24.in mirror, then trending sections of
// Indian news sites, then the curated static list; each step fires only if
// the previous one produced nothing.
type SearchTrends struct {
	client  *http.Client
	fetcher *pageFetcher
	parser  *gofeed.Parser
	log     *zap.Logger
}

// NewSearchTrends creates a new search-trend adapter.
func NewSearchTrends(log *zap.Logger) *SearchTrends {
	return &SearchTrends{
		client:  newHTTPClient(),
		fetcher: newPageFetcher(),
		parser:  gofeed.NewParser(),
		log:     log,
	}
}

func (s *SearchTrends) Name() Type    { return TypeSearchTrend }
func (s *SearchTrends) Label() string { return "Google Trends" }

// SetClient overrides the HTTP clients. Used by tests.
func (s *SearchTrends) SetClient(c *http.Client) {
	s.client = c
	s.fetcher = &pageFetcher{client: c}
}

func (s *SearchTrends) Fetch(ctx context.Context) ([]Item, error) {
	if items, err := s.fetchFeed(ctx); err == nil && len(items) > 0 {
		return items, nil
	} else if err != nil {
		s.log.Warn("google trends feed failed, trying scrape fallback", zap.Error(err))
	}

	if items, err := s.scrapeTrends24(ctx); err == nil && len(items) > 0 {
		return items, nil
	} else if err != nil {
		s.log.Warn("trends24 scrape failed", zap.Error(err))
	}

	s.log.Info("trying news site trending sections for search trends")
	if items := s.scrapeNewsPages(ctx); len(items) > 0 {
		return items, nil
	}

	s.log.Info("using curated trending topics as final fallback")
	return s.curated(), nil
}

// fetchFeed reads the official daily trending searches RSS feed.
func (s *SearchTrends) fetchFeed(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleTrendsFeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create trends feed request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trends feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends feed status %d", resp.StatusCode)
	}

	feed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trends feed: %w", err)
	}

	var items []Item
	for _, entry := range feed.Items {
		if len(items) >= 10 {
			break
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}

		traffic := "Rising"
		if v, ok := entry.Extensions["ht"]["approx_traffic"]; ok && len(v) > 0 {
			traffic = v[0].Value
		}

		items = append(items, Item{
			Title:   title,
			Source:  "Google Trends",
			Type:    TypeSearchTrend,
			URL:     entry.Link,
			Traffic: traffic,
			Score:   score.Headline(title, ""),
		})
	}
	return items, nil
}

// scrapeTrends24 pulls search trends from the trends24.in India page,
// skipping the Twitter sections.
func (s *SearchTrends) scrapeTrends24(ctx context.Context) ([]Item, error) {
	doc, err := s.fetcher.document(ctx, "https://trends24.in/india/")
	if err != nil {
		return nil, err
	}

	selectors := []string{
		".google-trends",
		".search-trends",
		`[data-source="google"]`,
		".trending-searches",
		`div[class*="search"]`,
	}

	var items []Item
	seen := make(map[string]bool)

	for _, selector := range selectors {
		doc.Find(selector).Find("a, span, div").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if len(items) >= 15 {
				return false
			}

			text := strings.TrimSpace(sel.Text())
			if text == "" || len(text) <= 2 || len(text) >= 100 ||
				strings.Contains(text, "Twitter") || strings.Contains(text, "#") {
				return true
			}

			clean := strings.TrimSpace(leadingNumbering.ReplaceAllString(text, ""))
			if clean == "" || seen[clean] {
				return true
			}
			seen[clean] = true

			items = append(items, Item{
				Title:   clean,
				Source:  "trends24.in (Google)",
				Type:    TypeSearchTrend,
				Traffic: "High",
				Score:   score.Headline(clean, ""),
			})
			return true
		})

		if len(items) >= 10 {
			break
		}
	}

	if len(items) > 12 {
		items = items[:12]
	}
	s.log.Info("google trends scraped from trends24", zap.Int("count", len(items)))
	return items, nil
}

// scrapeNewsPages walks the trending sections of Indian news sites until
// enough valid headlines accumulate.
func (s *SearchTrends) scrapeNewsPages(ctx context.Context) []Item {
	var all []Item

	for _, page := range trendingNewsPages {
		items, err := s.scrapeNewsPage(ctx, page.URL, page.Name)
		if err != nil {
			s.log.Debug("news page scrape failed", zap.String("source", page.Name), zap.Error(err))
			continue
		}
		if len(items) > 0 {
			s.log.Info("trending topics scraped", zap.String("source", page.Name), zap.Int("count", len(items)))
			all = append(all, items...)
			if len(all) >= 10 {
				break
			}
		}
	}

	all = DedupeTitles(all)
	if len(all) > 10 {
		all = all[:10]
	}
	return all
}

// headlineSelectors cover the different markup conventions of the scraped
// news sites.
var headlineSelectors = []string{
	"h1, h2, h3",
	".trending-story",
	".headline",
	".story-title",
	".news-title",
	`[class*="trend"]`,
	`[class*="viral"]`,
	`[class*="popular"]`,
	".top-story",
	".breaking-news",
	".story-card h3",
	".article-title",
}

func (s *SearchTrends) scrapeNewsPage(ctx context.Context, pageURL, sourceName string) ([]Item, error) {
	doc, err := s.fetcher.document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var items []Item
	seen := make(map[string]bool)

	for _, selector := range headlineSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if len(items) >= 10 {
				return false
			}

			text := strings.TrimSpace(sel.Text())
			if !validHeadline(text) {
				return true
			}

			clean := cleanHeadline(text)
			key := strings.ToLower(clean)
			if clean == "" || seen[key] {
				return true
			}
			seen[key] = true

			href, ok := sel.Attr("href")
			if !ok {
				href, _ = sel.Find("a").Attr("href")
			}
			if href == "" {
				href = pageURL
			}

			items = append(items, Item{
				Title:   clean,
				Source:  sourceName,
				Type:    TypeSearchTrend,
				URL:     href,
				Traffic: "Trending",
				Score:   score.Headline(clean, sourceName),
			})
			return true
		})

		if len(items) >= 8 {
			break
		}
	}

	if len(items) > 8 {
		items = items[:8]
	}
	return items, nil
}

func (s *SearchTrends) curated() []Item {
	now := time.Now().UTC()
	items := make([]Item, 0, len(CuratedTrendingTopics))
	for _, topic := range CuratedTrendingTopics {
		items = append(items, Item{
			Title:       topic,
			Source:      "India News Trends",
			Type:        TypeSearchTrend,
			Traffic:     "Rising",
			Score:       score.Headline(topic, "India"),
			PublishedAt: now,
		})
	}
	return items
}
