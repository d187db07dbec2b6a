package source

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/score"
)

// trendSite is one public mirror that republishes Indian Twitter/X trends.
type trendSite struct {
	URL       string
	Name      string
	Selectors []string
}

// socialTrendSites are the mirrors polled in order; the first one that
// yields trends wins. No authentication is needed.
var socialTrendSites = []trendSite{
	{
		URL:       "https://trends24.in/india/",
		Name:      "trends24.in",
		Selectors: []string{".trend-card__list li a", ".trend-card li", "ol li a"},
	},
	{
		URL:       "https://getdaytrends.com/india/",
		Name:      "getdaytrends.com",
		Selectors: []string{"table tbody tr td a", ".trend-name", "td.main a"},
	},
}

// SocialTrends collects trending hashtags and topics from Twitter/X trend
// mirror sites. No API credential is required.
type SocialTrends struct {
	sites   []trendSite
	fetcher *pageFetcher
	log     *zap.Logger
}

// NewSocialTrends creates a new social-trend adapter.
func NewSocialTrends(log *zap.Logger) *SocialTrends {
	return &SocialTrends{
		sites:   socialTrendSites,
		fetcher: newPageFetcher(),
		log:     log,
	}
}

func (s *SocialTrends) Name() Type    { return TypeSocialTrend }
func (s *SocialTrends) Label() string { return "Twitter/X" }

// SetClient overrides the HTTP client. Used by tests.
func (s *SocialTrends) SetClient(c *http.Client) { s.fetcher = &pageFetcher{client: c} }

func (s *SocialTrends) Fetch(ctx context.Context) ([]Item, error) {
	for _, site := range s.sites {
		items, err := s.scrapeSite(ctx, site.URL, site.Name, site.Selectors)
		if err != nil {
			s.log.Warn("social trend site failed", zap.String("site", site.Name), zap.Error(err))
			continue
		}
		if len(items) > 0 {
			s.log.Info("social trends scraped", zap.String("site", site.Name), zap.Int("count", len(items)))
			return items, nil
		}
	}

	s.log.Warn("no social trend site yielded trends")
	return nil, nil
}

func (s *SocialTrends) scrapeSite(ctx context.Context, siteURL, siteName string, selectors []string) ([]Item, error) {
	doc, err := s.fetcher.document(ctx, siteURL)
	if err != nil {
		return nil, err
	}

	var items []Item
	seen := make(map[string]bool)

	for _, selector := range selectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if len(items) >= 25 {
				return false
			}

			text := cleanTrendText(sel.Text())
			if !validTrendText(text) {
				return true
			}

			key := strings.ToLower(text)
			if seen[key] {
				return true
			}

			trendScore := score.SocialTrend(text)
			if trendScore < 5 && !isViralContent(text) {
				return true
			}
			seen[key] = true

			items = append(items, Item{
				Title:       text,
				Source:      "Twitter India (" + siteName + ")",
				Type:        TypeSocialTrend,
				Traffic:     "Trending",
				Category:    categorizeTrend(text),
				ContentType: ContentType(text),
				Score:       trendScore,
			})
			return true
		})

		if len(items) >= 15 {
			break
		}
	}

	SortByScore(items)
	if len(items) > 15 {
		items = items[:15]
	}
	return items, nil
}

// validTrendText keeps hashtags, mentions, and multi-word topics while
// dropping navigation chrome and count labels.
func validTrendText(text string) bool {
	if len(text) < 2 || len(text) > 80 {
		return false
	}

	lower := strings.ToLower(text)
	for _, noise := range []string{"tweets", "trending", "show more", "view all", "hours ago", "minutes ago"} {
		if lower == noise {
			return false
		}
	}

	return strings.HasPrefix(text, "#") || strings.HasPrefix(text, "@") ||
		len(strings.Fields(text)) >= 1
}

// isViralContent recognizes trends that matter even when the scoring
// heuristic stays quiet, such as plain-word breaking topics.
func isViralContent(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(text, "#") || strings.HasPrefix(text, "@") ||
		score.ContainsAny(lower, score.BreakingTerms) ||
		score.ContainsAny(lower, score.SocialViralTerms) ||
		score.ContainsAny(lower, score.CountryTerms) ||
		score.HasDevanagari(text)
}

// categorizeTrend buckets a trend by the strongest matching term group.
func categorizeTrend(text string) string {
	lower := strings.ToLower(text)
	switch {
	case score.ContainsAny(lower, score.BreakingTerms):
		return "Breaking News"
	case score.ContainsAny(lower, score.EntertainmentTerms):
		return "Entertainment/Sports"
	case score.ContainsAny(lower, score.PoliticalTerms):
		return "Politics"
	case score.ContainsAny(lower, score.CrimeTerms):
		return "Crime/Justice"
	default:
		return "General"
	}
}

// ContentType classifies how a social trend is expressed on the platform.
func ContentType(text string) string {
	switch {
	case strings.HasPrefix(text, "#"):
		return "hashtag"
	case strings.HasPrefix(text, "@"):
		return "mention"
	case score.SocialTrend(text) >= 30:
		return "viral_topic"
	default:
		return "trending_topic"
	}
}
