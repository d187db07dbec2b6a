package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/score"
)

const gnewsBaseURL = "https://gnews.io/api/v4/top-headlines"

// GNews collects Indian top headlines from the GNews API.
type GNews struct {
	client *http.Client
	apiKey string
	log    *zap.Logger
}

// NewGNews creates a new GNews adapter.
func NewGNews(apiKey string, log *zap.Logger) *GNews {
	return &GNews{
		client: newHTTPClient(),
		apiKey: apiKey,
		log:    log,
	}
}

func (g *GNews) Name() Type    { return TypeNews }
func (g *GNews) Label() string { return "News" }

// SetClient overrides the HTTP client. Used by tests.
func (g *GNews) SetClient(c *http.Client) { g.client = c }

func (g *GNews) Fetch(ctx context.Context) ([]Item, error) {
	if placeholderCredential(g.apiKey) {
		g.log.Debug("gnews api key not configured, skipping")
		return nil, nil
	}

	params := url.Values{}
	params.Set("token", g.apiKey)
	params.Set("country", "in")
	params.Set("lang", "en")
	params.Set("category", "general")
	params.Set("max", "15")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gnewsBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create gnews request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("gnews fetch failed", zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warn("gnews bad status", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var result struct {
		Articles []struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			URL         string    `json:"url"`
			PublishedAt time.Time `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
				URL  string `json:"url"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		g.log.Warn("decode gnews response", zap.Error(err))
		return nil, nil
	}

	var items []Item
	for _, a := range result.Articles {
		items = append(items, Item{
			Title:       a.Title,
			Description: truncate(a.Description, 500),
			Source:      a.Source.Name,
			Type:        TypeNews,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Score:       score.Headline(a.Title, a.Source.URL),
		})
	}
	return items, nil
}
