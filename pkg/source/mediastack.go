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

const mediastackBaseURL = "http://api.mediastack.com/v1/news"

// MediaStack collects popular Indian news from the MediaStack API, biased
// toward viral categories via the keyword filter.
type MediaStack struct {
	client *http.Client
	apiKey string
	log    *zap.Logger
}

// NewMediaStack creates a new MediaStack adapter.
func NewMediaStack(apiKey string, log *zap.Logger) *MediaStack {
	return &MediaStack{
		client: newHTTPClient(),
		apiKey: apiKey,
		log:    log,
	}
}

func (m *MediaStack) Name() Type    { return TypeNews }
func (m *MediaStack) Label() string { return "News" }

// SetClient overrides the HTTP client. Used by tests.
func (m *MediaStack) SetClient(c *http.Client) { m.client = c }

func (m *MediaStack) Fetch(ctx context.Context) ([]Item, error) {
	if placeholderCredential(m.apiKey) {
		m.log.Debug("mediastack api key not configured, skipping")
		return nil, nil
	}

	params := url.Values{}
	params.Set("access_key", m.apiKey)
	params.Set("countries", "in")
	params.Set("languages", "en")
	params.Set("sort", "popularity")
	params.Set("categories", "general,entertainment,sports,technology")
	params.Set("keywords", "viral,trending,breaking,popular,watch,latest,exclusive,video,shares,social media")
	params.Set("limit", "15")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediastackBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create mediastack request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.log.Warn("mediastack fetch failed", zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.log.Warn("mediastack bad status", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var result struct {
		Data []struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			Source      string    `json:"source"`
			URL         string    `json:"url"`
			PublishedAt time.Time `json:"published_at"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		m.log.Warn("decode mediastack response", zap.Error(err))
		return nil, nil
	}

	var items []Item
	for _, a := range result.Data {
		items = append(items, Item{
			Title:       a.Title,
			Description: truncate(a.Description, 500),
			Source:      a.Source,
			Type:        TypeNews,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Score:       score.Headline(a.Title, a.Source),
		})
	}
	return items, nil
}
