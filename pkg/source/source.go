package source

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Type identifies which kind of platform an item came from.
type Type string

const (
	TypeNews        Type = "news"
	TypeVideo       Type = "video"
	TypeSearchTrend Type = "search_trend"
	TypeSocialTrend Type = "social_trend"
	TypeForumPost   Type = "forum_post"
)

// Engagement carries the raw interaction counts a platform exposes.
// Absent metrics stay zero and score as zero.
type Engagement struct {
	Views       int     `json:"views,omitempty"`
	Upvotes     int     `json:"upvotes,omitempty"`
	Comments    int     `json:"comments,omitempty"`
	UpvoteRatio float64 `json:"upvote_ratio,omitempty"`
	Rate        float64 `json:"engagement_rate,omitempty"`
}

// Item is the standardized data model every adapter produces. Score is the
// base relevance score assigned at fetch time; the viral ranker computes
// its own score separately and never rewrites this one.
type Item struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	Type        Type       `json:"type"`
	Score       int        `json:"score"`
	URL         string     `json:"url,omitempty"`
	Description string     `json:"description,omitempty"`
	Traffic     string     `json:"traffic,omitempty"`
	Category    string     `json:"category,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	Engagement  Engagement `json:"engagement,omitempty"`
	PublishedAt time.Time  `json:"published_at,omitzero"`
}

// Source is the interface every adapter implements. Fetch handles upstream
// failures internally (fallback chain or empty result); a non-nil error
// indicates a programming error, never an upstream one, and callers treat
// it the same as an empty result.
type Source interface {
	Name() Type
	Label() string
	Fetch(ctx context.Context) ([]Item, error)
}

// requestTimeout bounds every outbound call an adapter makes.
const requestTimeout = 10 * time.Second

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// placeholderCredential reports whether a credential is absent or still the
// sample value from an env template. Adapters with a placeholder credential
// return no items without touching the network.
func placeholderCredential(key string) bool {
	return key == "" || strings.HasPrefix(key, "your_")
}

// DedupeTitles drops items whose title already appeared, comparing
// case-insensitively. Order of first appearance is preserved.
func DedupeTitles(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	var out []Item
	for _, it := range items {
		key := strings.ToLower(strings.TrimSpace(it.Title))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// SortByScore orders items by base score descending, in place, and returns
// the slice for chaining.
func SortByScore(items []Item) []Item {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
