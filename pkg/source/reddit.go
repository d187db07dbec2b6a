package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/score"
)

// redditFeed is one subreddit listing to poll.
type redditFeed struct {
	Name string
	URL  string
}

// DefaultSubreddits are the community feeds polled for trending posts.
var DefaultSubreddits = []redditFeed{
	{Name: "india", URL: "https://www.reddit.com/r/india/hot/.json"},
	{Name: "unpopularopinion", URL: "https://www.reddit.com/r/unpopularopinion/hot/.json"},
	{Name: "india-rising", URL: "https://www.reddit.com/r/india/rising/.json"},
	{Name: "IndianDankMemes", URL: "https://www.reddit.com/r/IndianDankMemes/hot/.json"},
	{Name: "indiauncensored", URL: "https://www.reddit.com/r/indiauncensored/hot/.json"},
	{Name: "IndiaNews", URL: "https://www.reddit.com/r/IndiaNews/hot/.json"},
	{Name: "IndiaSpeaks", URL: "https://www.reddit.com/r/IndiaSpeaks/hot/.json"},
}

// RedditTrendingKeywords lower the engagement bar for posts about topics
// that are already trending nationally.
var RedditTrendingKeywords = []string{
	"breaking", "viral", "trending", "happening now", "just happened",
	"watch", "see this", "can't believe", "shocking", "amazing",
	"india", "modi", "bollywood", "cricket", "election", "pandemic",
	"ai", "technology", "startup", "economy", "stock market",
}

// Reddit collects trending posts from Indian subreddits over the last 12
// hours. The public JSON listing needs no credential.
type Reddit struct {
	client *http.Client
	feeds  []redditFeed
	log    *zap.Logger
}

// NewReddit creates a new Reddit adapter.
func NewReddit(log *zap.Logger) *Reddit {
	return &Reddit{
		client: newHTTPClient(),
		feeds:  DefaultSubreddits,
		log:    log,
	}
}

func (r *Reddit) Name() Type    { return TypeForumPost }
func (r *Reddit) Label() string { return "Reddit" }

// SetClient overrides the HTTP client. Used by tests.
func (r *Reddit) SetClient(c *http.Client) { r.client = c }

func (r *Reddit) Fetch(ctx context.Context) ([]Item, error) {
	var all []Item
	cutoff := time.Now().Add(-12 * time.Hour)

	for _, feed := range r.feeds {
		posts, err := r.fetchFeed(ctx, feed)
		if err != nil {
			r.log.Warn("reddit feed failed", zap.String("subreddit", feed.Name), zap.Error(err))
			continue
		}

		for _, post := range posts {
			created := time.Unix(int64(post.CreatedUTC), 0)
			if created.Before(cutoff) {
				continue
			}
			if !validTrendingPost(post.Title, post.Ups, post.UpvoteRatio, post.NumComments) {
				continue
			}

			title := cleanHeadline(post.Title)
			if title == "" {
				continue
			}

			all = append(all, Item{
				Title:   title,
				Source:  "Reddit r/" + feed.Name,
				Type:    TypeForumPost,
				URL:     "https://www.reddit.com" + post.Permalink,
				Traffic: score.TrafficLevel(post.Ups, post.NumComments, post.UpvoteRatio),
				Score:   score.ForumPost(title, "Reddit", post.Ups, post.NumComments, post.UpvoteRatio, feed.Name),
				Engagement: Engagement{
					Upvotes:     post.Ups,
					Comments:    post.NumComments,
					UpvoteRatio: post.UpvoteRatio,
					Rate:        score.EngagementRate(post.Ups, post.NumComments),
				},
				PublishedAt: created.UTC(),
			})
		}
	}

	all = DedupeTitles(all)
	SortByScore(all)
	if len(all) > 15 {
		all = all[:15]
	}

	r.log.Info("reddit trending posts", zap.Int("count", len(all)))
	return all, nil
}

// validTrendingPost applies the tiered engagement thresholds: high
// engagement always passes, moderate engagement needs a healthy ratio, and
// trending-keyword posts pass at a much lower bar.
func validTrendingPost(title string, upvotes int, upvoteRatio float64, comments int) bool {
	if title == "" || len(title) < 10 || len(title) > 300 {
		return false
	}

	if upvotes >= 500 || comments >= 100 || upvoteRatio >= 0.85 {
		return true
	}

	if upvotes >= 50 && upvoteRatio >= 0.7 && comments >= 10 {
		return true
	}

	if score.ContainsAny(strings.ToLower(title), RedditTrendingKeywords) &&
		upvotes >= 20 && upvoteRatio >= 0.6 {
		return true
	}

	return false
}

func (r *Reddit) fetchFeed(ctx context.Context, feed redditFeed) ([]redditPost, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create reddit request r/%s: %w", feed.Name, err)
	}
	req.Header.Set("User-Agent", "trendradar/1.0 (by /u/trendradar)")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit r/%s status %d", feed.Name, resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode r/%s: %w", feed.Name, err)
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Permalink   string  `json:"permalink"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	CreatedUTC  float64 `json:"created_utc"`
}
