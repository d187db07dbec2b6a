package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/score"
)

const youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

// youtubeSearchQuery targets hard-news topics rather than the default
// entertainment-heavy trending feed.
const youtubeSearchQuery = "breaking news OR latest news OR viral news OR trending news OR india news OR hindi news OR politics OR government OR minister OR parliament OR election OR protest OR scam OR corruption OR arrest OR court OR crime OR police OR market OR stock OR sensex OR nifty OR business OR economy OR budget OR tax OR price OR petrol OR diesel OR gas OR electricity OR salary OR job OR scheme OR yojana OR rbi OR inflation OR ipo OR company OR startup"

// ChildrenContentKeywords exclude family/kids/entertainment channels from
// the news feed. A hit in either title or channel rejects the video.
var ChildrenContentKeywords = []string{
	"kids", "children", "baby", "toddler", "cartoon", "nursery", "rhyme",
	"family", "mom", "dad", "papa", "mama", "bhai", "sister", "brother",
	"cute", "funny baby", "child", "bachcha", "बच्चा", "परिवार",
	"cooking", "recipe", "food", "kitchen",
	"dance", "music", "song", "comedy", "funny", "entertainment",
	"vlogs", "lifestyle", "games", "tutorial", "tech review",
	"unboxing", "reaction", "masti", "mazak",
	"हंसी", "मजाक", "गाना", "डांस", "खाना", "रेसिपी",
}

// IndianNewsKeywords is the positive topical list for Indian news content.
var IndianNewsKeywords = []string{
	"india", "indian", "hindi", "news", "breaking", "latest", "update",
	"politics", "government", "minister", "pm modi", "parliament", "election",
	"court", "supreme court", "high court", "judge", "legal", "law",
	"police", "crime", "arrest", "investigation", "case", "scam",
	"corruption", "protest", "rally", "strike", "demonstration",
	"controversy", "debate",
	"economy", "market", "stock", "share", "sensex", "nifty", "rupee",
	"dollar", "budget", "tax", "gst", "income tax", "policy", "rbi",
	"reserve bank", "inflation", "gdp", "recession", "growth", "investment",
	"mutual fund", "ipo", "trading", "crypto", "bitcoin", "gold", "silver",
	"commodity", "banking", "loan", "interest rate", "emi", "credit",
	"debit", "salary", "pension", "pf", "epf", "insurance", "sip", "fd",
	"fixed deposit",
	"business", "company", "startup", "unicorn", "ceo", "chairman",
	"profit", "loss", "revenue", "merger", "acquisition", "listing",
	"shares", "adani", "ambani", "tata", "reliance", "infosys", "wipro",
	"industry",
	"petrol", "diesel", "lpg", "gas", "electricity", "power", "water",
	"railway", "train", "metro", "transport", "fuel", "price", "rate",
	"subsidy", "scheme", "yojana", "benefit", "welfare", "health",
	"education", "job", "employment", "unemployment", "salary hike",
	"internet", "mobile", "telecom", "jio", "airtel", "vi", "broadband",
	"upi", "digital", "online", "app", "technology", "ai",
	"delhi", "mumbai", "kolkata", "chennai", "bengaluru", "hyderabad",
	"punjab", "maharashtra", "gujarat", "rajasthan", "up", "bihar",
	"congress", "bjp", "aap", "tmc", "sp", "bsp", "party", "leader",
	"viral", "trending", "exposed", "shocking", "exclusive", "reality",
	"समाचार", "न्यूज़", "राजनीति", "सरकार", "मंत्री", "अदालत", "पुलिस",
	"बाजार", "शेयर", "पैसा", "रुपया", "व्यापार", "कंपनी", "नौकरी",
	"रोजगार", "वेतन", "पेट्रोल", "डीजल", "गैस", "बिजली", "पानी",
	"ट्रेन", "मेट्रो", "स्वास्थ्य", "शिक्षा", "योजना", "सब्सिडी",
}

// NewsChannelPatterns match Indian news and business channel names.
var NewsChannelPatterns = []string{
	"news", "tv", "channel", "media", "press", "times", "today", "live",
	"update", "bulletin", "report", "journalist", "anchor", "hindi news",
	"bharat", "hindustan", "aaj tak", "zee news", "ndtv", "republic",
	"cnbc", "india tv", "abp", "news18",
	"business", "finance", "money", "market", "stock", "economic",
	"financial", "business today", "et now", "bloomberg", "moneycontrol",
	"mint",
}

// youtubeViralTerms qualify a low-view video as viral enough to keep.
var youtubeViralTerms = []string{
	"viral", "trending", "breaking", "news", "exposed", "shocking",
	"market", "stock", "price", "rate", "budget", "scheme", "yojana",
	"salary", "job", "petrol", "diesel", "gas", "electricity",
}

const youtubeViralViewFloor = 3000

// YouTube collects recent viral Indian news Shorts.
type YouTube struct {
	client *http.Client
	apiKey string
	log    *zap.Logger
}

// NewYouTube creates a new YouTube adapter.
func NewYouTube(apiKey string, log *zap.Logger) *YouTube {
	return &YouTube{
		client: newHTTPClient(),
		apiKey: apiKey,
		log:    log,
	}
}

func (y *YouTube) Name() Type    { return TypeVideo }
func (y *YouTube) Label() string { return "YouTube" }

// SetClient overrides the HTTP client. Used by tests.
func (y *YouTube) SetClient(c *http.Client) { y.client = c }

func (y *YouTube) Fetch(ctx context.Context) ([]Item, error) {
	if placeholderCredential(y.apiKey) {
		y.log.Debug("youtube api key not configured, skipping")
		return nil, nil
	}

	items, err := y.searchRecent(ctx)
	if err != nil {
		y.log.Warn("youtube search failed", zap.Error(err))
		return nil, nil
	}

	if len(items) == 0 {
		y.log.Info("no recent viral videos found, falling back to most popular chart")
		items, err = y.mostPopular(ctx)
		if err != nil {
			y.log.Warn("youtube most popular fallback failed", zap.Error(err))
			return nil, nil
		}
		return items, nil
	}

	// Keep videos that are both viral enough and Indian news content.
	var kept []Item
	for _, it := range items {
		if y.viralEnough(it) && IsIndianNewsContent(it.Title, it.Source) {
			kept = append(kept, it)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Engagement.Views > kept[j].Engagement.Views
	})
	if len(kept) > 10 {
		kept = kept[:10]
	}

	y.log.Info("youtube viral indian news shorts", zap.Int("count", len(kept)))
	return kept, nil
}

// searchRecent pulls news-query Shorts from the last 12 hours ordered by
// views, then batch-fetches their statistics.
func (y *YouTube) searchRecent(ctx context.Context) ([]Item, error) {
	publishedAfter := time.Now().Add(-12 * time.Hour).UTC().Format(time.RFC3339)

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("regionCode", "IN")
	params.Set("relevanceLanguage", "hi")
	params.Set("publishedAfter", publishedAfter)
	params.Set("order", "viewCount")
	params.Set("videoDuration", "short")
	params.Set("maxResults", "50")
	params.Set("q", youtubeSearchQuery)
	params.Set("key", y.apiKey)

	var result ytSearchResult
	if err := y.getJSON(ctx, youtubeBaseURL+"/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	var items []Item
	var ids []string
	for _, entry := range result.Items {
		if entry.ID.VideoID == "" {
			continue
		}
		ids = append(ids, entry.ID.VideoID)
		items = append(items, Item{
			Title:       entry.Snippet.Title,
			Source:      entry.Snippet.ChannelTitle,
			Type:        TypeVideo,
			URL:         "https://www.youtube.com/watch?v=" + entry.ID.VideoID,
			PublishedAt: entry.Snippet.PublishedAt,
			Score:       score.Headline(entry.Snippet.Title, entry.Snippet.ChannelTitle),
		})
	}
	if len(items) == 0 {
		return nil, nil
	}

	stats, err := y.fetchStats(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Engagement.Views = stats[ids[i]]
	}
	return items, nil
}

func (y *YouTube) fetchStats(ctx context.Context, ids []string) (map[string]int, error) {
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", y.apiKey)

	var result ytVideoResult
	if err := y.getJSON(ctx, youtubeBaseURL+"/videos?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	stats := make(map[string]int, len(result.Items))
	for _, v := range result.Items {
		stats[v.ID] = v.Statistics.ViewCount
	}
	return stats, nil
}

// mostPopular is the fallback chart when the recent search yields nothing.
func (y *YouTube) mostPopular(ctx context.Context) ([]Item, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("chart", "mostPopular")
	params.Set("regionCode", "IN")
	params.Set("maxResults", "10")
	params.Set("key", y.apiKey)

	var result ytChartResult
	if err := y.getJSON(ctx, youtubeBaseURL+"/videos?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	var items []Item
	for _, v := range result.Items {
		items = append(items, Item{
			Title:       v.Snippet.Title,
			Source:      v.Snippet.ChannelTitle,
			Type:        TypeVideo,
			URL:         "https://www.youtube.com/watch?v=" + v.ID,
			PublishedAt: v.Snippet.PublishedAt,
			Traffic:     "Overall Popular (Fallback)",
			Score:       score.Headline(v.Snippet.Title, v.Snippet.ChannelTitle),
			Engagement:  Engagement{Views: v.Statistics.ViewCount},
		})
	}
	return items, nil
}

func (y *YouTube) viralEnough(it Item) bool {
	if it.Engagement.Views >= youtubeViralViewFloor {
		return true
	}
	return score.ContainsAny(strings.ToLower(it.Title), youtubeViralTerms)
}

// IsIndianNewsContent is the relevance classifier for video items: no
// children/family/entertainment keywords, and at least one of Devanagari
// script, an Indian news keyword, or a news channel name pattern.
func IsIndianNewsContent(title, channel string) bool {
	titleLower := strings.ToLower(title)
	channelLower := strings.ToLower(channel)

	if score.ContainsAny(titleLower, ChildrenContentKeywords) ||
		score.ContainsAny(channelLower, ChildrenContentKeywords) {
		return false
	}

	hasHindi := score.HasDevanagari(title) || score.HasDevanagari(channel)
	hasNewsKeyword := score.ContainsAny(titleLower, IndianNewsKeywords) ||
		score.ContainsAny(channelLower, IndianNewsKeywords)
	hasChannelPattern := score.ContainsAny(channelLower, NewsChannelPatterns)

	return hasHindi || hasNewsKeyword || hasChannelPattern
}

func (y *YouTube) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create youtube request: %w", err)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch youtube: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube response: %w", err)
	}
	return nil
}

type ytSnippet struct {
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  time.Time `json:"publishedAt"`
}

type ytSearchResult struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
}

type ytStatistics struct {
	ViewCount int `json:"viewCount,string"`
}

type ytVideoResult struct {
	Items []struct {
		ID         string       `json:"id"`
		Statistics ytStatistics `json:"statistics"`
	} `json:"items"`
}

type ytChartResult struct {
	Items []struct {
		ID         string       `json:"id"`
		Snippet    ytSnippet    `json:"snippet"`
		Statistics ytStatistics `json:"statistics"`
	} `json:"items"`
}
