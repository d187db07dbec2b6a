package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageFetcher retrieves HTML pages with a browser user agent and parses
// them for scraping.
type pageFetcher struct {
	client *http.Client
}

func newPageFetcher() *pageFetcher {
	return &pageFetcher{client: newHTTPClient()}
}

func (f *pageFetcher) document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create scrape request %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape %s status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// newsHeadlineKeywords is the acceptance list for scraped headline text. A
// candidate string must contain at least one of these to count as news
// (viral and entertainment topics included on purpose).
var newsHeadlineKeywords = []string{
	"india", "indian", "hindi", "desi",
	"government", "minister", "election", "court", "supreme", "parliament",
	"pm", "modi", "congress", "bjp",
	"covid", "vaccine", "economy", "rupee",
	"cricket", "ipl",
	"bollywood", "actor", "film", "movie", "celebrity", "star",
	"technology", "startup", "company", "market", "share", "price", "stock",
	"weather", "rain", "storm", "temperature", "flood", "drought",
	"festival", "celebration", "wedding", "death", "born", "award",
	"police", "arrest", "crime", "accident", "fire", "rescue",
	"school", "college", "university", "student", "exam", "result",
	"viral", "trending", "youtube", "instagram", "twitter", "social",
	"comedian", "comedy", "meme", "funny", "video", "content",
	"creator", "influencer", "tiktoker", "youtuber",
	"samay", "raina", "latent", "tiger", "cubs", "kabaddi",
	"animal", "wildlife", "zoo", "forest",
	"entertainment", "show", "episode", "series", "web series", "ott",
	"netflix", "amazon", "hotstar", "zee5", "voot", "alt balaji",
	"gaming", "esports", "bgmi", "free fire", "pubg", "mobile",
	"music", "song", "singer", "album", "rap", "hip hop",
}

// excludePatterns reject navigation chrome, ads and other boilerplate that
// leaks out of headline selectors.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)subscribe`),
	regexp.MustCompile(`(?i)follow`),
	regexp.MustCompile(`(?i)share`),
	regexp.MustCompile(`(?i)like`),
	regexp.MustCompile(`(?i)comment`),
	regexp.MustCompile(`(?i)login`),
	regexp.MustCompile(`(?i)advertisement`),
	regexp.MustCompile(`(?i)sponsored`),
	regexp.MustCompile(`(?i)promoted`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)privacy`),
	regexp.MustCompile(`(?i)terms`),
	regexp.MustCompile(`(?i)contact`),
	regexp.MustCompile(`(?i)about`),
	regexp.MustCompile(`(?i)home`),
	regexp.MustCompile(`(?i)menu`),
	regexp.MustCompile(`(?i)search`),
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`(?i)^[^a-z]*$`),
	regexp.MustCompile(`(?i)seo`),
	regexp.MustCompile(`(?i)marketing`),
	regexp.MustCompile(`(?i)template`),
	regexp.MustCompile(`(?i)tool`),
	regexp.MustCompile(`(?i)insight`),
	regexp.MustCompile(`(?i)keyword`),
	regexp.MustCompile(`(?i)audit`),
	regexp.MustCompile(`(?i)traffic`),
	regexp.MustCompile(`(?i)^how to`),
}

var (
	leadingNumbering = regexp.MustCompile(`^\d+\.?\s*`)
	trailingSource   = regexp.MustCompile(`\s*\|\s*.*$`)
	multiSpace       = regexp.MustCompile(`\s+`)
	unsafeRunes      = regexp.MustCompile(`[^\w\s\-'"‘’“”]`)
	tweetCountSuffix = regexp.MustCompile(`(?i)\s*\d*\s*[KM]?\s*tweets.*$`)
)

// validHeadline reports whether scraped text looks like a real news
// headline: bounded length, at least one news keyword, no boilerplate.
func validHeadline(text string) bool {
	if len(text) < 15 || len(text) > 200 {
		return false
	}

	lower := strings.ToLower(text)
	hasKeyword := false
	for _, kw := range newsHeadlineKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return false
	}

	for _, pat := range excludePatterns {
		if pat.MatchString(text) {
			return false
		}
	}
	return true
}

// cleanHeadline normalizes an accepted headline: ordinal numbering and the
// trailing "| source" go, whitespace collapses, unsafe runes go, and the
// result is truncated to 120 characters.
func cleanHeadline(text string) string {
	s := leadingNumbering.ReplaceAllString(text, "")
	s = trailingSource.ReplaceAllString(s, "")
	s = unsafeRunes.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}

// cleanTrendText strips ordinal numbering and tweet-count suffixes from a
// scraped trend string.
func cleanTrendText(text string) string {
	s := leadingNumbering.ReplaceAllString(text, "")
	s = tweetCountSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
