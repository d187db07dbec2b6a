// Package score holds the pure scoring functions and the keyword policy
// tables behind them. Every function here is total and deterministic:
// missing engagement numbers score as zero, and no input can panic.
package score

import (
	"math"
	"strings"
	"unicode"
)

// Headline scores a headline by viral keywords, source reputation and
// Indian context. Multiple keyword hits accumulate; there is no cap.
func Headline(text, source string) int {
	s := 0
	lower := strings.ToLower(text)

	for _, kw := range ViralKeywords {
		if strings.Contains(lower, kw) {
			s += 10
		}
	}

	for _, tier1 := range Tier1Sources {
		if strings.Contains(source, tier1) {
			s += 10
			break
		}
	}

	if strings.Contains(lower, "india") || strings.Contains(lower, "indian") {
		s += 5
	}

	return s
}

// ForumPost scores a forum hot post from its headline plus engagement
// tiers. The result is capped at 50 so that a single runaway thread cannot
// drown out every other source.
func ForumPost(title, source string, upvotes, comments int, upvoteRatio float64, subreddit string) int {
	s := Headline(title, source)

	switch {
	case upvotes >= 5000:
		s += 25
	case upvotes >= 2000:
		s += 20
	case upvotes >= 1000:
		s += 15
	case upvotes >= 500:
		s += 10
	case upvotes >= 100:
		s += 5
	case upvotes >= 50:
		s += 2
	}

	switch {
	case comments >= 1000:
		s += 20
	case comments >= 500:
		s += 15
	case comments >= 200:
		s += 10
	case comments >= 100:
		s += 7
	case comments >= 50:
		s += 5
	case comments >= 20:
		s += 3
	}

	switch {
	case upvoteRatio >= 0.95:
		s += 15
	case upvoteRatio >= 0.9:
		s += 10
	case upvoteRatio >= 0.8:
		s += 7
	case upvoteRatio >= 0.7:
		s += 5
	}

	s += subredditBonus[subreddit]

	denom := upvotes
	if denom == 0 {
		denom = 1
	}
	rate := float64(comments) / float64(denom)
	switch {
	case rate > 0.3:
		s += 10
	case rate > 0.2:
		s += 7
	case rate > 0.1:
		s += 5
	}

	if s > 50 {
		s = 50
	}
	return s
}

// SocialTrend scores a scraped social-media trend string. Hashtags,
// breaking-news language and crime/politics topics all stack on top of the
// base headline score; the result is floored at 0.
func SocialTrend(text string) int {
	s := Headline(text, "")
	lower := strings.ToLower(text)

	if strings.HasPrefix(text, "#") {
		s += 15
	}
	if strings.HasPrefix(text, "@") {
		s += 10
	}

	if ContainsAny(lower, BreakingTerms) {
		s += 35
	}
	if ContainsAny(lower, SocialViralTerms) {
		s += 25
	}
	if ContainsAny(lower, SensationalTerms) {
		s += 20
	}
	if ContainsAny(lower, PoliticalTerms) {
		s += 25
	}
	if ContainsAny(lower, CrimeTerms) {
		s += 30
	}
	if ContainsAny(lower, EntertainmentTerms) {
		s += 20
	}
	if ContainsAny(lower, CountryTerms) {
		s += 15
	}

	if len(text) < 10 {
		s -= 5
	}

	// Mixed Hindi + English text spreads furthest in India.
	if HasDevanagari(text) && hasLatin(text) {
		s += 10
	}

	if s < 0 {
		s = 0
	}
	return s
}

// EngagementRate is comments per upvote, rounded to two decimal places.
func EngagementRate(upvotes, comments int) float64 {
	if upvotes == 0 {
		return 0
	}
	return math.Round(float64(comments)/float64(upvotes)*100) / 100
}

// TrafficLevel buckets raw engagement into a display label.
func TrafficLevel(upvotes, comments int, upvoteRatio float64) string {
	switch {
	case upvotes >= 2000 || comments >= 500:
		return "Viral"
	case upvotes >= 1000 || comments >= 200:
		return "Hot"
	case upvotes >= 500 || comments >= 100:
		return "Trending"
	case upvoteRatio >= 0.9:
		return "Rising"
	default:
		return "Active"
	}
}

// ContainsAny reports whether lower contains any keyword from the list,
// case-insensitively (keywords are matched lowercased).
func ContainsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// HasDevanagari reports whether text contains any Devanagari-script rune.
func HasDevanagari(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	return false
}

func hasLatin(text string) bool {
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
