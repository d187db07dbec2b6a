package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadline(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		source string
		want   int
	}{
		{
			name: "no signals",
			text: "Committee publishes quarterly schedule",
			want: 0,
		},
		{
			name: "multiple viral keywords accumulate",
			text: "Viral video trending across India",
			want: 25, // viral + trending + india
		},
		{
			name:   "breaking headline from tier1 source",
			text:   "BREAKING: Modi announces new policy",
			source: "https://timesofindia.indiatimes.com",
			want:   20,
		},
		{
			name:   "tier1 bonus applies once",
			text:   "Committee publishes quarterly schedule",
			source: "timesofindia.indiatimes.com ndtv.com",
			want:   10,
		},
		{
			name: "indian context bonus",
			text: "Indian team wins the series",
			want: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Headline(tc.text, tc.source))
			// Same input, same output.
			assert.Equal(t, tc.want, Headline(tc.text, tc.source))
		})
	}
}

func TestForumPost(t *testing.T) {
	t.Run("engagement tiers stack", func(t *testing.T) {
		// upvotes 600 (+10), comments 120 (+7), ratio 0.92 (+10),
		// r/india (+8), comment rate 0.2 (+5).
		got := ForumPost("Committee publishes quarterly schedule", "Reddit", 600, 120, 0.92, "india")
		assert.Equal(t, 40, got)
	})

	t.Run("capped at 50", func(t *testing.T) {
		got := ForumPost("Viral shocking massive breaking trending video", "Reddit", 10000, 2000, 0.99, "worldnews")
		assert.Equal(t, 50, got)
	})

	t.Run("zero engagement scores headline only", func(t *testing.T) {
		got := ForumPost("Committee publishes quarterly schedule", "Reddit", 0, 0, 0, "")
		assert.Equal(t, 0, got)
	})

	t.Run("comment rate guards divide by zero", func(t *testing.T) {
		// 10 comments on 0 upvotes is rate 10, the top bonus.
		got := ForumPost("Committee publishes quarterly schedule", "Reddit", 0, 10, 0, "")
		assert.Equal(t, 10, got)
	})
}

func TestSocialTrend(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "hashtag with breaking language",
			text: "#BreakingNews",
			want: 60, // headline breaking + hashtag + breaking term
		},
		{
			name: "short neutral text floors at zero",
			text: "abc",
			want: 0,
		},
		{
			name: "mention bonus",
			text: "@SomeHandle123",
			want: 10,
		},
		{
			name: "mixed hindi and english with political term",
			text: "मोदी live speech",
			want: 70, // breaking live + political + mixed script
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SocialTrend(tc.text))
		})
	}
}

func TestSocialTrendNonNegative(t *testing.T) {
	for _, text := range []string{"", "a", "zz", "123", "#x"} {
		assert.GreaterOrEqual(t, SocialTrend(text), 0, "text %q", text)
	}
}

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 0.0, EngagementRate(0, 10))
	assert.Equal(t, 0.2, EngagementRate(600, 120))
	assert.Equal(t, 0.33, EngagementRate(3, 1))
}

func TestTrafficLevel(t *testing.T) {
	tests := []struct {
		name             string
		upvotes, comment int
		ratio            float64
		want             string
	}{
		{"viral by upvotes", 2500, 0, 0, "Viral"},
		{"viral by comments", 0, 600, 0, "Viral"},
		{"hot", 1200, 0, 0, "Hot"},
		{"trending", 0, 150, 0, "Trending"},
		{"rising on ratio alone", 10, 2, 0.95, "Rising"},
		{"active", 10, 2, 0.5, "Active"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TrafficLevel(tc.upvotes, tc.comment, tc.ratio))
		})
	}
}

func TestHasDevanagari(t *testing.T) {
	assert.True(t, HasDevanagari("मोदी"))
	assert.True(t, HasDevanagari("breaking बड़ी खबर"))
	assert.False(t, HasDevanagari("plain english"))
}
