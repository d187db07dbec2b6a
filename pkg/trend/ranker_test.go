package trend

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/source"
)

func TestViralScore(t *testing.T) {
	tests := []struct {
		name string
		item source.Item
		want int
	}{
		{
			name: "no signals",
			item: source.Item{Title: "Committee publishes quarterly schedule", Type: source.TypeNews},
			want: 0,
		},
		{
			name: "breaking news item",
			item: source.Item{Title: "Breaking protest in Delhi", Type: source.TypeNews},
			// breaking keyword + delhi context + news breaking bonus + protest emotion
			want: 90,
		},
		{
			name: "high view video",
			item: source.Item{
				Title:      "Quiet documentary footage",
				Type:       source.TypeVideo,
				Engagement: source.Engagement{Views: 600000},
			},
			want: 40,
		},
		{
			name: "hashtag trend",
			item: source.Item{Title: "#Cricket", Type: source.TypeSocialTrend},
			want: 40, // cricket keyword + hashtag bonus
		},
		{
			name: "upvoted forum post",
			item: source.Item{
				Title:      "Unusual town hall discussion",
				Type:       source.TypeForumPost,
				Engagement: source.Engagement{Upvotes: 1500},
			},
			want: 30,
		},
		{
			name: "base score is ignored",
			item: source.Item{Title: "Committee publishes quarterly schedule", Type: source.TypeNews, Score: 999},
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, viralScore(tc.item))
		})
	}
}

func TestRankerHeuristic(t *testing.T) {
	items := []source.Item{
		{Title: "Committee publishes quarterly schedule", Type: source.TypeNews},
		{Title: "Breaking protest in Delhi", Type: source.TypeNews},
		{Title: "#Cricket", Type: source.TypeSocialTrend},
	}

	r := NewRanker(nil, zap.NewNop())
	ranked, method := r.Rank(context.Background(), items)

	assert.Equal(t, MethodHeuristic, method)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Breaking protest in Delhi", ranked[0].Title)
	for i, item := range ranked {
		assert.Equal(t, i+1, item.ViralRank, "ranks are contiguous after sorting")
		assert.Equal(t, MethodHeuristic, item.RankedBy)
	}
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].ViralScore, ranked[i].ViralScore)
	}
}

func TestRankerHeuristicTopFifteen(t *testing.T) {
	var items []source.Item
	for i := 0; i < 30; i++ {
		items = append(items, source.Item{
			Title: fmt.Sprintf("Breaking story number %d", i),
			Type:  source.TypeNews,
		})
	}

	r := NewRanker(nil, zap.NewNop())
	ranked, _ := r.Rank(context.Background(), items)

	require.Len(t, ranked, 15)
	assert.Equal(t, 1, ranked[0].ViralRank)
	assert.Equal(t, 15, ranked[14].ViralRank)
}

func TestRankerModelPath(t *testing.T) {
	items := []source.Item{
		{Title: "first", Type: source.TypeNews},
		{Title: "second", Type: source.TypeNews},
		{Title: "third", Type: source.TypeNews},
	}

	fake := &fakeCompleter{resp: "1. 3\n2. 1\nnot a ranking line\n3. 99"}
	r := NewRanker(fake, zap.NewNop())
	ranked, method := r.Rank(context.Background(), items)

	assert.Equal(t, MethodModel, method)
	require.Len(t, ranked, 2, "out-of-range numbers are skipped")

	assert.Equal(t, "third", ranked[0].Title)
	assert.Equal(t, 1, ranked[0].ViralRank)
	assert.Equal(t, 100, ranked[0].ViralScore)
	assert.Equal(t, MethodModel, ranked[0].RankedBy)

	assert.Equal(t, "first", ranked[1].Title)
	assert.Equal(t, 2, ranked[1].ViralRank)
	assert.Equal(t, 95, ranked[1].ViralScore)
}

func TestRankerModelPathSkipsRepeatedIndices(t *testing.T) {
	items := []source.Item{
		{Title: "first", Type: source.TypeNews},
		{Title: "second", Type: source.TypeNews},
	}

	fake := &fakeCompleter{resp: "1. 2\n2. 2\n3. 1"}
	r := NewRanker(fake, zap.NewNop())
	ranked, method := r.Rank(context.Background(), items)

	assert.Equal(t, MethodModel, method)
	require.Len(t, ranked, 2, "a repeated index holds only its first rank")

	assert.Equal(t, "second", ranked[0].Title)
	assert.Equal(t, "first", ranked[1].Title)
	assert.Equal(t, 2, ranked[1].ViralRank)
	assert.Equal(t, 95, ranked[1].ViralScore)
}

func TestRankerFallsBackOnUnparseableResponse(t *testing.T) {
	items := []source.Item{{Title: "Breaking protest in Delhi", Type: source.TypeNews}}

	fake := &fakeCompleter{resp: "I cannot rank these."}
	r := NewRanker(fake, zap.NewNop())
	ranked, method := r.Rank(context.Background(), items)

	assert.Equal(t, MethodHeuristic, method)
	require.Len(t, ranked, 1)
	assert.Equal(t, 90, ranked[0].ViralScore)
}

func TestRankEmptyInput(t *testing.T) {
	r := NewRanker(nil, zap.NewNop())
	ranked, method := r.Rank(context.Background(), nil)
	assert.Empty(t, ranked)
	assert.Equal(t, MethodHeuristic, method)
}
