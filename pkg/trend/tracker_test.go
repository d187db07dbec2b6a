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

// stubSource is a fixed-output adapter for tracker tests.
type stubSource struct {
	typ   source.Type
	label string
	items []source.Item
	err   error
}

func (s *stubSource) Name() source.Type { return s.typ }
func (s *stubSource) Label() string     { return s.label }
func (s *stubSource) Fetch(ctx context.Context) ([]source.Item, error) {
	return s.items, s.err
}

func newTestTracker(sources ...source.Source) *Tracker {
	log := zap.NewNop()
	return NewTracker(sources, NewMatcher(nil, log), NewRanker(nil, log), log)
}

func TestTrackerCollectItems(t *testing.T) {
	news1 := &stubSource{typ: source.TypeNews, label: "News A", items: []source.Item{
		{Title: "Modi announces new scheme", Type: source.TypeNews, Score: 10},
	}}
	news2 := &stubSource{typ: source.TypeNews, label: "News B", items: []source.Item{
		{Title: "MODI ANNOUNCES NEW SCHEME", Type: source.TypeNews, Score: 99},
		{Title: "Cricket final tonight", Type: source.TypeNews, Score: 30},
	}}
	broken := &stubSource{typ: source.TypeVideo, label: "Video", err: fmt.Errorf("boom")}

	tracker := newTestTracker(news1, news2, broken)
	grouped := tracker.CollectItems(context.Background())

	require.Len(t, grouped[source.TypeNews], 2, "duplicate titles merge across adapters of one type")
	assert.Equal(t, "Cricket final tonight", grouped[source.TypeNews][0].Title, "sorted by score")
	assert.Empty(t, grouped[source.TypeVideo], "failing adapter contributes nothing")
}

func TestTrackerCollectReport(t *testing.T) {
	news := &stubSource{typ: source.TypeNews, label: "News", items: []source.Item{
		{Title: "Modi announces new scheme", Type: source.TypeNews, Score: 20},
	}}
	social := &stubSource{typ: source.TypeSocialTrend, label: "Twitter/X", items: []source.Item{
		{Title: "#Modi trends nationwide", Type: source.TypeSocialTrend, Score: 40},
	}}

	tracker := newTestTracker(news, social)
	report := tracker.Collect(context.Background())

	assert.Len(t, report.News, 1)
	assert.Len(t, report.SocialTrends, 1)
	assert.Equal(t, MethodHeuristic, report.ThemeMethod)
	assert.Equal(t, MethodHeuristic, report.ViralMethod)
	require.Len(t, report.Themes, 1)
	assert.Equal(t, "modi", report.Themes[0].Name)
	assert.Len(t, report.Viral, 2)
	assert.False(t, report.GeneratedAt.IsZero())

	assert.Equal(t, 2, report.Summary.TotalItems)
	assert.Equal(t, 1, report.Summary.BySource[source.TypeNews])
	assert.Equal(t, 1, report.Summary.BySource[source.TypeSocialTrend])
	assert.Equal(t, 1, report.Summary.ThemeCount)
	assert.Equal(t, 2, report.Summary.ViralCount)
}

func TestTrackerCollectType(t *testing.T) {
	news := &stubSource{typ: source.TypeNews, label: "News", items: []source.Item{
		{Title: "Modi announces new scheme", Type: source.TypeNews, Score: 20},
	}}
	video := &stubSource{typ: source.TypeVideo, label: "Video", items: []source.Item{
		{Title: "Cricket highlights", Type: source.TypeVideo, Score: 10},
	}}

	tracker := newTestTracker(news, video)
	items := tracker.CollectType(context.Background(), source.TypeVideo)

	require.Len(t, items, 1)
	assert.Equal(t, "Cricket highlights", items[0].Title)
}

func TestTrackerThemesAndViral(t *testing.T) {
	news := &stubSource{typ: source.TypeNews, label: "News", items: []source.Item{
		{Title: "Modi announces new scheme", Type: source.TypeNews, Score: 20},
	}}
	social := &stubSource{typ: source.TypeSocialTrend, label: "Twitter/X", items: []source.Item{
		{Title: "#Modi trends nationwide", Type: source.TypeSocialTrend, Score: 40},
	}}

	tracker := newTestTracker(news, social)

	themes, themeMethod, analyzed := tracker.Themes(context.Background())
	assert.Equal(t, MethodHeuristic, themeMethod)
	assert.Equal(t, 2, analyzed)
	require.Len(t, themes, 1)

	viral, viralMethod, analyzed := tracker.Viral(context.Background())
	assert.Equal(t, MethodHeuristic, viralMethod)
	assert.Equal(t, 2, analyzed)
	assert.Len(t, viral, 2)
}
