package trend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/source"
)

// Report is one full aggregation run: every source's items plus the
// cross-source analysis over them.
type Report struct {
	News         []source.Item `json:"news"`
	Videos       []source.Item `json:"videos"`
	SearchTrends []source.Item `json:"search_trends"`
	SocialTrends []source.Item `json:"social_trends"`
	ForumPosts   []source.Item `json:"forum_posts"`

	Themes      []Theme      `json:"themes"`
	Viral       []RankedItem `json:"viral"`
	ThemeMethod Method       `json:"theme_method"`
	ViralMethod Method       `json:"viral_method"`

	Summary     Summary   `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Summary is the per-run roll-up of item counts.
type Summary struct {
	TotalItems int                 `json:"total_items"`
	BySource   map[source.Type]int `json:"by_source"`
	ThemeCount int                 `json:"theme_count"`
	ViralCount int                 `json:"viral_count"`
}

// Tracker fans out to every source adapter, merges the results, and runs
// theme matching and viral ranking over the combined set. Every run is a
// fresh computation; nothing is cached or persisted.
type Tracker struct {
	sources []source.Source
	matcher *Matcher
	ranker  *Ranker
	log     *zap.Logger
}

// NewTracker creates a tracker over the given adapters.
func NewTracker(sources []source.Source, matcher *Matcher, ranker *Ranker, log *zap.Logger) *Tracker {
	return &Tracker{
		sources: sources,
		matcher: matcher,
		ranker:  ranker,
		log:     log,
	}
}

// Collect runs every adapter concurrently, then matches themes and ranks
// viral content over the merged items.
func (t *Tracker) Collect(ctx context.Context) *Report {
	grouped := t.CollectItems(ctx)

	themes, themeMethod := t.matcher.Match(ctx, grouped)
	viral, viralMethod := t.ranker.Rank(ctx, flatten(grouped))

	report := &Report{
		News:         grouped[source.TypeNews],
		Videos:       grouped[source.TypeVideo],
		SearchTrends: grouped[source.TypeSearchTrend],
		SocialTrends: grouped[source.TypeSocialTrend],
		ForumPosts:   grouped[source.TypeForumPost],
		Themes:       themes,
		Viral:        viral,
		ThemeMethod:  themeMethod,
		ViralMethod:  viralMethod,
		GeneratedAt:  time.Now().UTC(),
	}
	report.Summary = summarize(grouped, len(themes), len(viral))

	t.log.Info("trend report generated",
		zap.Int("total_items", report.Summary.TotalItems),
		zap.Int("themes", len(themes)),
		zap.Int("viral", len(viral)),
		zap.String("theme_method", string(themeMethod)),
		zap.String("viral_method", string(viralMethod)))
	return report
}

// CollectItems runs every adapter concurrently and returns deduplicated,
// score-sorted items grouped by source type. A failing adapter contributes
// nothing; the run never fails as a whole.
func (t *Tracker) CollectItems(ctx context.Context) map[source.Type][]source.Item {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		grouped = make(map[source.Type][]source.Item)
	)

	for _, src := range t.sources {
		wg.Add(1)
		go func(src source.Source) {
			defer wg.Done()

			items, err := src.Fetch(ctx)
			if err != nil {
				t.log.Warn("source fetch failed",
					zap.String("source", src.Label()),
					zap.String("type", string(src.Name())),
					zap.Error(err))
				return
			}

			t.log.Info("source collected",
				zap.String("source", src.Label()),
				zap.String("type", string(src.Name())),
				zap.Int("count", len(items)))

			mu.Lock()
			grouped[src.Name()] = append(grouped[src.Name()], items...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	for typ, items := range grouped {
		grouped[typ] = source.SortByScore(source.DedupeTitles(items))
	}
	return grouped
}

// CollectType runs only the adapters of one source type.
func (t *Tracker) CollectType(ctx context.Context, typ source.Type) []source.Item {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		all []source.Item
	)

	for _, src := range t.sources {
		if src.Name() != typ {
			continue
		}
		wg.Add(1)
		go func(src source.Source) {
			defer wg.Done()

			items, err := src.Fetch(ctx)
			if err != nil {
				t.log.Warn("source fetch failed",
					zap.String("source", src.Label()),
					zap.Error(err))
				return
			}

			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	return source.SortByScore(source.DedupeTitles(all))
}

// Themes collects from every source and returns only the cross-source
// themes, plus how many items were analyzed.
func (t *Tracker) Themes(ctx context.Context) ([]Theme, Method, int) {
	grouped := t.CollectItems(ctx)
	themes, method := t.matcher.Match(ctx, grouped)
	return themes, method, countItems(grouped)
}

// Viral collects from every source and returns only the viral ranking,
// plus how many items were analyzed.
func (t *Tracker) Viral(ctx context.Context) ([]RankedItem, Method, int) {
	grouped := t.CollectItems(ctx)
	ranked, method := t.ranker.Rank(ctx, flatten(grouped))
	return ranked, method, countItems(grouped)
}

func countItems(grouped map[source.Type][]source.Item) int {
	total := 0
	for _, items := range grouped {
		total += len(items)
	}
	return total
}

func summarize(grouped map[source.Type][]source.Item, themes, viral int) Summary {
	s := Summary{
		BySource:   make(map[source.Type]int, len(grouped)),
		ThemeCount: themes,
		ViralCount: viral,
	}
	for typ, items := range grouped {
		s.BySource[typ] = len(items)
		s.TotalItems += len(items)
	}
	return s
}
