package trend

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/source"
)

// Method records which strategy produced an analysis result.
type Method string

const (
	MethodHeuristic Method = "heuristic"
	MethodModel     Method = "model"
)

// Theme is a topic that surfaced across more than one source type.
type Theme struct {
	Name        string        `json:"theme"`
	Description string        `json:"description,omitempty"`
	Items       []source.Item `json:"items"`
	SourceTypes []source.Type `json:"source_types"`
	TotalScore  int           `json:"total_score"`
	GeneratedBy Method        `json:"generated_by"`
}

// typeOrder is the canonical flattening order when items from every source
// are combined into one list.
var typeOrder = []source.Type{
	source.TypeNews,
	source.TypeVideo,
	source.TypeSearchTrend,
	source.TypeSocialTrend,
	source.TypeForumPost,
}

// flatten combines grouped items into one slice in canonical type order.
func flatten(grouped map[source.Type][]source.Item) []source.Item {
	var all []source.Item
	for _, t := range typeOrder {
		all = append(all, grouped[t]...)
	}
	return all
}

const themeSystemPrompt = "You are an expert at identifying thematic connections across news and social media. Return only valid JSON arrays."

const themePromptTemplate = `You are an expert at identifying common themes and topics across different news and social media sources.

Analyze the following content from various sources and identify the TOP 3 COMMON THEMES that appear across MULTIPLE sources (News, YouTube, Twitter, Google Trends, Reddit).

Look for thematic connections like:
- Same events described differently (e.g., "Israel-Iran conflict" and "Middle East crisis")
- Related topics (e.g., "Cricket match" and "India vs England")
- Common personalities (e.g., "Modi announces" and "PM Modi")
- Similar incidents (e.g., "Train accident" and "Railway mishap")
- Trending subjects (e.g., "Bollywood wedding" and "Celebrity marriage")

Content to analyze:
%s

For each common theme, provide:
1. Theme name (concise, 2-4 words)
2. Brief description
3. Which content items belong to this theme (use the numbers from the list)

Return ONLY a JSON array with exactly 3 themes:
[
  {
    "theme": "Theme Name",
    "description": "Brief description of the theme",
    "items": [1, 5, 12, 18],
    "sources": ["News", "YouTube", "Twitter"]
  }
]`

// matcherBatchLimit caps how many items go into one model call.
const matcherBatchLimit = 40

// ImportantTerms anchor the heuristic keyword extraction: a title that
// mentions one of these is grouped under it.
var ImportantTerms = []string{
	"israel", "iran", "modi", "india", "cricket", "bollywood",
	"election", "court", "police", "government", "ceasefire",
	"war", "conflict", "attack", "breaking", "live", "news",
	"update", "announces", "death", "arrest",
}

// KeyPhrases are multi-word topics checked before single terms.
var KeyPhrases = []string{
	"israel iran", "iran israel", "middle east", "air india",
	"train accident", "supreme court", "high court", "pm modi",
	"bollywood star", "cricket match",
}

var nonWordChars = regexp.MustCompile(`[^\w\s]`)

// Matcher finds themes shared across source types. When a Completer is
// configured it asks the model first and falls back to keyword matching on
// any failure.
type Matcher struct {
	completer Completer
	log       *zap.Logger
}

// NewMatcher creates a theme matcher. completer may be nil.
func NewMatcher(completer Completer, log *zap.Logger) *Matcher {
	return &Matcher{completer: completer, log: log}
}

// Match returns up to five themes that span more than one source type,
// ordered by total score descending, plus the method that produced them.
func (m *Matcher) Match(ctx context.Context, grouped map[source.Type][]source.Item) ([]Theme, Method) {
	all := flatten(grouped)
	if len(all) == 0 {
		return nil, MethodHeuristic
	}

	if m.completer != nil {
		themes, err := m.matchWithModel(ctx, all)
		if err == nil {
			return themes, MethodModel
		}
		m.log.Warn("model theme matching failed, using keyword matching", zap.Error(err))
	}

	return m.matchByKeywords(all), MethodHeuristic
}

func (m *Matcher) matchWithModel(ctx context.Context, all []source.Item) ([]Theme, error) {
	batch := all
	if len(batch) > matcherBatchLimit {
		batch = batch[:matcherBatchLimit]
	}

	lines := make([]string, 0, len(batch))
	for i, item := range batch {
		lines = append(lines, fmt.Sprintf("%d. [%s] %q", i+1, sourceLabel(item.Type), item.Title))
	}
	prompt := fmt.Sprintf(themePromptTemplate, strings.Join(lines, "\n"))

	raw, err := m.completer.Complete(ctx, themeSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed []struct {
		Theme       string   `json:"theme"`
		Description string   `json:"description"`
		Items       []int    `json:"items"`
		Sources     []string `json:"sources"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse theme response: %w", err)
	}

	var themes []Theme
	for _, p := range parsed {
		theme := Theme{Name: p.Theme, Description: p.Description}
		types := make(map[source.Type]bool)

		for _, n := range p.Items {
			idx := n - 1
			if idx < 0 || idx >= len(batch) {
				continue
			}
			item := batch[idx]
			theme.Items = append(theme.Items, item)
			theme.TotalScore += item.Score
			types[item.Type] = true
		}

		// A theme needs grounding in more than one item, spanning more
		// than one source type. The model is not trusted on either.
		if len(theme.Items) <= 1 || len(types) <= 1 {
			continue
		}
		theme.GeneratedBy = MethodModel
		theme.SourceTypes = sortedTypes(types)
		themes = append(themes, theme)
	}

	m.log.Info("model identified themes", zap.Int("count", len(themes)))
	return themes, nil
}

// matchByKeywords groups items by shared anchor keywords, keeps only
// keywords spanning multiple source types, and returns the top five by
// total score.
func (m *Matcher) matchByKeywords(all []source.Item) []Theme {
	byKeyword := make(map[string]*Theme)

	for _, item := range all {
		for _, kw := range extractKeywords(item.Title) {
			theme, ok := byKeyword[kw]
			if !ok {
				theme = &Theme{Name: kw}
				byKeyword[kw] = theme
			}
			theme.Items = append(theme.Items, item)
			theme.TotalScore += item.Score
		}
	}

	var themes []Theme
	for _, theme := range byKeyword {
		types := make(map[source.Type]bool)
		for _, item := range theme.Items {
			types[item.Type] = true
		}
		if len(types) <= 1 {
			continue
		}
		theme.GeneratedBy = MethodHeuristic
		theme.SourceTypes = sortedTypes(types)
		themes = append(themes, *theme)
	}

	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].TotalScore > themes[j].TotalScore
	})
	if len(themes) > 5 {
		themes = themes[:5]
	}
	return themes
}

// extractKeywords returns the anchor keywords of a title: known phrases and
// terms when present, otherwise the first three words longer than three
// characters.
func extractKeywords(title string) []string {
	clean := strings.TrimSpace(nonWordChars.ReplaceAllString(strings.ToLower(title), " "))

	var keywords []string
	seen := make(map[string]bool)
	add := func(kw string) {
		if !seen[kw] {
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	for _, phrase := range KeyPhrases {
		if strings.Contains(clean, phrase) {
			add(phrase)
		}
	}
	for _, term := range ImportantTerms {
		if strings.Contains(clean, term) {
			add(term)
		}
	}
	if len(keywords) > 0 {
		return keywords
	}

	for _, word := range strings.Fields(clean) {
		if len(word) > 3 {
			add(word)
			if len(keywords) == 3 {
				break
			}
		}
	}
	return keywords
}

// sourceLabel is the display name used in model prompts.
func sourceLabel(t source.Type) string {
	switch t {
	case source.TypeNews:
		return "News"
	case source.TypeVideo:
		return "YouTube"
	case source.TypeSearchTrend:
		return "Google Trends"
	case source.TypeSocialTrend:
		return "Twitter"
	case source.TypeForumPost:
		return "Reddit"
	default:
		return string(t)
	}
}

func sortedTypes(set map[source.Type]bool) []source.Type {
	var types []source.Type
	for _, t := range typeOrder {
		if set[t] {
			types = append(types, t)
		}
	}
	return types
}
