package trend

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/source"
)

// RankedItem is an item annotated with its viral potential. ViralScore is
// computed from scratch; the base Score carried by the embedded item is
// ignored on purpose.
type RankedItem struct {
	source.Item
	ViralScore int    `json:"viral_score"`
	ViralRank  int    `json:"viral_rank"`
	RankedBy   Method `json:"ranked_by"`
}

const rankerSystemPrompt = "You are a viral content expert. Return only a numbered list of items ranked by viral potential."

const rankerPromptTemplate = `You are an expert in viral content analysis for Indian audiences. Below is a list of trending content from various sources.

IMPORTANT: Ignore any previous scores or rankings. Analyze each item purely based on its VIRAL POTENTIAL for Indian social media.

Rank these items by their VIRAL POTENTIAL, considering:
- Breaking news impact and urgency
- Controversy and debate potential
- Celebrity/entertainment/Bollywood value
- Emotional impact (anger, joy, surprise, outrage)
- Social media shareability and discussion potential
- Indian cultural relevance and local context
- Trending keywords and viral indicators
- Current events significance

Content to analyze:
%s

Return ONLY the top 15 items with highest viral potential. Format your response as a simple numbered list using the original numbers:
1. [Original number from list]
2. [Original number from list]
...and so on`

// rankerBatchLimit caps how many items go into one model call.
const rankerBatchLimit = 50

// rankedLine matches one line of the model's ranking, capturing the
// original item number.
var rankedLine = regexp.MustCompile(`^\d+\.\s*(\d+)`)

// rankerViralKeywords each add a flat bonus during heuristic rescoring.
var rankerViralKeywords = []string{
	"breaking", "viral", "trending", "shocking", "exclusive",
	"scandal", "controversy", "massive", "urgent", "alert",
	"exposed", "leaked", "bollywood", "cricket", "modi",
	"election", "arrest", "death", "accident",
}

var emotionalWords = []string{
	"angry", "outrage", "protest", "fight", "clash", "attack",
	"win", "lose", "victory",
}

// Ranker orders items by viral potential. With a Completer the model picks
// and orders the list; otherwise (or on failure) a keyword and engagement
// heuristic rescores everything from zero.
type Ranker struct {
	completer Completer
	log       *zap.Logger
}

// NewRanker creates a viral ranker. completer may be nil.
func NewRanker(completer Completer, log *zap.Logger) *Ranker {
	return &Ranker{completer: completer, log: log}
}

// Rank returns up to 15 items ordered by viral potential with contiguous
// ranks starting at 1, plus the method that produced the ordering.
func (r *Ranker) Rank(ctx context.Context, items []source.Item) ([]RankedItem, Method) {
	if len(items) == 0 {
		return nil, MethodHeuristic
	}

	if r.completer != nil {
		ranked, err := r.rankWithModel(ctx, items)
		if err == nil {
			return ranked, MethodModel
		}
		r.log.Warn("model viral ranking failed, using heuristic scoring", zap.Error(err))
	}

	return r.rankByHeuristic(items), MethodHeuristic
}

func (r *Ranker) rankWithModel(ctx context.Context, items []source.Item) ([]RankedItem, error) {
	batch := items
	if len(batch) > rankerBatchLimit {
		batch = batch[:rankerBatchLimit]
	}

	lines := make([]string, 0, len(batch))
	for i, item := range batch {
		line := fmt.Sprintf("%d. [%s] %q - Source: %s", i+1, sourceLabel(item.Type), item.Title, item.Source)
		if item.Engagement.Views > 0 {
			line += fmt.Sprintf(" (Views: %d)", item.Engagement.Views)
		}
		if item.Engagement.Upvotes > 0 {
			line += fmt.Sprintf(" (Upvotes: %d)", item.Engagement.Upvotes)
		}
		if item.Traffic != "" {
			line += fmt.Sprintf(" (Traffic: %s)", item.Traffic)
		}
		lines = append(lines, line)
	}
	prompt := fmt.Sprintf(rankerPromptTemplate, strings.Join(lines, "\n"))

	raw, err := r.completer.Complete(ctx, rankerSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var ranked []RankedItem
	used := make(map[int]bool)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		match := rankedLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		var n int
		fmt.Sscanf(match[1], "%d", &n)
		idx := n - 1
		if idx < 0 || idx >= len(batch) || used[idx] {
			continue
		}
		used[idx] = true

		rank := len(ranked) + 1
		ranked = append(ranked, RankedItem{
			Item:       batch[idx],
			ViralRank:  rank,
			ViralScore: 100 - (rank-1)*5,
			RankedBy:   MethodModel,
		})
		if len(ranked) == 15 {
			break
		}
	}

	if len(ranked) == 0 {
		return nil, fmt.Errorf("no rankings parsed from model response")
	}

	r.log.Info("model selected viral items", zap.Int("count", len(ranked)))
	return ranked, nil
}

// rankByHeuristic rescores every item from zero, sorts descending, and
// assigns ranks by final position.
func (r *Ranker) rankByHeuristic(items []source.Item) []RankedItem {
	ranked := make([]RankedItem, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, RankedItem{
			Item:       item,
			ViralScore: viralScore(item),
			RankedBy:   MethodHeuristic,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ViralScore > ranked[j].ViralScore
	})
	if len(ranked) > 15 {
		ranked = ranked[:15]
	}
	for i := range ranked {
		ranked[i].ViralRank = i + 1
	}
	return ranked
}

// viralScore is the heuristic viral-potential score. It never consults the
// item's base score.
func viralScore(item source.Item) int {
	score := 0
	title := strings.ToLower(item.Title)

	for _, kw := range rankerViralKeywords {
		if strings.Contains(title, kw) {
			score += 25
		}
	}

	if item.Engagement.Views > 500000 {
		score += 40
	} else if item.Engagement.Views > 100000 {
		score += 25
	}

	if item.Engagement.Upvotes > 1000 {
		score += 30
	} else if item.Engagement.Upvotes > 500 {
		score += 20
	}

	if strings.Contains(title, "india") || strings.Contains(title, "indian") ||
		strings.Contains(title, "modi") || strings.Contains(title, "delhi") ||
		strings.Contains(title, "mumbai") {
		score += 20
	}

	switch item.Type {
	case source.TypeNews:
		if strings.Contains(title, "breaking") || strings.Contains(title, "live") {
			score += 30
		}
	case source.TypeSocialTrend:
		if strings.HasPrefix(item.Title, "#") {
			score += 15
		}
	case source.TypeVideo:
		if strings.Contains(title, "live") {
			score += 20
		}
	}

	for _, word := range emotionalWords {
		if strings.Contains(title, word) {
			score += 15
		}
	}

	return score
}
