package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/internal/config"
	"github.com/elonfeng/trendradar/internal/logging"
	"github.com/elonfeng/trendradar/pkg/server"
	"github.com/elonfeng/trendradar/pkg/source"
	"github.com/elonfeng/trendradar/pkg/trend"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildSources(cfg *config.Config, log *zap.Logger) []source.Source {
	var sources []source.Source

	if cfg.Sources.GNews.Enabled {
		sources = append(sources, source.NewGNews(cfg.Sources.GNews.APIKey, log))
	}
	if cfg.Sources.MediaStack.Enabled {
		sources = append(sources, source.NewMediaStack(cfg.Sources.MediaStack.APIKey, log))
	}
	if cfg.Sources.YouTube.Enabled {
		sources = append(sources, source.NewYouTube(cfg.Sources.YouTube.APIKey, log))
	}
	if cfg.Sources.Google.Enabled {
		sources = append(sources, source.NewSearchTrends(log))
	}
	if cfg.Sources.Social.Enabled {
		sources = append(sources, source.NewSocialTrends(log))
	}
	if cfg.Sources.Reddit.Enabled {
		sources = append(sources, source.NewReddit(log))
	}

	return sources
}

func buildTracker(cfg *config.Config, log *zap.Logger) *trend.Tracker {
	var completer trend.Completer
	if cfg.ModelEnabled() {
		completer = trend.NewLLMClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.APIKey, cfg.LLM.BaseURL)
		log.Info("model-assisted analysis enabled", zap.String("provider", cfg.LLM.Provider))
	}

	matcher := trend.NewMatcher(completer, log)
	ranker := trend.NewRanker(completer, log)
	return trend.NewTracker(buildSources(cfg, log), matcher, ranker, log)
}

func runTrends(jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	tracker := buildTracker(cfg, log)
	report := tracker.Collect(context.Background())

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report)
	return nil
}

func printReport(report *trend.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	printSection := func(header string, items []source.Item) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s\n", header)
		for i, item := range items {
			fmt.Fprintf(w, "%d.\t[%d]\t%s\t(%s)\n", i+1, item.Score, item.Title, item.Source)
		}
	}

	printSection("NEWS", report.News)
	printSection("YOUTUBE", report.Videos)
	printSection("GOOGLE TRENDS", report.SearchTrends)
	printSection("TWITTER/X", report.SocialTrends)
	printSection("REDDIT", report.ForumPosts)

	if len(report.Themes) > 0 {
		fmt.Fprintf(w, "\nCROSS-SOURCE THEMES (%s)\n", report.ThemeMethod)
		for i, theme := range report.Themes {
			fmt.Fprintf(w, "%d.\t[%d]\t%s\t(%d items, %d source types)\n",
				i+1, theme.TotalScore, theme.Name, len(theme.Items), len(theme.SourceTypes))
		}
	}

	if len(report.Viral) > 0 {
		fmt.Fprintf(w, "\nVIRAL RANKING (%s)\n", report.ViralMethod)
		for _, item := range report.Viral {
			fmt.Fprintf(w, "#%d\t[%d]\t%s\t(%s)\n",
				item.ViralRank, item.ViralScore, item.Title, item.Source)
		}
	}

	fmt.Fprintf(w, "\nTOTAL\t%d items\t%d themes\t%d viral\n",
		report.Summary.TotalItems, report.Summary.ThemeCount, report.Summary.ViralCount)
	w.Flush()
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if port == 0 {
		port = cfg.Server.Port
	}

	tracker := buildTracker(cfg, log)
	srv := server.New(tracker, port, cfg.Server.CORSOrigins, log)
	return srv.ListenAndServe()
}
