package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/source"
	"github.com/elonfeng/trendradar/pkg/trend"
)

// Server provides the HTTP API over the trend tracker.
type Server struct {
	tracker     *trend.Tracker
	port        int
	corsOrigins []string
	log         *zap.Logger
}

// New creates a new HTTP server.
func New(tracker *trend.Tracker, port int, corsOrigins []string, log *zap.Logger) *Server {
	if port == 0 {
		port = 3001
	}
	return &Server{
		tracker:     tracker,
		port:        port,
		corsOrigins: corsOrigins,
		log:         log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.log), recoveryHandler(s.log), corsMiddleware(s.corsOrigins))

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.GET("/live-trends", s.handleLiveTrends)
	api.GET("/live-trends/news", s.handleNews)
	api.GET("/live-trends/youtube", s.handleYouTube)
	api.GET("/live-trends/twitter", s.handleTwitter)
	api.GET("/live-trends/google", s.handleGoogle)
	api.GET("/live-trends/reddit", s.handleReddit)
	api.GET("/live-trends/themes", s.handleThemes)
	api.GET("/live-trends/viral", s.handleViral)

	return r
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("trendradar server listening", zap.String("addr", addr))
	return s.Router().Run(addr)
}

// envelope is the standard success response shape.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Count     *int   `json:"count,omitempty"`
	Timestamp string `json:"timestamp"`
	Meta      gin.H  `json:"meta,omitempty"`
}

func respond(c *gin.Context, data any, count *int, meta gin.H) {
	c.JSON(http.StatusOK, envelope{
		Success:   true,
		Data:      data,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Meta:      meta,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLiveTrends(c *gin.Context) {
	report := s.tracker.Collect(c.Request.Context())
	respond(c, report, nil, nil)
}

func (s *Server) handleNews(c *gin.Context) {
	s.respondType(c, source.TypeNews, nil)
}

func (s *Server) handleYouTube(c *gin.Context) {
	s.respondType(c, source.TypeVideo, nil)
}

func (s *Server) handleTwitter(c *gin.Context) {
	s.respondType(c, source.TypeSocialTrend, nil)
}

func (s *Server) handleGoogle(c *gin.Context) {
	s.respondType(c, source.TypeSearchTrend, nil)
}

func (s *Server) handleReddit(c *gin.Context) {
	s.respondType(c, source.TypeForumPost, gin.H{
		"timeframe": "Last 12 hours",
		"criteria":  "High upvote ratio, growing comments",
	})
}

func (s *Server) respondType(c *gin.Context, typ source.Type, meta gin.H) {
	items := s.tracker.CollectType(c.Request.Context(), typ)
	count := len(items)
	respond(c, items, &count, meta)
}

func (s *Server) handleThemes(c *gin.Context) {
	themes, method, analyzed := s.tracker.Themes(c.Request.Context())
	count := len(themes)
	respond(c, themes, &count, gin.H{
		"method":         method,
		"total_analyzed": analyzed,
		"themes_found":   count,
		"criteria": []string{
			"Same events described differently",
			"Related topics",
			"Common personalities",
			"Similar incidents",
			"Trending subjects",
		},
	})
}

func (s *Server) handleViral(c *gin.Context) {
	viral, method, analyzed := s.tracker.Viral(c.Request.Context())
	count := len(viral)
	respond(c, viral, &count, gin.H{
		"method":         method,
		"total_analyzed": analyzed,
		"viral_selected": count,
		"criteria": []string{
			"Breaking news impact",
			"Controversy potential",
			"Celebrity/entertainment value",
			"Emotional impact",
			"Social shareability",
			"Indian relevance",
		},
	})
}
