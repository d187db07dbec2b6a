package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elonfeng/trendradar/pkg/source"
	"github.com/elonfeng/trendradar/pkg/trend"
)

type stubSource struct {
	typ   source.Type
	label string
	items []source.Item
}

func (s *stubSource) Name() source.Type { return s.typ }
func (s *stubSource) Label() string     { return s.label }
func (s *stubSource) Fetch(ctx context.Context) ([]source.Item, error) {
	return s.items, nil
}

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	sources := []source.Source{
		&stubSource{typ: source.TypeNews, label: "News", items: []source.Item{
			{Title: "Modi announces new scheme", Type: source.TypeNews, Score: 20},
			{Title: "Cricket final tonight", Type: source.TypeNews, Score: 30},
		}},
		&stubSource{typ: source.TypeSocialTrend, label: "Twitter/X", items: []source.Item{
			{Title: "#Modi trends nationwide", Type: source.TypeSocialTrend, Score: 40},
		}},
	}
	tracker := trend.NewTracker(sources, trend.NewMatcher(nil, log), trend.NewRanker(nil, log), log)
	return New(tracker, 0, nil, log)
}

func doGet(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealth(t *testing.T) {
	w, body := doGet(t, newTestServer().Router(), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestPanicReturnsErrorEnvelope(t *testing.T) {
	router := newTestServer().Router()
	router.GET("/boom", func(*gin.Context) { panic("kaput") })

	w, body := doGet(t, router, "/boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["message"])
	assert.Equal(t, "kaput", body["error"])
}

func TestLiveTrends(t *testing.T) {
	w, body := doGet(t, newTestServer().Router(), "/api/live-trends")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	ts, ok := body["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["news"], 2)
	assert.Len(t, data["social_trends"], 1)
	assert.Equal(t, "heuristic", data["theme_method"])
	assert.Equal(t, "heuristic", data["viral_method"])

	summary, ok := data["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), summary["total_items"])
}

func TestNewsEndpoint(t *testing.T) {
	w, body := doGet(t, newTestServer().Router(), "/api/live-trends/news")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	first, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Cricket final tonight", first["title"], "sorted by score")
}

func TestEmptySourceEndpoint(t *testing.T) {
	w, body := doGet(t, newTestServer().Router(), "/api/live-trends/youtube")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
}

func TestRedditEndpointMeta(t *testing.T) {
	_, body := doGet(t, newTestServer().Router(), "/api/live-trends/reddit")

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Last 12 hours", meta["timeframe"])
}

func TestThemesEndpoint(t *testing.T) {
	w, body := doGet(t, newTestServer().Router(), "/api/live-trends/themes")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "heuristic", meta["method"])
	assert.Equal(t, float64(3), meta["total_analyzed"])
}

func TestViralEndpoint(t *testing.T) {
	w, body := doGet(t, newTestServer().Router(), "/api/live-trends/viral")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["count"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	first, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), first["viral_rank"])
}
