package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidTrendingPost(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		upvotes  int
		ratio    float64
		comments int
		want     bool
	}{
		{"high upvotes", "A reasonably long post title", 600, 0.5, 0, true},
		{"high comments", "A reasonably long post title", 10, 0.5, 150, true},
		{"high ratio", "A reasonably long post title", 10, 0.9, 0, true},
		{"moderate engagement", "A reasonably long post title", 60, 0.75, 15, true},
		{"trending keyword at low bar", "Breaking development in the city", 25, 0.65, 0, true},
		{"low everything", "A reasonably long post title", 25, 0.65, 5, false},
		{"title too short", "Short", 5000, 0.99, 1000, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validTrendingPost(tc.title, tc.upvotes, tc.ratio, tc.comments))
		})
	}
}

func TestRedditFetch(t *testing.T) {
	now := time.Now().Unix()
	old := time.Now().Add(-24 * time.Hour).Unix()

	indiaHot := fmt.Sprintf(`{"data":{"children":[
		{"data":{"title":"Massive protest erupts in Delhi today","permalink":"/r/india/1",
		 "ups":2500,"num_comments":600,"upvote_ratio":0.95,"created_utc":%d}},
		{"data":{"title":"Old thread about city infrastructure plans","permalink":"/r/india/2",
		 "ups":2500,"num_comments":600,"upvote_ratio":0.95,"created_utc":%d}},
		{"data":{"title":"Barely noticed post about nothing much","permalink":"/r/india/3",
		 "ups":3,"num_comments":1,"upvote_ratio":0.5,"created_utc":%d}}
	]}}`, now, old, now)

	r := NewReddit(zap.NewNop())
	r.SetClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if strings.Contains(req.URL.Path, "/r/india/hot") {
			return jsonResponse(indiaHot), nil
		}
		return jsonResponse(`{"data":{"children":[]}}`), nil
	})})

	items, err := r.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1, "old and low-engagement posts are dropped")

	item := items[0]
	assert.Equal(t, "Massive protest erupts in Delhi today", item.Title)
	assert.Equal(t, "Reddit r/india", item.Source)
	assert.Equal(t, TypeForumPost, item.Type)
	assert.Equal(t, "https://www.reddit.com/r/india/1", item.URL)
	assert.Equal(t, "Viral", item.Traffic)
	assert.Equal(t, 2500, item.Engagement.Upvotes)
	assert.Equal(t, 600, item.Engagement.Comments)
	assert.Equal(t, 0.24, item.Engagement.Rate)
	assert.Equal(t, 50, item.Score, "runaway thread hits the forum cap")
}

func TestRedditFeedFailureSkipsFeed(t *testing.T) {
	r := NewReddit(zap.NewNop())
	r.SetClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("connection refused")
	})})

	items, err := r.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, items)
}
