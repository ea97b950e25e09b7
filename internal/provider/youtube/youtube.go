// Package youtube fetches video metadata for lesson resources and ranks
// candidates with a simple weighted scorer.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

type Client struct {
	// Override in tests to use a mock server
	BaseURL string

	apiKey string
	http   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type Video struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Channel string `json:"channel"`
}

func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search queries the YouTube Data API for candidate videos.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Video, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("youtube: API key not configured")
	}
	requestURL := fmt.Sprintf("%s/search?part=snippet&type=video&safeSearch=strict&q=%s&maxResults=%d&key=%s",
		c.BaseURL, url.QueryEscape(query), maxResults, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: building request: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube: status %d", res.StatusCode)
	}

	var response searchResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("youtube: decoding response: %w", err)
	}

	videos := make([]Video, 0, len(response.Items))
	for _, item := range response.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:      item.ID.VideoID,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
		})
	}
	return videos, nil
}

// Scoring weights. Keyword hits in the title dominate; a known educational
// channel adds a flat boost.
const (
	keywordWeight = 3
	channelWeight = 5
)

// Score computes the weighted rank score for one video.
func Score(video Video, keywords []string, preferredChannels []string) int {
	score := 0
	title := strings.ToLower(video.Title)
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(title, strings.ToLower(keyword)) {
			score += keywordWeight
		}
	}
	channel := strings.ToLower(video.Channel)
	for _, preferred := range preferredChannels {
		if strings.Contains(channel, strings.ToLower(preferred)) {
			score += channelWeight
			break
		}
	}
	return score
}

// Rank returns the videos sorted by descending score. The sort is stable,
// so equally scored videos keep the provider's order.
func Rank(videos []Video, keywords []string, preferredChannels []string) []Video {
	ranked := make([]Video, len(videos))
	copy(ranked, videos)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i], keywords, preferredChannels) > Score(ranked[j], keywords, preferredChannels)
	})
	return ranked
}
