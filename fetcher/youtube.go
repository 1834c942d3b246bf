package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trends-service/metrics"
	"trends-service/model"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// YouTubeClient talks to the YouTube Data API v3. BaseURL is overridable so
// tests can point it at a local server.
type YouTubeClient struct {
	APIKey  string
	Region  string
	BaseURL string
	Client  *http.Client
}

func NewYouTubeClient(apiKey, region string) *YouTubeClient {
	return &YouTubeClient{
		APIKey:  apiKey,
		Region:  region,
		BaseURL: youtubeAPIBase,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchMostPopular returns the trending chart for the client's region,
// optionally scoped to a category. The chart endpoint has no freshness
// parameter, so recency filtering happens client-side after normalization.
func (c *YouTubeClient) FetchMostPopular(ctx context.Context, categoryID string, maxResults int) ([]model.YouTubeVideoItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("chart", "mostPopular")
	params.Set("regionCode", c.Region)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if categoryID != "" && categoryID != "0" {
		params.Set("videoCategoryId", categoryID)
	}
	params.Set("key", c.APIKey)

	var response model.YouTubeVideoResponse
	if err := c.get(ctx, "videos", params, &response); err != nil {
		return nil, fmt.Errorf("YouTube trending fetch failed: %w", err)
	}
	return response.Items, nil
}

// SearchVideoIDs runs a keyword search ordered by view count and returns the
// matching video identifiers in upstream order.
func (c *YouTubeClient) SearchVideoIDs(ctx context.Context, query, categoryID, language string, publishedAfter time.Time, maxResults int) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("regionCode", c.Region)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", "viewCount")
	params.Set("q", query)
	params.Set("publishedAfter", publishedAfter.UTC().Format(time.RFC3339))
	if categoryID != "" && categoryID != "0" {
		params.Set("videoCategoryId", categoryID)
	}
	if language != "" {
		params.Set("relevanceLanguage", language)
	}
	params.Set("key", c.APIKey)

	var response model.YouTubeSearchResponse
	if err := c.get(ctx, "search", params, &response); err != nil {
		return nil, fmt.Errorf("YouTube search failed: %w", err)
	}

	ids := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

// FetchVideoDetails batch-loads snippet, statistics and content details for
// the given identifiers.
func (c *YouTubeClient) FetchVideoDetails(ctx context.Context, ids []string) ([]model.YouTubeVideoItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.APIKey)

	var response model.YouTubeVideoResponse
	if err := c.get(ctx, "videos", params, &response); err != nil {
		return nil, fmt.Errorf("YouTube video details failed: %w", err)
	}
	return response.Items, nil
}

func (c *YouTubeClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	requestURL := fmt.Sprintf("%s/%s?%s", c.BaseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.YouTubeRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.YouTubeRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		log.Printf("[ERROR] YouTube %s returned status %d", endpoint, resp.StatusCode)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.YouTubeRequestsTotal.WithLabelValues(endpoint, "decode_error").Inc()
		return err
	}

	metrics.YouTubeRequestsTotal.WithLabelValues(endpoint, "200").Inc()
	return nil
}
