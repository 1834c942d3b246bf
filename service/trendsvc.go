package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"trends-service/fetcher"
	"trends-service/metrics"
	"trends-service/model"
	"trends-service/utils"
)

const (
	minResults = 6
	maxResults = 50
)

// TrendService runs aggregation sweeps against the YouTube Data API. With no
// API key configured it serves the fixed fallback list instead of failing.
type TrendService struct {
	apiKey  string
	YouTube *fetcher.YouTubeClient
}

func NewTrendService(apiKey, region string) *TrendService {
	return &TrendService{
		apiKey:  apiKey,
		YouTube: fetcher.NewYouTubeClient(apiKey, region),
	}
}

// FetchTrends performs one sweep: fetch, normalize, filter, rank, truncate.
// It always returns a usable report; upstream failures degrade the whole
// sweep to the fallback list with the error message attached.
func (s *TrendService) FetchTrends(ctx context.Context, params model.TrendParams) model.TrendReport {
	params.MaxResults = clampMaxResults(params.MaxResults)

	signals := model.PrimarySignals{
		Category:  utils.ResolveCategoryLabel(params.CategoryID),
		Freshness: FreshnessLabel(params.Freshness),
		Keyword:   params.Query,
	}

	if s.apiKey == "" {
		// Not configured is a defined degraded mode, not a failure.
		metrics.TrendSweepsTotal.WithLabelValues("fallback", "not_configured").Inc()
		return model.TrendReport{
			GeneratedAt:     time.Now().UTC(),
			PrimarySignals:  signals,
			SpotlightVideos: utils.FallbackVideos(),
		}
	}

	cutoff := CutoffFor(params.Freshness, time.Now().UTC())

	var (
		videos []model.VideoRecord
		source string
		err    error
	)
	if params.Query != "" {
		source = "search"
		videos, err = s.fetchByKeyword(ctx, params, cutoff)
	} else {
		source = "chart"
		videos, err = s.fetchFromChart(ctx, params, cutoff)
	}
	if err != nil {
		log.Printf("[ERROR] Trend sweep failed (source=%s): %v", source, err)
		metrics.TrendSweepsTotal.WithLabelValues(source, "error").Inc()
		return model.TrendReport{
			GeneratedAt:     time.Now().UTC(),
			PrimarySignals:  signals,
			SpotlightVideos: utils.FallbackVideos(),
			Error:           err.Error(),
		}
	}

	videos = filterByLanguage(videos, params.Language)

	// Ties keep their upstream relative order.
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].ViewCount > videos[j].ViewCount
	})

	if len(videos) > params.MaxResults {
		videos = videos[:params.MaxResults]
	}

	metrics.TrendSweepsTotal.WithLabelValues(source, "success").Inc()
	metrics.TrendVideosServed.WithLabelValues(params.CategoryID).Add(float64(len(videos)))
	log.Printf("[INFO] Trend sweep completed: source=%s, category=%s, videos=%d", source, params.CategoryID, len(videos))

	return model.TrendReport{
		GeneratedAt:     time.Now().UTC(),
		PrimarySignals:  signals,
		SpotlightVideos: videos,
	}
}

// fetchByKeyword searches for matching video ids, then batch-loads their
// details. The two calls are sequential because the second depends on the
// identifiers returned by the first.
func (s *TrendService) fetchByKeyword(ctx context.Context, params model.TrendParams, cutoff time.Time) ([]model.VideoRecord, error) {
	ids, err := s.YouTube.SearchVideoIDs(ctx, params.Query, params.CategoryID, params.Language, cutoff, params.MaxResults)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	items, err := s.YouTube.FetchVideoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	videos := make([]model.VideoRecord, 0, len(items))
	for _, item := range items {
		videos = append(videos, fetcher.Normalize(item))
	}
	return videos, nil
}

// fetchFromChart pulls the most-popular chart and applies the freshness
// cutoff client-side, since the chart endpoint has no publishedAfter
// parameter.
func (s *TrendService) fetchFromChart(ctx context.Context, params model.TrendParams, cutoff time.Time) ([]model.VideoRecord, error) {
	items, err := s.YouTube.FetchMostPopular(ctx, params.CategoryID, params.MaxResults)
	if err != nil {
		return nil, err
	}

	videos := make([]model.VideoRecord, 0, len(items))
	for _, item := range items {
		video := fetcher.Normalize(item)
		if video.PublishedAt.Before(cutoff) {
			continue
		}
		videos = append(videos, video)
	}
	return videos, nil
}

// filterByLanguage keeps records whose language is unknown or starts with
// the requested prefix, so "en" matches "en-IN".
func filterByLanguage(videos []model.VideoRecord, language string) []model.VideoRecord {
	if language == "" {
		return videos
	}
	filtered := make([]model.VideoRecord, 0, len(videos))
	for _, video := range videos {
		if video.LanguageCode == "" || strings.HasPrefix(video.LanguageCode, language) {
			filtered = append(filtered, video)
		}
	}
	return filtered
}

func clampMaxResults(value int) int {
	if value < minResults {
		return minResults
	}
	if value > maxResults {
		return maxResults
	}
	return value
}
