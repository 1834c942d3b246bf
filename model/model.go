package model

import "time"

// VideoRecord is the canonical shape of one trending video after
// normalization. Every field is populated; Thumbnail is never empty.
type VideoRecord struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	ChannelTitle      string             `json:"channelTitle"`
	Description       string             `json:"description"`
	PublishedAt       time.Time          `json:"publishedAt"`
	ViewCount         int64              `json:"viewCount"`
	LikeCount         *int64             `json:"likeCount,omitempty"`
	CommentCount      *int64             `json:"commentCount,omitempty"`
	LanguageCode      string             `json:"languageCode,omitempty"`
	Thumbnail         Thumbnail          `json:"thumbnail"`
	CategoryID        string             `json:"categoryId"`
	Tags              []string           `json:"tags,omitempty"`
	RegionRestriction *RegionRestriction `json:"regionRestriction,omitempty"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type RegionRestriction struct {
	Allowed []string `json:"allowed,omitempty"`
	Blocked []string `json:"blocked,omitempty"`
}

// PrimarySignals carries the request-derived labels echoed back with a report.
type PrimarySignals struct {
	Category  string `json:"category"`
	Freshness string `json:"freshness"`
	Keyword   string `json:"keyword,omitempty"`
}

// TrendReport is the result of one aggregation sweep. Constructed fresh per
// request and immutable once returned.
type TrendReport struct {
	GeneratedAt     time.Time      `json:"generatedAt"`
	PrimarySignals  PrimarySignals `json:"primarySignals"`
	SpotlightVideos []VideoRecord  `json:"spotlightVideos"`
	Error           string         `json:"error,omitempty"`
}

// TrendParams describes one trends sweep request.
type TrendParams struct {
	CategoryID string
	MaxResults int
	Freshness  string
	Query      string
	Language   string
}

// TrendInsight is the narrative digest for a ranked video list.
type TrendInsight struct {
	Summary       string   `json:"summary"`
	GrowthDrivers []string `json:"growthDrivers"`
	RiskFactors   []string `json:"riskFactors"`
	AudienceNotes []string `json:"audienceNotes"`
}

// InsightSignals is the optional request context for insight generation.
type InsightSignals struct {
	Category  string `json:"category"`
	Freshness string `json:"freshness"`
	Keyword   string `json:"keyword,omitempty"`
}

// InsightRequest is the POST /api/insights body.
type InsightRequest struct {
	Videos  []VideoRecord   `json:"videos"`
	Signals *InsightSignals `json:"signals,omitempty"`
}

// InsightMeta reports which provider produced the digest and, when the
// generative path degraded, why.
type InsightMeta struct {
	Provider string `json:"provider"`
	Error    string `json:"error,omitempty"`
}

// InsightResponse is the POST /api/insights response body.
type InsightResponse struct {
	Insights TrendInsight `json:"insights"`
	Meta     InsightMeta  `json:"meta"`
}

// Category is one row of the static category lookup table.
type Category struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// YouTube API response structures

type YouTubeVideoResponse struct {
	Items []YouTubeVideoItem `json:"items"`
}

type YouTubeVideoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title                string     `json:"title"`
		Description          string     `json:"description"`
		ChannelTitle         string     `json:"channelTitle"`
		CategoryID           string     `json:"categoryId"`
		PublishedAt          string     `json:"publishedAt"`
		DefaultLanguage      string     `json:"defaultLanguage"`
		DefaultAudioLanguage string     `json:"defaultAudioLanguage"`
		Tags                 []string   `json:"tags"`
		Thumbnails           Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration          string `json:"duration"`
		RegionRestriction *struct {
			Allowed []string `json:"allowed"`
			Blocked []string `json:"blocked"`
		} `json:"regionRestriction"`
	} `json:"contentDetails"`
}

type YouTubeSearchResponse struct {
	Items []YouTubeSearchItem `json:"items"`
}

type YouTubeSearchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
}

type Thumbnails struct {
	Default  Thumbnail `json:"default"`
	Medium   Thumbnail `json:"medium"`
	High     Thumbnail `json:"high"`
	Standard Thumbnail `json:"standard"`
	Maxres   Thumbnail `json:"maxres"`
}
