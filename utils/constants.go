package utils

import (
	"time"

	"trends-service/model"
)

// TrendCategories is the static category lookup table. ID "0" is the
// aggregate "All" bucket and must always resolve.
var TrendCategories = []model.Category{
	{ID: "0", Label: "All", Description: "Aggregated view across every YouTube category in India."},
	{ID: "1", Label: "Film & Animation", Description: "Bollywood trailers, film commentary, celebrity channels."},
	{ID: "2", Label: "Autos & Vehicles", Description: "Auto reviews, road trips, EV launches and more."},
	{ID: "10", Label: "Music", Description: "Indian pop, filmi albums, indie releases, classical performances."},
	{ID: "17", Label: "Sports", Description: "Cricket highlights, kabaddi, esports tournaments."},
	{ID: "20", Label: "Gaming", Description: "BGMI, Free Fire, FIFA, and mobile gaming creators."},
	{ID: "22", Label: "People & Blogs", Description: "Lifestyle, vlogs, creator interviews."},
	{ID: "23", Label: "Comedy", Description: "Sketches, stand-up, meme culture in India."},
	{ID: "24", Label: "Entertainment", Description: "Reality shows, TV moments, pop culture breakdowns."},
	{ID: "25", Label: "News & Politics", Description: "Breaking news, explainers, political commentary, regional coverage."},
	{ID: "26", Label: "Howto & Style", Description: "DIY, fashion, cooking, and productivity."},
	{ID: "27", Label: "Education", Description: "Competitive exam prep, edtech, explainer channels."},
	{ID: "28", Label: "Science & Technology", Description: "Tech news, reviews, space and innovation."},
	{ID: "29", Label: "Nonprofits & Activism", Description: "NGO spotlights, social impact stories, activism campaigns."},
}

// ResolveCategoryLabel maps a category id to its label. Unknown ids resolve
// to "All" rather than failing.
func ResolveCategoryLabel(categoryID string) string {
	for _, category := range TrendCategories {
		if category.ID == categoryID {
			return category.Label
		}
	}
	return "All"
}

const placeholderThumbnailURL = "https://dummyimage.com/480x270/1e293b/94a3b8&text=Configure+API+Key"

// FallbackVideos returns the fixed placeholder list served when no YouTube
// credential is configured or a sweep fails. A fresh slice is returned per
// call so reports never share records.
func FallbackVideos() []model.VideoRecord {
	return []model.VideoRecord{
		{
			ID:           "fallback1",
			Title:        "Unable to fetch live data without YOUTUBE_API_KEY",
			ChannelTitle: "Configuration Required",
			Description:  "Set the YOUTUBE_API_KEY environment variable to enable live trend research.",
			PublishedAt:  time.Now().UTC(),
			ViewCount:    0,
			Thumbnail: model.Thumbnail{
				URL:    placeholderThumbnailURL,
				Width:  480,
				Height: 270,
			},
			CategoryID: "0",
		},
	}
}
