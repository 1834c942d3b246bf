package fetcher

import (
	"strconv"
	"time"

	"trends-service/model"
)

const (
	defaultTitle        = "Untitled video"
	defaultChannelTitle = "Unknown channel"

	placeholderThumbnailURL    = "https://dummyimage.com/480x270/1e293b/94a3b8&text=No+Image"
	placeholderThumbnailWidth  = 480
	placeholderThumbnailHeight = 270
)

// Normalize maps one raw YouTube video item into a VideoRecord. It is total:
// every missing or malformed field gets a default, so it never fails.
func Normalize(item model.YouTubeVideoItem) model.VideoRecord {
	record := model.VideoRecord{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
		Description:  item.Snippet.Description,
		CategoryID:   item.Snippet.CategoryID,
		Tags:         item.Snippet.Tags,
	}

	if record.Title == "" {
		record.Title = defaultTitle
	}
	if record.ChannelTitle == "" {
		record.ChannelTitle = defaultChannelTitle
	}
	if record.CategoryID == "" {
		record.CategoryID = "0"
	}

	publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		publishedAt = time.Now().UTC()
	}
	record.PublishedAt = publishedAt

	// Missing or non-numeric statistics coerce to zero.
	record.ViewCount, _ = strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
	if likes, err := strconv.ParseInt(item.Statistics.LikeCount, 10, 64); err == nil {
		record.LikeCount = &likes
	}
	if comments, err := strconv.ParseInt(item.Statistics.CommentCount, 10, 64); err == nil {
		record.CommentCount = &comments
	}

	if item.Snippet.DefaultAudioLanguage != "" {
		record.LanguageCode = item.Snippet.DefaultAudioLanguage
	} else if item.Snippet.DefaultLanguage != "" {
		record.LanguageCode = item.Snippet.DefaultLanguage
	}

	record.Thumbnail = bestThumbnail(item.Snippet.Thumbnails)

	if item.ContentDetails.RegionRestriction != nil {
		record.RegionRestriction = &model.RegionRestriction{
			Allowed: item.ContentDetails.RegionRestriction.Allowed,
			Blocked: item.ContentDetails.RegionRestriction.Blocked,
		}
	}

	return record
}

// bestThumbnail picks the highest-priority variant that is present, falling
// back to a fixed 480x270 placeholder when every variant is absent.
func bestThumbnail(thumbnails model.Thumbnails) model.Thumbnail {
	for _, candidate := range []model.Thumbnail{
		thumbnails.Maxres,
		thumbnails.Standard,
		thumbnails.High,
		thumbnails.Medium,
	} {
		if candidate.URL != "" {
			return candidate
		}
	}
	return model.Thumbnail{
		URL:    placeholderThumbnailURL,
		Width:  placeholderThumbnailWidth,
		Height: placeholderThumbnailHeight,
	}
}
