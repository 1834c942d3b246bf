package handler

import (
	"log"
	"net/http"
	"strconv"

	"trends-service/model"
	"trends-service/service"
	"trends-service/utils"

	"github.com/gin-gonic/gin"
)

const defaultMaxResults = 18

// TrendHandler wires the HTTP surface to the trend and insight services.
// The publisher is optional; nil disables report events.
type TrendHandler struct {
	trends    *service.TrendService
	insights  *service.InsightService
	publisher *ReportPublisher
}

func NewTrendHandler(trends *service.TrendService, insights *service.InsightService, publisher *ReportPublisher) *TrendHandler {
	return &TrendHandler{
		trends:    trends,
		insights:  insights,
		publisher: publisher,
	}
}

// GetTrends handles GET /api/trends.
func (h *TrendHandler) GetTrends(c *gin.Context) {
	maxResultsStr := c.DefaultQuery("maxResults", strconv.Itoa(defaultMaxResults))
	maxResults, err := strconv.Atoi(maxResultsStr)
	if err != nil {
		log.Printf("[WARN] Invalid maxResults: %s", maxResultsStr)
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxResults must be an integer"})
		return
	}

	freshness := c.DefaultQuery("freshness", "24h")
	if !service.ValidFreshness(freshness) {
		log.Printf("[WARN] Invalid freshness token: %s", freshness)
		c.JSON(http.StatusBadRequest, gin.H{"error": "freshness must be one of 24h, 7d, 30d"})
		return
	}

	params := model.TrendParams{
		CategoryID: c.DefaultQuery("categoryId", "0"),
		MaxResults: maxResults,
		Freshness:  freshness,
		Query:      c.Query("query"),
		Language:   c.Query("language"),
	}

	log.Printf("[INFO] GetTrends called with category=%s, maxResults=%d, freshness=%s, query=%q",
		params.CategoryID, params.MaxResults, params.Freshness, params.Query)

	report := h.trends.FetchTrends(c.Request.Context(), params)

	if report.Error != "" {
		c.JSON(http.StatusInternalServerError, report)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishReport(report); err != nil {
			log.Printf("[WARN] Failed to publish report event: %v", err)
		}
	}

	c.JSON(http.StatusOK, report)
}

// GenerateInsights handles POST /api/insights.
func (h *TrendHandler) GenerateInsights(c *gin.Context) {
	var req model.InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[WARN] Invalid insight request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reject before any provider selection.
	if len(req.Videos) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No videos supplied for insight generation."})
		return
	}

	log.Printf("[INFO] GenerateInsights called with %d videos", len(req.Videos))

	insight, meta := h.insights.GenerateInsight(c.Request.Context(), req)

	// Degraded generations still respond 200; the failure lives in meta.
	c.JSON(http.StatusOK, model.InsightResponse{
		Insights: insight,
		Meta:     meta,
	})
}

// GetCategories handles GET /api/categories.
func (h *TrendHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, utils.TrendCategories)
}
