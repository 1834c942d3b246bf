package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trends-service/model"
	"trends-service/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(trends *service.TrendService, insights *service.InsightService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTrendHandler(trends, insights, nil)

	r := gin.New()
	r.GET("/api/trends", h.GetTrends)
	r.POST("/api/insights", h.GenerateInsights)
	r.GET("/api/categories", h.GetCategories)
	return r
}

func unconfiguredRouter() *gin.Engine {
	return setupRouter(
		service.NewTrendService("", "IN"),
		service.NewInsightService("", "gpt-4.1-mini"),
	)
}

func TestGetTrendsServesFallbackWithoutCredential(t *testing.T) {
	r := unconfiguredRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trends?categoryId=10", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report model.TrendReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.SpotlightVideos, 1)
	assert.Equal(t, "fallback1", report.SpotlightVideos[0].ID)
	assert.Empty(t, report.Error)
	assert.Equal(t, "Music", report.PrimarySignals.Category)
	assert.Equal(t, "Last 24 hours", report.PrimarySignals.Freshness)
}

func TestGetTrendsRejectsInvalidFreshness(t *testing.T) {
	r := unconfiguredRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trends?freshness=48h", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "freshness")
}

func TestGetTrendsRejectsNonNumericMaxResults(t *testing.T) {
	r := unconfiguredRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trends?maxResults=many", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "maxResults")
}

func TestGetTrendsUpstreamFailureRespondsWithDegradedReport(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend outage", http.StatusBadGateway)
	}))
	defer upstream.Close()

	trends := service.NewTrendService("test-key", "IN")
	trends.YouTube.BaseURL = upstream.URL
	r := setupRouter(trends, service.NewInsightService("", "gpt-4.1-mini"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trends", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var report model.TrendReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.NotEmpty(t, report.Error)
	require.Len(t, report.SpotlightVideos, 1)
	assert.Equal(t, "fallback1", report.SpotlightVideos[0].ID)
}

func TestGenerateInsightsRejectsEmptyVideos(t *testing.T) {
	r := unconfiguredRouter()

	for _, body := range []string{`{"videos": []}`, `{}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/insights", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.Contains(t, w.Body.String(), "No videos supplied")
	}
}

func TestGenerateInsightsHeuristicWithoutCredential(t *testing.T) {
	r := unconfiguredRouter()

	body := `{"videos": [{"id": "v1", "channelTitle": "X", "viewCount": 1000000}], "signals": {"category": "Music", "freshness": "Last 24 hours"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/insights", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.InsightResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.ProviderHeuristic, resp.Meta.Provider)
	assert.Empty(t, resp.Meta.Error)
	assert.Equal(t,
		"Category Music shows 1 uplifts. Top creator X is leading with 10,00,000 views. Average view velocity is 10,00,000 views.",
		resp.Insights.Summary)
}

func TestGenerateInsightsGenerativeFailureStillResponds200(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A reply the structured-output contract forbids.
		fmt.Fprint(w, `{"output": [{"content": [{"text": "not a json object"}]}]}`)
	}))
	defer upstream.Close()

	insights := service.NewInsightService("test-key", "gpt-4.1-mini")
	insights.OpenAI.BaseURL = upstream.URL
	r := setupRouter(service.NewTrendService("", "IN"), insights)

	request := model.InsightRequest{
		Videos: []model.VideoRecord{
			{ID: "v1", ChannelTitle: "X", ViewCount: 1000000},
			{ID: "v2", ViewCount: 500000},
		},
		Signals: &model.InsightSignals{Category: "Music", Freshness: "Last 24 hours"},
	}
	body, err := json.Marshal(request)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/insights", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.InsightResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.ProviderHeuristic, resp.Meta.Provider)
	assert.NotEmpty(t, resp.Meta.Error)
	assert.Equal(t, service.HeuristicInsight(request).Summary, resp.Insights.Summary)
}

func TestGetCategories(t *testing.T) {
	r := unconfiguredRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var categories []model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 14)
	assert.Equal(t, "0", categories[0].ID)
	assert.Equal(t, "All", categories[0].Label)
}
