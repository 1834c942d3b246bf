package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"trends-service/fetcher"
	"trends-service/metrics"
	"trends-service/model"
)

const promptDescriptionLimit = 220

// Provenance values reported in insight metadata.
const (
	ProviderOpenAI    = "openai"
	ProviderHeuristic = "heuristic"
)

// The editorial triples are fixed so heuristic output stays deterministic
// and snapshot-testable. Only the summary is data-dependent.
var (
	heuristicGrowthDrivers = []string{
		"Organic traction via YouTube home feed and Shorts crossover",
		"Narratives shaped by regional language creators with national reach",
		"Seasonal spike from ongoing events referenced in multiple uploads",
	}
	heuristicRiskFactors = []string{
		"Storyline saturation if creators reuse identical talking points",
		"Discovery dependent on continued algorithmic push within India",
		"Potential demonetisation if news commentary skirts policy lines",
	}
	heuristicAudienceNotes = []string{
		"Core viewers skew mobile-first from tier 2/3 cities",
		"Strong overlap with live conversation on X and Instagram Reels",
		"Expect higher retention when narratives tie into daily headlines",
	}
)

// InsightService produces narrative digests for ranked video lists. With no
// OpenAI key configured, or whenever the generative path fails, it computes
// the deterministic heuristic digest instead.
type InsightService struct {
	apiKey string
	OpenAI *fetcher.OpenAIClient
}

func NewInsightService(apiKey, modelName string) *InsightService {
	return &InsightService{
		apiKey: apiKey,
		OpenAI: fetcher.NewOpenAIClient(apiKey, modelName),
	}
}

// GenerateInsight runs provider selection and failover. It never fails:
// every generative-path error degrades to the heuristic digest with the
// causing message recorded in the metadata.
func (s *InsightService) GenerateInsight(ctx context.Context, req model.InsightRequest) (model.TrendInsight, model.InsightMeta) {
	if s.apiKey == "" {
		metrics.InsightRequestsTotal.WithLabelValues(ProviderHeuristic, "not_configured").Inc()
		return HeuristicInsight(req), model.InsightMeta{Provider: ProviderHeuristic}
	}

	insight, err := s.generate(ctx, req)
	if err != nil {
		log.Printf("[ERROR] Generative insight failed, using heuristic digest: %v", err)
		metrics.InsightRequestsTotal.WithLabelValues(ProviderHeuristic, "fallback").Inc()
		return HeuristicInsight(req), model.InsightMeta{Provider: ProviderHeuristic, Error: err.Error()}
	}

	metrics.InsightRequestsTotal.WithLabelValues(ProviderOpenAI, "success").Inc()
	return insight, model.InsightMeta{Provider: ProviderOpenAI}
}

func (s *InsightService) generate(ctx context.Context, req model.InsightRequest) (model.TrendInsight, error) {
	prompt := BuildInsightPrompt(req)

	text, err := s.OpenAI.GenerateInsightText(ctx, prompt)
	if err != nil {
		return model.TrendInsight{}, err
	}

	// The schema forbids additional properties, so unknown keys in the
	// response are treated as a malformed reply.
	var insight model.TrendInsight
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&insight); err != nil {
		return model.TrendInsight{}, fmt.Errorf("failed to parse insight response: %w", err)
	}
	return insight, nil
}

// BuildInsightPrompt renders the natural-language prompt sent to the model,
// embedding each video with its description truncated to 220 characters.
func BuildInsightPrompt(req model.InsightRequest) string {
	category, freshness, keyword := "All", "Last 24 hours", "None"
	if req.Signals != nil {
		if req.Signals.Category != "" {
			category = req.Signals.Category
		}
		if req.Signals.Freshness != "" {
			freshness = req.Signals.Freshness
		}
		if req.Signals.Keyword != "" {
			keyword = req.Signals.Keyword
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		"You are an insights analyst for India's YouTube ecosystem. Provide a concise digest. Category: %s, Freshness: %s, Keyword focus: %s.",
		category, freshness, keyword))
	sb.WriteString("\n\nTop videos:\n")
	for i, video := range req.Videos {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d. \"%s\" by %s (%s views, published %s). Description: %s",
			i+1,
			video.Title,
			video.ChannelTitle,
			FormatViews(float64(video.ViewCount)),
			video.PublishedAt.Format(time.RFC3339),
			truncateRunes(video.Description, promptDescriptionLimit)))
	}
	sb.WriteString("\n\nProduce a JSON object with keys summary, growthDrivers (array), riskFactors (array), audienceNotes (array). Keep each bullet under 18 words.")
	return sb.String()
}

// HeuristicInsight computes the deterministic digest directly from video
// statistics. The formula is load-bearing for clients that snapshot it.
func HeuristicInsight(req model.InsightRequest) model.TrendInsight {
	var totalViews int64
	for _, video := range req.Videos {
		totalViews += video.ViewCount
	}
	count := len(req.Videos)
	if count == 0 {
		count = 1
	}
	averageViews := float64(totalViews) / float64(count)

	var summaryParts []string
	if req.Signals != nil && req.Signals.Keyword != "" {
		summaryParts = append(summaryParts, fmt.Sprintf(
			"Keyword focus \"%s\" is driving %d high-velocity uploads",
			req.Signals.Keyword, len(req.Videos)))
	} else {
		category := "All"
		if req.Signals != nil && req.Signals.Category != "" {
			category = req.Signals.Category
		}
		summaryParts = append(summaryParts, fmt.Sprintf(
			"Category %s shows %d uplifts", category, len(req.Videos)))
	}
	if len(req.Videos) > 0 {
		top := req.Videos[0]
		summaryParts = append(summaryParts, fmt.Sprintf(
			"Top creator %s is leading with %s views",
			top.ChannelTitle, FormatViews(float64(top.ViewCount))))
	}
	summaryParts = append(summaryParts, fmt.Sprintf(
		"Average view velocity is %s views", FormatViews(averageViews)))

	return model.TrendInsight{
		Summary:       strings.Join(summaryParts, ". ") + ".",
		GrowthDrivers: heuristicGrowthDrivers,
		RiskFactors:   heuristicRiskFactors,
		AudienceNotes: heuristicAudienceNotes,
	}
}

// FormatViews renders a view count with en-IN digit grouping, e.g.
// 1000000 -> "10,00,000". Fractional averages keep up to three decimals
// with trailing zeros trimmed.
func FormatViews(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	integer := int64(value)
	fraction := value - float64(integer)

	grouped := groupIndianDigits(fmt.Sprintf("%d", integer))

	if fraction > 0 {
		frac := strings.TrimRight(fmt.Sprintf("%.3f", fraction)[2:], "0")
		if frac != "" {
			grouped += "." + frac
		}
	}
	if negative {
		grouped = "-" + grouped
	}
	return grouped
}

// groupIndianDigits inserts separators after the last three digits and then
// every two: 750000 -> 7,50,000.
func groupIndianDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
