package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trends-service/metrics"
)

const openaiAPIBase = "https://api.openai.com"

// insightSchema constrains the model output to exactly the four digest keys.
var insightSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"summary": map[string]interface{}{"type": "string"},
		"growthDrivers": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"riskFactors": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"audienceNotes": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
	},
	"required":             []string{"summary", "growthDrivers", "riskFactors", "audienceNotes"},
	"additionalProperties": false,
}

type responsesRequest struct {
	Model          string          `json:"model"`
	Input          string          `json:"input"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string                 `json:"name"`
	Schema map[string]interface{} `json:"schema"`
}

type responsesResponse struct {
	Output []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// OpenAIClient sends prompts to the OpenAI Responses API and returns the raw
// structured text. BaseURL is overridable so tests can point it at a local
// server.
type OpenAIClient struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: openaiAPIBase,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GenerateInsightText sends the prompt with the insight JSON schema attached
// and returns the assistant text, which callers parse as one JSON object.
func (c *OpenAIClient) GenerateInsightText(ctx context.Context, prompt string) (string, error) {
	reqBody := responsesRequest{
		Model: c.Model,
		Input: prompt,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "youtube_trend_insight",
				Schema: insightSchema,
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal insight request: %w", err)
	}

	requestURL := fmt.Sprintf("%s/v1/responses", strings.TrimRight(c.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create insight request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.OpenAIRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to call insight endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.OpenAIRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return "", fmt.Errorf("insight endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed responsesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.OpenAIRequestsTotal.WithLabelValues("decode_error").Inc()
		return "", fmt.Errorf("failed to decode insight response: %w", err)
	}

	metrics.OpenAIRequestsTotal.WithLabelValues("200").Inc()

	if len(parsed.Output) == 0 || len(parsed.Output[0].Content) == 0 {
		return "", errors.New("insight generation returned empty response")
	}
	text := strings.TrimSpace(parsed.Output[0].Content[0].Text)
	if text == "" {
		return "", errors.New("insight generation returned empty response")
	}
	return text, nil
}
