package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"playlist-api-go/config"
	"playlist-api-go/logcolors"
	"playlist-api-go/stats"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

var (
	// ErrEmptyPrompt is returned when no prompt text is supplied.
	ErrEmptyPrompt = errors.New("prompt is required")

	// ErrBadResponse is returned when the model reply cannot be parsed
	// into a query array. The pipeline must stop here, no fallback set.
	ErrBadResponse = errors.New("AI did not return a valid JSON array")
)

const promptTemplate = `You are a Spotify playlist assistant. A user wants a playlist for "%s". Based on this, generate a list of 5 specific Spotify search queries. Return your answer ONLY as a valid JSON array of strings. Do not include any other text, just the JSON array.`

// Client calls the Gemini generateContent endpoint to turn a free-text
// prompt into catalog search queries.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// NewClient builds a planner client from the loaded configuration.
func NewClient() *Client {
	conf := config.Get()
	return &Client{
		BaseURL: conf.Configuration.GeminiBaseURL,
		APIKey:  conf.Configuration.GeminiAPIKey,
		Model:   conf.Configuration.GeminiModel,
		HTTPClient: &http.Client{
			Timeout: time.Duration(conf.Configuration.HTTPTimeoutInSeconds) * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// PlanSearchQueries asks the model for search queries matching the
// prompt. The model is instructed to answer with a bare JSON array of
// strings; whatever valid array comes back is authoritative, even if
// its length differs from the requested five.
func (c *Client) PlanSearchQueries(ctx context.Context, prompt string) ([]string, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	stats.Get().RecordPlannerCall()
	log.Infof("%s Asking AI for search queries...", logcolors.LogPlanner)

	payload := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: fmt.Sprintf(promptTemplate, prompt)}}},
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.BaseURL, c.Model, url.QueryEscape(c.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Errorf("%s Generate call returned status %d", logcolors.LogPlanner, resp.StatusCode)
		return nil, fmt.Errorf("generate API returned status %d", resp.StatusCode)
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text")
	if !text.Exists() || text.String() == "" {
		stats.Get().RecordPlannerParseFailure()
		return nil, fmt.Errorf("%w: empty candidate text", ErrBadResponse)
	}

	queries, err := ParseQueries(text.String())
	if err != nil {
		stats.Get().RecordPlannerParseFailure()
		log.Errorf("%s Failed to parse AI response: %q", logcolors.LogPlanner, text.String())
		return nil, err
	}

	log.Infof("%s AI generated %d queries: %v", logcolors.LogPlanner, len(queries), queries)
	return queries, nil
}
