// Package insights calls the Google Generative Language REST API to
// produce short marketing copy. Every failure falls back to a fixed
// default string; callers never see an error.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	endpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	fallbackDescription = "A curated discovery for you."
	emptyDescription    = "An interesting corner of the web."
	fallbackInsight     = "Insights unavailable."
	emptyInsight        = "Users are currently showing high interest in social and tech resources."
)

// Client is an InsightsGenerator backed by the Generative Language API.
// With an empty API key every call short-circuits to its fallback.
type Client struct {
	apiKey string
	model  string
	http   *http.Client
	log    zerolog.Logger
}

func NewClient(apiKey, model string, log zerolog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

// SiteDescription returns a catchy one-sentence description for a site.
func (c *Client) SiteDescription(ctx context.Context, name, category string) string {
	prompt := fmt.Sprintf(
		"Provide a catchy one-sentence description for a website named %q which falls under the category of %q. Keep it under 15 words.",
		name, category)
	return c.generate(ctx, prompt, fallbackDescription, emptyDescription)
}

// TrendInsight returns a short analytical blurb about the given popular
// site names.
func (c *Client) TrendInsight(ctx context.Context, topSites []string) string {
	prompt := fmt.Sprintf(
		"Given these popular websites on our platform: %s, what's a short 2-sentence analytical insight about user trends?",
		strings.Join(topSites, ", "))
	return c.generate(ctx, prompt, fallbackInsight, emptyInsight)
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

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate runs one completion. A transport or decode failure yields
// errFallback; a successful call with empty text yields emptyFallback.
func (c *Client) generate(ctx context.Context, prompt, errFallback, emptyFallback string) string {
	if c.apiKey == "" {
		return errFallback
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return errFallback
	}

	url := fmt.Sprintf(endpointFormat, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errFallback
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("text generation request failed")
		return errFallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("text generation returned non-200")
		return errFallback
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warn().Err(err).Msg("text generation response undecodable")
		return errFallback
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return emptyFallback
	}
	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return emptyFallback
	}
	return text
}
