// Package gemini is the boundary to the Generative Language API. Everything
// past this package deals in plain prompt strings and response text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/config"
	"github.com/maniacmeyers/interview-maniac-app/internal/metrics"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client calls the generateContent endpoint with retry on transient failures.
type Client struct {
	log        *zap.Logger
	httpClient *http.Client
	apiKey     string
	model      string
	maxTries   uint
}

// NewClient builds a client from the loaded configuration.
func NewClient(log *zap.Logger) *Client {
	cfg := config.Conf.Gemini
	return &Client{
		log:        log,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTries:   uint(cfg.MaxRetries) + 1,
	}
}

// Model reports the configured model name, for response metadata.
func (c *Client) Model() string {
	return c.model
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
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single prompt and returns the concatenated response text.
// Rate limits, 5xx responses and network errors are retried with exponential
// backoff; other API errors fail immediately.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini: API key is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, c.model, c.apiKey)

	metrics.LLMCalls.Inc()
	start := time.Now()
	text, err := backoff.Retry(ctx, func() (string, error) {
		return c.doGenerate(ctx, url, body)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		metrics.LLMErrors.Inc()
		return "", err
	}

	c.log.Debug("Gemini call completed",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_chars", len(text)),
	)
	return text, nil
}

func (c *Client) doGenerate(ctx context.Context, url string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("gemini: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("gemini: API returned status %d", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", err
		}
		return "", backoff.Permanent(err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", backoff.Permanent(fmt.Errorf("gemini: decode response: %w", err))
	}
	if len(parsed.Candidates) == 0 {
		return "", backoff.Permanent(fmt.Errorf("gemini: response contained no candidates"))
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
