// Package gemini asks the Generative Language API for product
// recommendations. The API key is read from the integration settings row
// first, then the environment; without one the client reports itself
// disabled and callers fall back to a non-AI answer.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/reweara/api/internal/store"
)

const (
	defaultModel = "gemini-1.5-flash"
	baseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
)

var ErrNotConfigured = errors.New("gemini: api key is not configured")

type Client struct {
	Store  *store.Store
	EnvKey string
	Model  string
	HTTP   *http.Client
}

func (c *Client) apiKey(ctx context.Context) string {
	if c.Store != nil {
		if is, err := c.Store.GetIntegrationSettings(ctx); err == nil && is.GeminiAPIKey != "" {
			return is.GeminiAPIKey
		}
	}
	return c.EnvKey
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (c *Client) model() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModel
}

// Generate sends a single-turn prompt and returns the first candidate text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	key := c.apiKey(ctx)
	if key == "" {
		return "", ErrNotConfigured
	}

	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, c.model(), key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d", resp.StatusCode)
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
