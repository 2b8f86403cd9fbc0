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

	"resume-builder/internal/enhance"
)

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

const (
	temperature = 0.7
	maxTokens   = 1000
)

// Client calls Gemini through its OpenAI-compatible chat completions API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// New constructs a Client against the default endpoint.
func New(apiKey, model string) *Client {
	return NewWithBaseURL(apiKey, model, DefaultBaseURL)
}

// NewWithBaseURL constructs a Client against a custom endpoint.
func NewWithBaseURL(apiKey, model, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Enhance rewrites text with the prompt for the given kind. A response
// with no usable output falls back to the original text rather than
// erroring.
func (c *Client) Enhance(ctx context.Context, kind enhance.Kind, text string) (string, error) {
	if c.apiKey == "" {
		return "", enhance.ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return "", enhance.ErrEmptyText
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(kind)},
			{Role: "user", Content: text},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", mapStatus(resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return text, nil
	}
	enhanced := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if enhanced == "" {
		return text, nil
	}
	return enhanced, nil
}

func mapStatus(status int, body []byte) error {
	lower := strings.ToLower(string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return enhance.ErrInvalidAPIKey
	case status == http.StatusPaymentRequired:
		return enhance.ErrPaymentRequired
	case status == http.StatusTooManyRequests && strings.Contains(lower, "quota"):
		return enhance.ErrQuotaExceeded
	case status == http.StatusTooManyRequests:
		return enhance.ErrRateLimited
	default:
		return fmt.Errorf("gemini returned status %d", status)
	}
}
