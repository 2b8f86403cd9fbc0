package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-builder/internal/resumes"
)

// APIError carries the server's failure envelope.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// APIClient implements ResumeAPI over HTTP with bearer authentication.
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewAPIClient constructs a client against the given server base URL.
func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (c *APIClient) Create(ctx context.Context, payload resumes.DraftPayload) (resumes.Resume, error) {
	return c.sendDraft(ctx, http.MethodPost, "/api/resumes", payload)
}

func (c *APIClient) Update(ctx context.Context, id string, payload resumes.DraftPayload) (resumes.Resume, error) {
	return c.sendDraft(ctx, http.MethodPut, "/api/resumes/"+id, payload)
}

func (c *APIClient) Get(ctx context.Context, id string) (resumes.Resume, error) {
	var out resumes.Resume
	err := c.do(ctx, http.MethodGet, "/api/resumes/"+id, nil, &out)
	return out, err
}

func (c *APIClient) sendDraft(ctx context.Context, method, path string, payload resumes.DraftPayload) (resumes.Resume, error) {
	var out resumes.Resume
	err := c.do(ctx, method, path, payload, &out)
	return out, err
}

func (c *APIClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
