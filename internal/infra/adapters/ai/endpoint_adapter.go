package ai

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

	"prompt-gallery/internal/domain/ports/adapter"
	"prompt-gallery/internal/infra/logging"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.ImageGenerator = (*EndpointAdapter)(nil)

// EndpointError is a non-2xx answer from the generation endpoint.
type EndpointError struct {
	StatusCode int
	Message    string
}

func (e *EndpointError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generation endpoint http %d", e.StatusCode)
	}
	return fmt.Sprintf("generation endpoint http %d: %s", e.StatusCode, e.Message)
}

// EndpointAdapter implements adapter.ImageGenerator by calling the
// generation endpoint over HTTP: POST {"prompt": ...} -> {"url": ...}.
type EndpointAdapter struct {
	endpoint string
	client   *http.Client
}

func NewEndpointAdapter(endpoint string, timeout time.Duration) (*EndpointAdapter, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("generation endpoint url empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EndpointAdapter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (e *EndpointAdapter) GenerateImage(ctx context.Context, prompt string) (string, error) {
	b, err := json.Marshal(struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if tid := logging.TraceID(ctx); tid != "" {
		req.Header.Set("X-Trace-Id", tid)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var payload struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if resp.StatusCode >= 300 {
		_ = json.Unmarshal(body, &payload)
		return "", &EndpointError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if payload.URL == "" {
		return "", errors.New("generation endpoint returned no url")
	}
	return payload.URL, nil
}
