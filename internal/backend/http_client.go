package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adilgabb/commitgate/models"
)

// ClientConfig configures the HTTP commit-store client.
type ClientConfig struct {
	// BaseURL is the API root of the commit store.
	BaseURL string

	// PublicBaseURL is the root under which committed files are served.
	// Falls back to BaseURL when empty.
	PublicBaseURL string

	// InternalBaseURL is the internally-routed equivalent of PublicBaseURL
	// used for private channels. Falls back to PublicBaseURL when empty.
	InternalBaseURL string

	// Timeout bounds every staging and commit call. Timeouts surface as
	// ordinary request errors to the caller.
	Timeout time.Duration
}

type httpClient struct {
	client          *resty.Client
	publicBaseURL   string
	internalBaseURL string
}

// NewHTTPClient builds the resty-backed commit-store client.
func NewHTTPClient(cfg ClientConfig) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:9000"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = cfg.BaseURL
	}
	if cfg.InternalBaseURL == "" {
		cfg.InternalBaseURL = cfg.PublicBaseURL
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpClient{
		client:          cli,
		publicBaseURL:   strings.TrimRight(cfg.PublicBaseURL, "/"),
		internalBaseURL: strings.TrimRight(cfg.InternalBaseURL, "/"),
	}
}

type stageResponse struct {
	OID string `json:"oid"`
}

func (h *httpClient) StageObject(ctx context.Context, ch models.Channel, sha256Hex string, data []byte) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader("X-Content-Sha256", sha256Hex).
		SetAuthToken(ch.Token).
		SetBody(data).
		Post("/api/v1/repos/" + ch.Repo + "/objects")
	if err != nil {
		return "", fmt.Errorf("stage object request: %w", err)
	}
	if err = mapBackendError(resp); err != nil {
		return "", err
	}

	var sr stageResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return "", fmt.Errorf("decode stage response: %w", err)
	}
	if sr.OID == "" {
		return "", fmt.Errorf("%w: staging returned no object id", ErrBackend)
	}

	return sr.OID, nil
}

type commitRequest struct {
	Message    string      `json:"message"`
	Operations []Operation `json:"operations"`
}

func (h *httpClient) SubmitCommit(ctx context.Context, ch models.Channel, message string, ops []Operation) (models.CommitResult, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(ch.Token).
		SetBody(commitRequest{Message: message, Operations: ops}).
		Post("/api/v1/repos/" + ch.Repo + "/commits")
	if err != nil {
		return models.CommitResult{}, fmt.Errorf("submit commit request: %w", err)
	}
	if err = mapBackendError(resp); err != nil {
		return models.CommitResult{}, err
	}

	var result models.CommitResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.CommitResult{}, fmt.Errorf("decode commit response: %w", err)
	}

	return result, nil
}

func (h *httpClient) PublicURL(ch models.Channel, path string) string {
	base := h.publicBaseURL
	if ch.Private {
		base = h.internalBaseURL
	}
	return base + "/" + ch.Repo + "/" + path
}

func mapBackendError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: http %d", ErrAuth, code)
	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After"))}
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}
	return fmt.Errorf("%w: http %d: %s", ErrBackend, code, body)
}

// parseRetryAfter reads the delay-seconds form of a Retry-After header.
// The HTTP-date form and garbage values yield 0, meaning no hint.
func parseRetryAfter(value string) int {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
