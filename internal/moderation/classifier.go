// Package moderation contains the best-effort enrichment collaborators: the
// external content classifier and the image dimension sniffer. Failures here
// are always recoverable; a file is already durably committed by the time
// either of them runs.
package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Classifier labels content reachable at a URL. Implementations may fail;
// callers log and move on.
type Classifier interface {
	Classify(ctx context.Context, url string) (label string, err error)
}

// ClassifierConfig configures the HTTP classifier client.
type ClassifierConfig struct {
	// URL is the classify endpoint.
	URL string

	// Timeout bounds every classify call.
	Timeout time.Duration
}

type httpClassifier struct {
	client *resty.Client
	url    string
}

// NewHTTPClassifier builds the resty-backed classifier client.
func NewHTTPClassifier(cfg ClassifierConfig) Classifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &httpClassifier{
		client: resty.New().SetTimeout(cfg.Timeout),
		url:    strings.TrimRight(cfg.URL, "/"),
	}
}

type classifyRequest struct {
	URL string `json:"url"`
}

type classifyResponse struct {
	Label string `json:"label"`
}

func (c *httpClassifier) Classify(ctx context.Context, url string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(classifyRequest{URL: url}).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("classify request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("classify http %d", resp.StatusCode())
	}

	var cr classifyResponse
	if err = json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode classify response: %w", err)
	}
	if cr.Label == "" {
		return "", fmt.Errorf("classifier returned empty label")
	}

	return cr.Label, nil
}
