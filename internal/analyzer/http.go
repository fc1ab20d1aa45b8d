package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout matches the latency profile of the analysis model, which is
// slow relative to ordinary web requests.
const DefaultTimeout = 120 * time.Second

type HTTPAnalyzer struct {
	URL    string
	client *http.Client
}

// NewHTTPAnalyzer builds a client once so connection pooling applies across
// calls. A non-positive timeout falls back to DefaultTimeout.
func NewHTTPAnalyzer(url string, timeout time.Duration) *HTTPAnalyzer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPAnalyzer{
		URL:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Sentiment string `json:"sentiment"`
}

func (h *HTTPAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	if h.client == nil {
		h.client = &http.Client{Timeout: DefaultTimeout}
	}
	if strings.TrimSpace(h.URL) == "" {
		return "", fmt.Errorf("%w: no endpoint configured", ErrUnavailable)
	}

	b, _ := json.Marshal(analyzeRequest{Text: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewBuffer(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var r analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if r.Sentiment == "" {
		return "", fmt.Errorf("%w: missing sentiment field", ErrBadResponse)
	}
	return r.Sentiment, nil
}
