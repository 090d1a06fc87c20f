// Package client calls the censorship service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"profanity/pkg/api"
	"profanity/pkg/models"
)

// StatusError is returned when the service answers with an unexpected status.
type StatusError struct {
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("censor service returned status %d: %s", e.Code, e.Msg)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the service at baseURL, e.g. "http://censor:8055".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Check submits a comment. accepted is false when the service rejected it
// as inappropriate; the verdict is returned either way.
func (c *Client) Check(ctx context.Context, requestID string, comment models.Comment) (verdict models.Verdict, accepted bool, err error) {
	code, err := c.post(ctx, requestID, "/check", comment, &verdict, http.StatusOK, http.StatusUnprocessableEntity)
	if err != nil {
		return models.Verdict{}, false, err
	}
	return verdict, code == http.StatusOK, nil
}

// Censor censors text, optionally with per-request options.
func (c *Client) Censor(ctx context.Context, requestID string, req api.CensorRequest) (api.CensorResponse, error) {
	var resp api.CensorResponse
	_, err := c.post(ctx, requestID, "/censor", req, &resp, http.StatusOK)
	return resp, err
}

// Analyze classifies text.
func (c *Client) Analyze(ctx context.Context, requestID, text string) (api.AnalyzeResponse, error) {
	var resp api.AnalyzeResponse
	_, err := c.post(ctx, requestID, "/analyze", api.AnalyzeRequest{Text: text}, &resp, http.StatusOK)
	return resp, err
}

func (c *Client) post(ctx context.Context, requestID, path string, body, result any, accept ...int) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("error encoding request to %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return 0, fmt.Errorf("error creating request to censor service: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error calling censor service: %w", err)
	}
	defer resp.Body.Close()

	ok := false
	for _, code := range accept {
		ok = ok || resp.StatusCode == code
	}
	if !ok {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Msg: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, fmt.Errorf("error decoding response from %s: %w", path, err)
	}
	return resp.StatusCode, nil
}
