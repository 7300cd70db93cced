// Package backend holds the HTTP clients for the managed-backend
// collaborators that own order persistence and payment sessions.
package backend

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

	"github.com/aurelia-jewelry/aurelia/internal/config"
)

var (
	ErrRequestFailed   = errors.New("backend request failed")
	ErrResponseInvalid = errors.New("backend response invalid")
	// ErrOrderRejected carries the collaborator's own message for a non-2xx
	// order creation response.
	ErrOrderRejected = errors.New("order creation rejected")
	// ErrPaymentRejected covers a non-2xx payment initialization response.
	ErrPaymentRejected = errors.New("payment initialization rejected")
)

// Client is the shared HTTP transport for both collaborators.
type Client struct {
	baseURL     string
	orderPath   string
	paymentPath string
	httpClient  *http.Client
}

// NewClient builds a client from the backend config section.
func NewClient(cfg config.BackendConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		orderPath:   normalizePath(cfg.OrderPath, "/api/orders"),
		paymentPath: normalizePath(cfg.PaymentPath, "/api/payment/initialize"),
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func normalizePath(path, fallback string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = fallback
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// postJSON sends a JSON body and returns the raw response bytes plus status.
func (c *Client) postJSON(ctx context.Context, path string, body interface{}) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: marshal request: %v", ErrRequestFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %v", ErrRequestFailed, err)
	}
	return resp.StatusCode, raw, nil
}

// collaboratorError is the {error, details?} shape a non-2xx response carries.
type collaboratorError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func decodeCollaboratorMessage(raw []byte) string {
	var payload collaboratorError
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == "" {
		return ""
	}
	if payload.Details != "" {
		return payload.Error + ": " + payload.Details
	}
	return payload.Error
}
