// Package client implements the thin HTTP clients for the auth and admin
// endpoints. All business logic lives remotely; these clients serialize the
// action envelopes, manage the session store, and translate failures into
// the error kinds callers present to users.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds every remote call. The remote contract specifies no
// timeout; without one a dead endpoint would hang the caller forever.
const DefaultTimeout = 30 * time.Second

// HeaderAuthToken is the bearer credential header for admin calls.
const HeaderAuthToken = "X-Auth-Token"

// Config holds endpoint locations and transport settings shared by the auth
// and admin clients.
type Config struct {
	// AuthURL and AdminURL are the full endpoint URLs (POST-only).
	AuthURL  string
	AdminURL string

	// Timeout applies when HTTPClient is nil. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the transport entirely (useful for tests).
	HTTPClient *http.Client

	// Logger receives debug records for swallowed best-effort failures.
	// Nil means no logging.
	Logger *slog.Logger
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// errorBody is the wire shape of endpoint failures: a flat error string.
type errorBody struct {
	Error string `json:"error"`
}

// postJSON sends an action envelope and decodes the response into result.
// fallback becomes the RemoteError message when the response body carries no
// error string. headers are attached verbatim (even empty values).
func postJSON(ctx context.Context, httpClient *http.Client, url string, headers map[string]string, body, result any, fallback string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Op: fallback, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return &TransportError{Op: fallback, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: fallback, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: fallback, Err: err}
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		message := fallback
		if err := json.Unmarshal(respBody, &eb); err == nil && eb.Error != "" {
			message = eb.Error
		}
		return &RemoteError{Status: resp.StatusCode, Message: message}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &TransportError{Op: fallback, Err: err}
		}
	}
	return nil
}
