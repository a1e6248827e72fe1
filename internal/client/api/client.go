// Package api implements the HTTP client for the hosted auth backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	pkgapi "github.com/sakelabeler/sakelabeler/pkg/api"
)

// Client talks to the hosted auth endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates an auth client. apiKey is the project's public API key,
// sent with every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PasswordGrant exchanges an email/password pair for a token pair.
func (c *Client) PasswordGrant(ctx context.Context, email, password string) (*pkgapi.TokenResponse, error) {
	req := pkgapi.TokenRequest{Email: email, Password: password}
	var resp pkgapi.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", req, &resp); err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return &resp, nil
}

// Logout invalidates the session on the backend. Callers treat failures as
// non-fatal; the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// doRequest performs one HTTP round trip with JSON bodies.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp pkgapi.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			msg := errResp.Description
			if msg == "" {
				msg = errResp.Message
			}
			if msg == "" {
				msg = errResp.Error
			}
			if msg != "" {
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
			}
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
