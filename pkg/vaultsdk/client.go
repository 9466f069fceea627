package vaultsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to a credvault server. After Login the session cookie is
// kept in the client's cookie jar and sent with every request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with its own cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do sends a request with an optional JSON body.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// call sends a request and decodes a JSON response into out (if non-nil).
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := parseErrorResponse(resp, raw); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Login starts a session. code may be empty for users without 2FA; a user
// with 2FA gets an *APIError with Require2FA set.
func (c *Client) Login(ctx context.Context, username, password, code string) error {
	var out LoginResponse
	return c.call(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Username:      username,
		Password:      password,
		TwoFactorCode: code,
	}, &out)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
}

func (c *Client) SetupTOTP(ctx context.Context) (TOTPSetupResponse, error) {
	var out TOTPSetupResponse
	err := c.call(ctx, http.MethodPost, "/v1/auth/2fa/setup", nil, &out)
	return out, err
}

func (c *Client) VerifyTOTP(ctx context.Context, code string) error {
	return c.call(ctx, http.MethodPost, "/v1/auth/2fa/verify", TOTPCodeRequest{Token: code}, nil)
}

func (c *Client) DisableTOTP(ctx context.Context, code string) error {
	return c.call(ctx, http.MethodPost, "/v1/auth/2fa/disable", TOTPCodeRequest{Token: code}, nil)
}

// Livez calls the liveness probe. It needs no session.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.call(ctx, http.MethodGet, "/livez", nil, &out)
	return out, err
}

func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.call(ctx, http.MethodGet, "/readyz", nil, &out)
	return out, err
}
