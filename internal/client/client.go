// Package client is a thin HTTP client for the AuthKeeper API, used by the
// terminal frontend.
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
)

// AuthResponse mirrors the body returned by /auth/signin and /auth/signup.
type AuthResponse struct {
	Token  string `json:"token"`
	AuthID string `json:"authId"`
}

// CheckResponse mirrors the body returned by /jwt/check.
type CheckResponse struct {
	Valid     bool   `json:"valid"`
	ExpiresIn int64  `json:"expiresIn"`
	Message   string `json:"message"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.postCredentials(ctx, "/auth/signup", email, password)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.postCredentials(ctx, "/auth/signin", email, password)
}

func (c *Client) postCredentials(ctx context.Context, path, email, password string) (*AuthResponse, error) {

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	out := &AuthResponse{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("unexpected response body: %w", err)
	}

	return out, nil
}

// Check reports the freshness of a previously issued token. Both the valid
// and the expired outcome decode into a CheckResponse; transport failures
// and unexpected statuses surface as errors.
func (c *Client) Check(ctx context.Context, token string) (*CheckResponse, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jwt/check", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnauthorized {
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	out := &CheckResponse{}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("unexpected response body: %w", err)
	}

	return out, nil
}
