// Package authsdk is a small client for the bridge's session endpoints.
// It obtains the credential pair that authenticated RPC calls present; the
// RPC calls themselves go through the generated client.
package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinel errors for the failures callers branch on.
var (
	// ErrNameTaken is returned by Signup when the name is already registered.
	ErrNameTaken = errors.New("authsdk: name is already taken")

	// ErrInvalidCredentials is returned by Signin for an unknown name or a
	// wrong password; the server does not distinguish the two.
	ErrInvalidCredentials = errors.New("authsdk: invalid credentials")

	// ErrForbidden is returned when a session credential is missing, unknown
	// or expired.
	ErrForbidden = errors.New("authsdk: missing or invalid session credential")
)

// SDKClient talks to one bridge server.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the given base URL, e.g.
// "http://localhost:8080".
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Signup registers a new account and returns its first session.
func (c *SDKClient) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/v0/signup", SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
}

// Signin authenticates an existing account and returns a fresh session.
// Sessions minted earlier keep working until they expire or log out.
func (c *SDKClient) Signin(ctx context.Context, name, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/v0/signin", SigninRequest{
		Name:     name,
		Password: password,
	})
}

func (c *SDKClient) authenticate(ctx context.Context, path string, payload any) (*Session, error) {
	var out AuthResponse
	if err := c.post(ctx, path, payload, "", &out); err != nil {
		return nil, err
	}

	return &Session{
		client:       c,
		UserID:       out.ID,
		Name:         out.Name,
		Email:        out.Email,
		tempPassword: out.TempPassword,
	}, nil
}

// post sends a JSON request and decodes a 2xx response into out. A non-empty
// authorization string is attached as the Authorization header.
func (c *SDKClient) post(ctx context.Context, path string, payload any, authorization string, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("authsdk: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("authsdk: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("authsdk: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("authsdk: decode response: %w", err)
		}
		return nil
	}

	switch resp.StatusCode {
	case http.StatusConflict:
		return ErrNameTaken
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusForbidden:
		return ErrForbidden
	}

	var apiErr ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Code != "" {
		return fmt.Errorf("authsdk: %s %s: %s: %s", http.MethodPost, path, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("authsdk: %s %s: unexpected status %d", http.MethodPost, path, resp.StatusCode)
}
