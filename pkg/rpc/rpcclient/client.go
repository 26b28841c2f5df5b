// Package rpcclient is the runtime half of the generated client. Generated
// stub files import exactly two symbols from it, AuthParam and Call, so a
// regenerated stub never forces a change here.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// AuthParam carries the credential pair for authenticated calls. The caller
// owns it; nothing in this package caches credentials between calls.
type AuthParam struct {
	UserID       string
	TempPassword string
}

var (
	configMu   sync.RWMutex
	baseURL    = "http://localhost:8080"
	httpClient = &http.Client{Timeout: 10 * time.Second}
)

// Configure sets the server base URL and, optionally, the HTTP client used
// for every subsequent call. A nil client keeps the current one. Call it once
// at startup before issuing calls.
func Configure(url string, client *http.Client) {
	configMu.Lock()
	defer configMu.Unlock()

	baseURL = url
	if client != nil {
		httpClient = client
	}
}

func config() (string, *http.Client) {
	configMu.RLock()
	defer configMu.RUnlock()
	return baseURL, httpClient
}

// Call issues one RPC request: POST the JSON body to
// {base}/rpc/{namespace}/{name}/v{version}, attach the Authorization header
// when auth is non-nil, decode a 200 response into R. Non-200 responses
// become an *HTTPError. There are no retries; each invocation is a single
// HTTP exchange.
func Call[B, R any](ctx context.Context, auth *AuthParam, namespace, name string, version int, body B) (R, error) {
	var zero R

	base, client := config()
	url := fmt.Sprintf("%s/rpc/%s/%s/v%d", base, namespace, name, version)

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("rpcclient: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return zero, fmt.Errorf("rpcclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth != nil {
		req.Header.Set("Authorization", auth.UserID+":"+auth.TempPassword)
	}

	resp, err := client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("rpcclient: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return zero, newHTTPError(req, resp)
	}

	var out R
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("rpcclient: decode response: %w", err)
	}
	return out, nil
}
