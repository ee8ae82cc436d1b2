package adapters

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// RealHTTPClient implements interfaces.HTTPClient against net/http, used by
// the Update Manager to reach the release index.
type RealHTTPClient struct {
	client *http.Client
}

// NewRealHTTPClient creates a client with a bounded timeout; the release
// index and asset downloads are both one-shot GETs, never long-lived.
func NewRealHTTPClient(timeout time.Duration) *RealHTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RealHTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get fetches url and returns the response body, status code, and any
// transport-level error.
func (c *RealHTTPClient) Get(url string) ([]byte, int, error) {
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, 0, fmt.Errorf("http get %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("http get %s: reading body: %w", url, err)
	}
	return data, resp.StatusCode, nil
}
