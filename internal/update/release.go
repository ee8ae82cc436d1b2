package update

import (
	"encoding/json"
	"fmt"
	"time"
)

// Asset mirrors one entry of a GitHub release's assets array.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release mirrors the subset of a GitHub release object this package uses,
// matching get_available_versions' richer dict over check's terser tuple
// (SPEC_FULL.md, "Supplemented features").
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	Assets      []Asset   `json:"assets"`
}

// Version strips the release's tag_name's leading "v" for comparison.
func (r Release) Version() string {
	return stripV(r.TagName)
}

func stripV(s string) string {
	if len(s) > 0 && (s[0] == 'v' || s[0] == 'V') {
		return s[1:]
	}
	return s
}

func fetchJSON(client httpClient, url string, out interface{}) error {
	body, status, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("update: request %s: %w", url, err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("update: %s returned status %d", url, status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("update: decoding response from %s: %w", url, err)
	}
	return nil
}
