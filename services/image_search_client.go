package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ImageSearchClient fills in a representative image for recipes the recipe
// API returned without one. Every failure is swallowed to an empty URL; a
// missing picture is never worth surfacing an error for.
type ImageSearchClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewImageSearchClient(baseURL, apiKey string) *ImageSearchClient {
	return &ImageSearchClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// FirstImageURL returns the first hit for query, or "" on any failure.
func (c *ImageSearchClient) FirstImageURL(ctx context.Context, query string) string {
	q := url.Values{"key": {c.APIKey}, "q": {query}, "per_page": {"3"}}
	u := strings.TrimRight(c.BaseURL, "/") + "/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Printf("image search: create request: %v", err)
		return ""
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("image search: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("image search: status %d", resp.StatusCode)
		return ""
	}

	var parsed struct {
		Hits []struct {
			WebformatURL string `json:"webformatURL"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("image search: decode: %v", err)
		return ""
	}
	if len(parsed.Hits) == 0 {
		return ""
	}
	return parsed.Hits[0].WebformatURL
}
