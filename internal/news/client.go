// Package news is the client for the external news-search API.
//
// The API shape is newsapi.org's /v2/everything endpoint:
//
//	GET {base}/everything?q={query}&sortBy=publishedAt&apiKey={key}
//	→ {"status":"ok","articles":[...]}
//	→ {"status":"error","code":"apiKeyInvalid","message":"..."}
//
// The client is deliberately thin: it sends the query, decodes the envelope,
// and translates a non-ok status into apperror.ErrExternal with the provider's
// message passed through unchanged. Normalizing article fields for the rest of
// the app is the search service's job, not this package's.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sakif/news-library/internal/apperror"
	"github.com/sakif/news-library/internal/model"
)

// DefaultBaseURL is the production news API root.
const DefaultBaseURL = "https://newsapi.org/v2"

// Client calls the news-search API. Construct with New; the zero value is not
// usable.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given API root. Pass "" for the production
// endpoint. Tests pass an httptest.Server URL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// searchResponse is the API's response envelope. On failure, status is
// "error" and message explains why (invalid key, rate limited, ...).
type searchResponse struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Articles []model.Article `json:"articles"`
}

// Search runs a query with the given per-user API key and returns the raw
// article snapshots.
//
// Error taxonomy:
//   - transport/decoding failures → plain wrapped errors (the collaborator
//     was unreachable)
//   - HTTP 2xx with status "error" → apperror.ErrExternal carrying the
//     provider's message verbatim
func (c *Client) Search(ctx context.Context, apiKey, query string) ([]model.Article, error) {
	endpoint := fmt.Sprintf("%s/everything?q=%s&sortBy=publishedAt&apiKey=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("news: building search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news: calling search API: %w", err)
	}
	defer resp.Body.Close()

	// The API reports failures in the JSON envelope (with a non-2xx status
	// code for some of them), so decode first and let the envelope decide.
	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("news: decoding search response (HTTP %d): %w", resp.StatusCode, err)
	}

	if result.Status != "ok" {
		message := result.Message
		if message == "" {
			message = fmt.Sprintf("news search failed with HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("news: %w", apperror.External(message))
	}

	return result.Articles, nil
}
