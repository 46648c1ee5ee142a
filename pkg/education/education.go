// Package education fetches educational content from the content API.
package education

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Article is a single educational article
type Article struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Video is a single educational video
type Video struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds"`
}

// InteractiveModule is a single interactive learning module
type InteractiveModule struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Topic string `json:"topic"`
}

// Client fetches educational content over HTTP
type Client struct {
	baseURL    string
	headers    http.Header
	httpClient *http.Client
}

// NewClient creates a new education content client. The given headers are
// attached to every request.
func NewClient(baseURL string, headers http.Header) *Client {
	return &Client{
		baseURL: baseURL,
		headers: headers,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Articles fetches the list of educational articles
func (c *Client) Articles(ctx context.Context) ([]Article, error) {
	var articles []Article
	if err := c.get(ctx, "/api/articles", &articles); err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}
	return articles, nil
}

// Videos fetches the list of educational videos
func (c *Client) Videos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.get(ctx, "/api/videos", &videos); err != nil {
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}
	return videos, nil
}

// InteractiveModules fetches the list of interactive learning modules
func (c *Client) InteractiveModules(ctx context.Context) ([]InteractiveModule, error) {
	var modules []InteractiveModule
	if err := c.get(ctx, "/api/modules", &modules); err != nil {
		return nil, fmt.Errorf("failed to fetch interactive modules: %w", err)
	}
	return modules, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
