// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP fetch client shared by the
// scraper collaborators: retry on 429, optional on-disk response
// cache, and a consistent User-Agent. The client is constructed and
// passed in explicitly; there is no ambient session state.
package httputil

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// Client fetches text and JSON documents for scrapers.
type Client struct {
	httpClient *http.Client
	userAgent  string
	cacheDir   string
	maxRetries int
}

// NewClient builds a fetch client from shared HTTP settings. A zero
// timeout defaults to 30 seconds; an empty cache dir disables caching.
func NewClient(cfg types.HTTPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		cacheDir:   cfg.CacheDir,
	}
}

// GetText fetches url as a string, consulting and populating the disk
// cache when one is configured.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	if cached, ok := c.readCache(url); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", url, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	c.writeCache(url, body)
	return string(body), nil
}

// GetJSON fetches url and decodes the response body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	text, err := c.GetText(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", url, err)
	}
	return nil
}

// cachePath keys cached responses by the SHA-1 of the URL.
func (c *Client) cachePath(url string) string {
	h := sha1.Sum([]byte(url))
	return filepath.Join(c.cacheDir, hex.EncodeToString(h[:])+".cache")
}

func (c *Client) readCache(url string) (string, bool) {
	if c.cacheDir == "" {
		return "", false
	}
	data, err := os.ReadFile(c.cachePath(url))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (c *Client) writeCache(url string, body []byte) {
	if c.cacheDir == "" {
		return
	}
	// Cache writes are best-effort; a failed write just means a
	// re-fetch next run.
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(c.cachePath(url), body, 0o644)
}
