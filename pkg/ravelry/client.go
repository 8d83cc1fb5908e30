// Package ravelry is a client for the Ravelry fiber-arts API.
//
// All endpoints require HTTP basic auth credentials from
// https://www.ravelry.com/pro/developer. Responses are cached through a
// pluggable byte cache and transient failures are retried with exponential
// backoff.
package ravelry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fiberarts/fiberfind/pkg/cache"
	"github.com/fiberarts/fiberfind/pkg/httputil"
)

const (
	// DefaultBaseURL is the production Ravelry API endpoint.
	DefaultBaseURL = "https://api.ravelry.com"

	// DefaultCacheTTL keeps API responses for a day; pattern and yarn
	// catalogs change slowly.
	DefaultCacheTTL = 24 * time.Hour

	httpTimeout = 15 * time.Second

	// cachePrefix namespaces this client's keys in a shared cache.
	cachePrefix = "ravelry:"
)

var (
	// ErrNotFound is returned when a pattern, yarn, or shop doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned when the API rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized (check Ravelry API credentials)")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrMalformed is returned when a response decodes but is missing
	// required fields. Surfaced rather than silently defaulted.
	ErrMalformed = errors.New("malformed API response")
)

// Config holds the settings needed to construct a [Client].
type Config struct {
	// Username and Password are the basic-auth API credentials.
	Username string
	Password string

	// BaseURL overrides the API endpoint, used by tests. Empty selects
	// [DefaultBaseURL].
	BaseURL string

	// Cache stores API responses. When nil, a file cache is created under
	// CacheDir; with no CacheDir either, caching is disabled.
	Cache    cache.Cache
	CacheDir string
	CacheTTL time.Duration

	// Refresh bypasses cache reads for every request.
	Refresh bool
}

// Client talks to the Ravelry API with caching and retries.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
	user    string
	pass    string
	refresh bool
}

// NewClient creates a Ravelry API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: missing credentials", ErrUnauthorized)
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	store := cfg.Cache
	if store == nil {
		if cfg.CacheDir != "" {
			var err error
			store, err = cache.NewFileCache(cfg.CacheDir)
			if err != nil {
				return nil, err
			}
		} else {
			store = cache.NewNullCache()
		}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   store,
		ttl:     ttl,
		baseURL: baseURL,
		user:    cfg.Username,
		pass:    cfg.Password,
		refresh: cfg.Refresh,
	}, nil
}

// get fetches url into v, consulting the response cache first.
func (c *Client) get(ctx context.Context, url string, v any) error {
	key := cachePrefix + url
	if !c.refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if err := json.Unmarshal(data, v); err == nil {
				return nil
			}
			_ = c.cache.Delete(ctx, key)
		}
	}
	if err := httputil.RetryWithBackoff(ctx, func() error {
		return c.doRequest(ctx, url, v)
	}); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.user, c.pass)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func (c *Client) searchURL(path, query string, page int) string {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	q.Set("page", fmt.Sprintf("%d", page))
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, q.Encode())
}
