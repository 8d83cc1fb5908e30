package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fiberarts/fiberfind/pkg/geo"
	"github.com/fiberarts/fiberfind/pkg/httputil"
)

// DefaultBaseURL is the public geocode.maps.co search endpoint.
const DefaultBaseURL = "https://geocode.maps.co/search"

// HTTPClient is the subset of [http.Client] MapsCo needs. Tests substitute
// their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// MapsCo geocodes cities via the geocode.maps.co API. The free tier allows
// one request per second, which is plenty here since each command geocodes
// a single city.
type MapsCo struct {
	client  HTTPClient
	baseURL string
	apiKey  string
}

// NewMapsCo returns a provider talking to the public endpoint.
func NewMapsCo(apiKey string) *MapsCo {
	return &MapsCo{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}
}

// NewMapsCoWithClient returns a provider with a custom HTTP client and base
// URL, for tests.
func NewMapsCoWithClient(client HTTPClient, baseURL, apiKey string) *MapsCo {
	return &MapsCo{client: client, baseURL: baseURL, apiKey: apiKey}
}

// mapsCoResult is one entry of the response array. Coordinates arrive as
// strings.
type mapsCoResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a city to the first coordinate the service returns.
// Transient failures (network errors, 5xx, 429) are retried with backoff.
func (m *MapsCo) Geocode(ctx context.Context, city string) (geo.Point, error) {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return geo.Point{}, fmt.Errorf("%w: empty city name", ErrNoMatch)
	}

	q := url.Values{}
	q.Set("city", city)
	if m.apiKey != "" {
		q.Set("api_key", m.apiKey)
	}
	reqURL := m.baseURL + "?" + q.Encode()

	var results []mapsCoResult
	err := httputil.RetryWithBackoff(ctx, func() error {
		return m.fetch(ctx, reqURL, &results)
	})
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode %q: %w", city, err)
	}
	if len(results) == 0 {
		return geo.Point{}, fmt.Errorf("%w: %q", ErrNoMatch, city)
	}

	p, err := parsePoint(results[0])
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode %q: %w", city, err)
	}
	return p, nil
}

func (m *MapsCo) fetch(ctx context.Context, reqURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: fmt.Errorf("geocoding service returned %s", resp.Status)}
	default:
		return fmt.Errorf("%w: status %s", ErrBadResponse, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func parsePoint(r mapsCoResult) (geo.Point, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("%w: latitude %q", ErrBadResponse, r.Lat)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("%w: longitude %q", ErrBadResponse, r.Lon)
	}
	p := geo.Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return geo.Point{}, fmt.Errorf("%w: coordinate out of range (%f, %f)", ErrBadResponse, lat, lon)
	}
	return p, nil
}
