// Package geo resolves coordinates to short human-readable place names via
// the Nominatim reverse geocoding API.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const nominatimBase = "https://nominatim.openstreetmap.org/reverse"

// Nominatim's usage policy allows at most one request per second; the
// spacing is enforced across all clients in the process.
const minRequestInterval = 1100 * time.Millisecond

var (
	throttleMu  sync.Mutex
	lastRequest time.Time
)

// throttle blocks until the process-wide request spacing has elapsed.
func throttle(ctx context.Context) error {
	throttleMu.Lock()
	defer throttleMu.Unlock()

	if wait := minRequestInterval - time.Since(lastRequest); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	lastRequest = time.Now()
	return nil
}

// Client performs reverse geocoding lookups.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a geocoding client against the public Nominatim API.
func NewClient() *Client {
	return &Client{
		baseURL: nominatimBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBase creates a client against a custom endpoint, used in
// tests.
func NewClientWithBase(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// nominatimResponse is the subset of the jsonv2 reverse result we read.
type nominatimResponse struct {
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
}

// ReverseGeocode returns a short place name for the coordinate, or "" when
// the lookup fails or yields nothing usable. Lookup failures are not errors
// to callers; the location text is optional decoration.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if err := throttle(ctx); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("addressdetails", "1")
	q.Set("accept-language", "ja,en")
	q.Set("zoom", "16")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "sakelabeler/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var data nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode geocode response: %w", err)
	}

	return formatAddress(data), nil
}

// formatAddress reduces a reverse geocode result to "locality, region".
func formatAddress(data nominatimResponse) string {
	addr := data.Address
	if len(addr) == 0 {
		return shortDisplayName(data.DisplayName)
	}

	locality := firstOf(addr, "city", "town", "village", "city_district", "suburb", "municipality")
	region := firstOf(addr, "county", "state", "country")

	switch {
	case locality != "" && region != "" && locality != region:
		return locality + ", " + region
	case locality != "":
		return locality
	case region != "":
		return region
	}
	return shortDisplayName(data.DisplayName)
}

func firstOf(addr map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := addr[k]; v != "" {
			return v
		}
	}
	return ""
}

// shortDisplayName keeps the first two comma-separated parts of a full
// display name.
func shortDisplayName(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(name, ",")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
