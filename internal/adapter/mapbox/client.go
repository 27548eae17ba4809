// Package mapbox resolves US towns to coordinates with the Mapbox Geocoding API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
)

const providerName = "mapbox"

// Client implements domain.Geocoder using the Mapbox Geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/geocoding/v5/mapbox.places",
		metrics: metrics,
		logger:  logger,
	}
}

// Resolve converts a US town and state code to coordinates.
func (c *Client) Resolve(ctx context.Context, town, state string) (domain.Coordinates, error) {
	town = strings.TrimSpace(town)
	state = strings.ToUpper(strings.TrimSpace(state))
	if town == "" || len(state) != 2 {
		return domain.Coordinates{}, fmt.Errorf("%w: town and 2-letter state are required", domain.ErrInvalidInput)
	}

	u := fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(town+", "+state))
	params := url.Values{
		"access_token": {c.token},
		"country":      {"us"},
		"limit":        {"1"},
		"types":        {"place,locality"},
	}

	start := time.Now()
	coords, found, err := c.doRequest(ctx, u+"?"+params.Encode())
	c.metrics.GeocodeAPIDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.GeocodeRequests.WithLabelValues(providerName, "error").Inc()
		c.logger.Warn("mapbox geocode failed", "town", town, "state", state, "error", err)
		return domain.Coordinates{}, fmt.Errorf("%w: geocode %s, %s: %w", domain.ErrExternalService, town, state, err)
	case !found:
		c.metrics.GeocodeRequests.WithLabelValues(providerName, "empty").Inc()
		return domain.Coordinates{}, fmt.Errorf("%w: %s, %s", domain.ErrLocationNotFound, town, state)
	}

	c.metrics.GeocodeRequests.WithLabelValues(providerName, "success").Inc()
	return coords, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.Coordinates, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("forward geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Coordinates{}, false, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode response: %w", err)
	}

	for _, f := range mapboxResp.Features {
		if len(f.Center) == 2 {
			return domain.Coordinates{Lon: f.Center[0], Lat: f.Center[1]}, true, nil
		}
	}
	return domain.Coordinates{}, false, nil
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
	Relevance float64   `json:"relevance"`
}
