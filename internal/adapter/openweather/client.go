// Package openweather implements geocoding and weather lookups against the
// OpenWeatherMap geocoding and One Call 3.0 APIs.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
)

const defaultBaseURL = "https://api.openweathermap.org"

// Client implements domain.Geocoder, domain.Forecaster and
// domain.WeatherObserver.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	location   *time.Location
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client. Forecast dates are rendered in
// loc.
func NewClient(apiKey string, timeout time.Duration, loc *time.Location, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  defaultBaseURL,
		location: loc,
		metrics:  metrics,
		logger:   logger,
	}
}

// get issues a GET against path with params plus the API key and decodes a
// 200 response into out. Any other status is returned as statusError.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("openweather API error: status %d: %s", e.code, e.body)
}

// OpenWeatherMap response types.

type geoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type oneCallResponse struct {
	Daily []daily `json:"daily"`
}

type daily struct {
	Dt      int64  `json:"dt"`
	Summary string `json:"summary"`
	Temp    struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Pressure  float64     `json:"pressure"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   float64     `json:"wind_deg"`
	Weather   []condition `json:"weather"`
}

type timeMachineResponse struct {
	Data []point `json:"data"`
}

type point struct {
	Dt        int64       `json:"dt"`
	Temp      float64     `json:"temp"`
	Pressure  float64     `json:"pressure"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   float64     `json:"wind_deg"`
	Weather   []condition `json:"weather"`
}
