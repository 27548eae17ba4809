//go:build openweather

package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real OpenWeatherMap API and require OPENWEATHER_API_KEY
// with a One Call 3.0 subscription.
// Run with: go test -tags=openweather ./internal/adapter/openweather/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	key := os.Getenv("OPENWEATHER_API_KEY")
	if key == "" {
		t.Fatal("OPENWEATHER_API_KEY must be set to run smoke tests")
	}
	return &Client{
		apiKey:     key,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		location:   time.Local,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_Resolve(t *testing.T) {
	c := smokeClient(t)

	coords, err := c.Resolve(context.Background(), "Brainerd", "MN")
	require.NoError(t, err)

	assert.InDelta(t, 46.36, coords.Lat, 0.2)
	assert.InDelta(t, -94.20, coords.Lon, 0.2)
}

func TestSmoke_Forecast(t *testing.T) {
	c := smokeClient(t)

	forecast, err := c.Forecast(context.Background(), 46.358, -94.2008)
	require.NoError(t, err)

	require.NotEmpty(t, forecast)
	assert.LessOrEqual(t, len(forecast), 8)
	assert.NotEmpty(t, forecast[0].WindDirection)
}

func TestSmoke_PointInTime(t *testing.T) {
	c := smokeClient(t)

	yesterday := time.Now().Add(-24 * time.Hour).Unix()
	obs, err := c.PointInTime(context.Background(), 46.358, -94.2008, yesterday)
	require.NoError(t, err)

	assert.Greater(t, obs.Pressure, 25.0)
	assert.Less(t, obs.Pressure, 33.0)
	assert.NotEmpty(t, obs.Description)
}
