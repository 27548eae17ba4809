package openweather

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

const providerName = "openweather"

// Resolve looks up a US town and state code and returns the first match.
func (c *Client) Resolve(ctx context.Context, town, state string) (domain.Coordinates, error) {
	town = strings.TrimSpace(town)
	state = strings.ToUpper(strings.TrimSpace(state))
	if town == "" || len(state) != 2 {
		return domain.Coordinates{}, fmt.Errorf("%w: town and 2-letter state are required", domain.ErrInvalidInput)
	}

	params := url.Values{
		"q":     {fmt.Sprintf("%s,%s,US", town, state)},
		"limit": {"5"},
	}

	start := time.Now()
	var results []geoResult
	err := c.get(ctx, "/geo/1.0/direct", params, &results)
	c.metrics.GeocodeAPIDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(providerName, "error").Inc()
		c.logger.Warn("geocode failed", "town", town, "state", state, "error", err)
		return domain.Coordinates{}, fmt.Errorf("%w: geocode %s, %s: %w", domain.ErrExternalService, town, state, err)
	}

	if len(results) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues(providerName, "empty").Inc()
		return domain.Coordinates{}, fmt.Errorf("%w: %s, %s", domain.ErrLocationNotFound, town, state)
	}

	c.metrics.GeocodeRequests.WithLabelValues(providerName, "success").Inc()
	return domain.Coordinates{Lat: results[0].Lat, Lon: results[0].Lon}, nil
}
