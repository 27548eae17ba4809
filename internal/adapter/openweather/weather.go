package openweather

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

const maxForecastDays = 8

// Forecast returns up to eight daily summaries for a point.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]domain.DailyForecast, error) {
	params := coordParams(lat, lon)
	params.Set("exclude", "minutely,hourly")
	params.Set("units", "imperial")

	var resp oneCallResponse
	if err := c.call(ctx, "forecast", "/data/3.0/onecall", params, &resp); err != nil {
		return nil, err
	}

	days := resp.Daily
	if len(days) > maxForecastDays {
		days = days[:maxForecastDays]
	}

	out := make([]domain.DailyForecast, 0, len(days))
	for _, d := range days {
		f := domain.DailyForecast{
			Date:          time.Unix(d.Dt, 0).In(c.location).Format("01/02"),
			Summary:       d.Summary,
			High:          int(math.Round(d.Temp.Max)),
			Low:           int(math.Round(d.Temp.Min)),
			Pressure:      domain.ConvertPressure(d.Pressure),
			WindSpeed:     int(math.Round(d.WindSpeed)),
			WindDirection: domain.WindDirection(d.WindDeg),
		}
		if len(d.Weather) > 0 {
			f.Icon = d.Weather[0].Icon
			if f.Summary == "" {
				f.Summary = d.Weather[0].Description
			}
		}
		out = append(out, f)
	}
	return out, nil
}

// PointInTime returns the observed weather at a point and unix time.
func (c *Client) PointInTime(ctx context.Context, lat, lon float64, unix int64) (domain.Observation, error) {
	params := coordParams(lat, lon)
	params.Set("dt", strconv.FormatInt(unix, 10))
	params.Set("units", "imperial")

	var resp timeMachineResponse
	if err := c.call(ctx, "timemachine", "/data/3.0/onecall/timemachine", params, &resp); err != nil {
		return domain.Observation{}, err
	}
	if len(resp.Data) == 0 {
		return domain.Observation{}, fmt.Errorf("%w: timemachine returned no data for %d", domain.ErrExternalService, unix)
	}

	p := resp.Data[0]
	obs := domain.Observation{
		Pressure:      domain.ConvertPressure(p.Pressure),
		Temperature:   p.Temp,
		WindSpeed:     p.WindSpeed,
		WindDirection: domain.WindDirection(p.WindDeg),
	}
	if len(p.Weather) > 0 {
		obs.Description = p.Weather[0].Description
	}
	return obs, nil
}

func (c *Client) call(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	start := time.Now()
	err := c.get(ctx, path, params, out)
	c.metrics.WeatherAPIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Warn("weather request failed", "endpoint", endpoint, "error", err)
		return fmt.Errorf("%w: %s: %w", domain.ErrExternalService, endpoint, err)
	}
	c.metrics.WeatherRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

func coordParams(lat, lon float64) url.Values {
	return url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
}
