package domain

import (
	"context"
	"math"
)

// hPaToInHg converts hectopascals to inches of mercury.
const hPaToInHg = 0.02952998057228486

// WindBucket is a cardinal wind direction.
type WindBucket string

const (
	WindNorth WindBucket = "N"
	WindEast  WindBucket = "E"
	WindSouth WindBucket = "S"
	WindWest  WindBucket = "W"
)

// Observation is the weather at a single instant, already converted to the
// units stored on a catch.
type Observation struct {
	Pressure      float64    `json:"pressure"` // inHg, 2 decimals
	Temperature   float64    `json:"temperature"`
	WindSpeed     float64    `json:"wind_speed"`
	WindDirection WindBucket `json:"wind_direction"`
	Description   string     `json:"description"`
}

// DailyForecast is one day of a lake forecast.
type DailyForecast struct {
	Date          string     `json:"date"` // MM/DD
	Summary       string     `json:"summary"`
	High          int        `json:"high"`
	Low           int        `json:"low"`
	Pressure      float64    `json:"pressure"`
	WindSpeed     int        `json:"wind_speed"`
	WindDirection WindBucket `json:"wind_direction"`
	Icon          string     `json:"icon"`
}

// Forecaster returns the multi-day forecast for a point.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) ([]DailyForecast, error)
}

// WeatherObserver returns the observed weather at a point and unix time.
type WeatherObserver interface {
	PointInTime(ctx context.Context, lat, lon float64, unix int64) (Observation, error)
}

// WindDirection buckets a heading in degrees into N, E, S or W.
func WindDirection(deg float64) WindBucket {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	switch {
	case d < 27:
		return WindNorth
	case d < 135:
		return WindEast
	case d < 230:
		return WindSouth
	case d < 315:
		return WindWest
	default:
		return WindNorth
	}
}

// ConvertPressure converts hPa to inHg rounded to two decimals.
func ConvertPressure(hPa float64) float64 {
	return math.Round(hPa*hPaToInHg*100) / 100
}
