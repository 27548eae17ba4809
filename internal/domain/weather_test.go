package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindDirection(t *testing.T) {
	tests := []struct {
		name     string
		deg      float64
		expected WindBucket
	}{
		{"zero", 0, WindNorth},
		{"just below east", 26.99, WindNorth},
		{"east lower edge", 27, WindEast},
		{"due east", 90, WindEast},
		{"just below south", 134.9, WindEast},
		{"south lower edge", 135, WindSouth},
		{"due south", 180, WindSouth},
		{"just below west", 229.5, WindSouth},
		{"west lower edge", 230, WindWest},
		{"due west", 270, WindWest},
		{"just below north", 314, WindWest},
		{"north upper band", 315, WindNorth},
		{"almost full circle", 359.9, WindNorth},
		{"full circle", 360, WindNorth},
		{"wraps past 360", 450, WindEast},
		{"negative heading", -90, WindWest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WindDirection(tt.deg))
		})
	}
}

func TestConvertPressure(t *testing.T) {
	tests := []struct {
		hPa      float64
		expected float64
	}{
		{1013.25, 29.92},
		{1000, 29.53},
		{1033.6, 30.52},
		{1005.9, 29.7},
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, ConvertPressure(tt.hPa), 1e-9, "hPa=%v", tt.hPa)
	}
}
