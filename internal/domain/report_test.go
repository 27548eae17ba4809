package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarometricBucket(t *testing.T) {
	tests := []struct {
		inHg     float64
		expected string
	}{
		{30.5, BarometricHigh},
		{31.02, BarometricHigh},
		{30.49, BarometricLow},
		{30.41, BarometricLow},
		{30.4, BarometricMedium},
		{30.0, BarometricMedium},
		{29.7, BarometricMedium},
		{29.69, BarometricLow},
		{29.6, BarometricLow},
		{28.1, BarometricLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BarometricBucket(tt.inHg), "p=%v", tt.inHg)
	}
}

func TestPrincipal_CanAccess(t *testing.T) {
	owner := Principal{AnglerID: 4}
	admin := Principal{AnglerID: 1, Admin: true}

	assert.True(t, owner.CanAccess(4))
	assert.False(t, owner.CanAccess(5))
	assert.True(t, admin.CanAccess(5))
}
