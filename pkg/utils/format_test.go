package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{0, "00:00:00"},
		{999, "00:00:00"},
		{1000, "00:00:01"},
		{61_000, "00:01:01"},
		{3_600_000, "01:00:00"},
		{5_000, "00:00:05"},
		{(99*3600 + 59*60 + 59) * 1000, "99:59:59"},
		{100 * 3600 * 1000, "100:00:00"},
		{-500, "00:00:00"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, FormatDuration(tc.ms), "format %d", tc.ms)
	}
}

func TestRoundToTwoDecimals(t *testing.T) {
	assert.Equal(t, 33.33, RoundToTwoDecimals(100.0/3.0))
	assert.Equal(t, 50.0, RoundToTwoDecimals(50))
}

func TestShare(t *testing.T) {
	assert.Equal(t, 25.0, Share(1, 4))
	assert.Equal(t, 66.67, Share(2, 3))
	assert.Equal(t, 0.0, Share(5, 0))
}
