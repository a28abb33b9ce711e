package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), tt.in.String())
	}
}

func TestSpriteAlpha(t *testing.T) {
	assert.InDelta(t, 1, dotAlpha(0.5, 0.5), 1e-9)
	assert.Zero(t, dotAlpha(0, 0.5))
	assert.Less(t, dotAlpha(0.75, 0.5), dotAlpha(0.6, 0.5))

	assert.Zero(t, rectAlpha(0, 0.5))
	assert.InDelta(t, 1, rectAlpha(0.5, 0.5), 1e-9)

	assert.Greater(t, fadeAlpha(0, 0.05), fadeAlpha(0, 0.95))
}

func TestFrameStrip(t *testing.T) {
	budget := 16 * time.Millisecond
	samples := []time.Duration{0, 8 * time.Millisecond, budget, 20 * time.Millisecond}

	assert.Equal(t, " -#!", frameStrip(samples, budget))
	assert.Equal(t, "", frameStrip(nil, budget))
	assert.Equal(t, 20*time.Millisecond, peak(samples))
	assert.Zero(t, peak(nil))
}
