package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowRequestMinuteLimit(t *testing.T) {
	rl := NewRateLimiter(3, 0, 0, true)

	assert.True(t, rl.AllowRequest())
	assert.True(t, rl.AllowRequest())
	assert.True(t, rl.AllowRequest())
	assert.False(t, rl.AllowRequest())
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(1, 1, 1, false)

	for i := 0; i < 100; i++ {
		assert.True(t, rl.AllowRequest())
	}
}

func TestReset(t *testing.T) {
	rl := NewRateLimiter(1, 0, 0, true)

	assert.True(t, rl.AllowRequest())
	assert.False(t, rl.AllowRequest())

	rl.Reset()
	assert.True(t, rl.AllowRequest())
}

func TestGetStats(t *testing.T) {
	rl := NewRateLimiter(10, 100, 500, true)

	rl.AllowRequest()
	rl.AllowRequest()

	stats := rl.GetStats()
	assert.True(t, stats.Enabled)
	assert.Equal(t, 2, stats.RequestsLastMinute)
	assert.Equal(t, 10, stats.LimitPerMinute)
	assert.Equal(t, 100, stats.LimitPerHour)
	assert.Equal(t, 500, stats.LimitPerDay)
}
