package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(limit int) *Config {
	return &Config{
		Enabled: true,
		Limit:   limit,
		Window:  time.Minute,
	}
}

func TestLimiter_AllowsWithinLimit(t *testing.T) {
	limiter := NewLimiter(testConfig(3))
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3, info.Limit)
	}
}

func TestLimiter_BlocksOverLimit(t *testing.T) {
	limiter := NewLimiter(testConfig(2))
	defer limiter.Stop()

	limiter.Allow("1.2.3.4")
	limiter.Allow("1.2.3.4")

	allowed, info := limiter.Allow("1.2.3.4")
	require.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig(1))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4")
	require.True(t, allowed)

	allowed, _ = limiter.Allow("1.2.3.4")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("5.6.7.8")
	assert.True(t, allowed)
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, Limit: 1, Window: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := limiter.Allow("1.2.3.4")
		assert.True(t, allowed)
	}
}
