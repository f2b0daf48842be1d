package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketLimiter_AllowDrainsBurst(t *testing.T) {
	// 60 req/min = 1 token/sec, burst of 3 available immediately
	limiter := NewTokenBucketLimiter("openai", 60, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(), "burst token %d should be available", i)
	}

	// Bucket drained, next request must be refused
	assert.False(t, limiter.Allow())
}

func TestTokenBucketLimiter_Limit(t *testing.T) {
	limiter := NewTokenBucketLimiter("openai", 500, 50)
	assert.InDelta(t, 500.0, limiter.Limit(), 0.01)
}

func TestTokenBucketLimiter_DefaultBurst(t *testing.T) {
	limiter := NewTokenBucketLimiter("openai", 500, 0)
	// Default burst is 10% of the per-minute rate
	assert.Equal(t, 50, limiter.burst)

	limiter = NewTokenBucketLimiter("openai", 5, 0)
	assert.Equal(t, 1, limiter.burst)
}

func TestTokenBucketLimiter_WaitCancelled(t *testing.T) {
	// Very slow refill so Wait has to block
	limiter := NewTokenBucketLimiter("openai", 1, 1)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNoOpLimiter(t *testing.T) {
	limiter := NewNoOpLimiter()

	assert.True(t, limiter.Allow())
	assert.NoError(t, limiter.Wait(context.Background()))
	assert.Equal(t, float64(-1), limiter.Limit())
}
