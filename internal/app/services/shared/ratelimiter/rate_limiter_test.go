package ratelimiter

import (
	"context"
	"testing"
	"time"

	"medtour-service/internal/app/contracts/mocks"
	"medtour-service/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResourceLimiterAllow(t *testing.T) {
	ctx := context.Background()
	// 30 seconds into a one minute window
	clk := clock.NewManaged(time.Unix(1_717_999_230, 0))
	expectedKey := "ratelimit:review-request-create:user_1:28633320"

	t.Run("allows requests within quota", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("IncrementWithTTL", ctx, expectedKey, 61*time.Second).Return(int64(3), nil)

		allowed, retryAfter, err := NewResourceLimiter(repo, clk, zap.NewNop()).
			Allow(ctx, "review-request-create", "user_1", 5, time.Minute)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 30*time.Second, retryAfter)
	})

	t.Run("rejects requests over quota", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("IncrementWithTTL", ctx, expectedKey, 61*time.Second).Return(int64(6), nil)

		allowed, retryAfter, err := NewResourceLimiter(repo, clk, zap.NewNop()).
			Allow(ctx, "review-request-create", "user_1", 5, time.Minute)

		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 30*time.Second, retryAfter)
	})

	t.Run("disabled quota always allows", func(t *testing.T) {
		repo := new(mocks.RedisRepository)

		allowed, _, err := NewResourceLimiter(repo, clk, zap.NewNop()).
			Allow(ctx, "review-request-create", "user_1", 0, time.Minute)

		require.NoError(t, err)
		assert.True(t, allowed)
		repo.AssertNotCalled(t, "IncrementWithTTL")
	})
}
