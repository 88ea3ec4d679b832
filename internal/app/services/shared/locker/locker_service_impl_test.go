package locker

import (
	"context"
	"errors"
	"testing"
	"time"

	"medtour-service/internal/app/contracts/mocks"
	"medtour-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTryLock(t *testing.T) {
	ctx := context.Background()
	key := "review_request:approve:abc"

	t.Run("acquires a free lock", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("TrySetNX", ctx, key, mock.AnythingOfType("string"), 30*time.Second).Return(true, nil)

		acquired, value, err := newLockService(repo, zap.NewNop()).TryLock(ctx, key, 30*time.Second)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, value)
		repo.AssertExpectations(t)
	})

	t.Run("reports a held lock without error", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("TrySetNX", ctx, key, mock.AnythingOfType("string"), 30*time.Second).Return(false, nil)

		acquired, value, err := newLockService(repo, zap.NewNop()).TryLock(ctx, key, 30*time.Second)

		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, value)
	})

	t.Run("propagates redis failures", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("TrySetNX", ctx, key, mock.AnythingOfType("string"), 30*time.Second).
			Return(false, exceptions.ErrRedisSetNX(errors.New("connection refused")))

		acquired, _, err := newLockService(repo, zap.NewNop()).TryLock(ctx, key, 30*time.Second)

		assert.Error(t, err)
		assert.False(t, acquired)
	})
}

func TestUnlock(t *testing.T) {
	ctx := context.Background()
	key := "review_request:approve:abc"

	t.Run("releases a lock it owns", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("Get", ctx, key).Return(`"owner-1"`, nil)
		repo.On("Delete", ctx, key).Return(nil)

		err := newLockService(repo, zap.NewNop()).Unlock(ctx, key, "owner-1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ignores an expired lock", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("Get", ctx, key).Return("", nil)

		err := newLockService(repo, zap.NewNop()).Unlock(ctx, key, "owner-1")

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Delete", ctx, key)
	})

	t.Run("refuses to release another holder's lock", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("Get", ctx, key).Return(`"owner-2"`, nil)

		err := newLockService(repo, zap.NewNop()).Unlock(ctx, key, "owner-1")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", ctx, key)
	})
}
