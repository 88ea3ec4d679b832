package ratelimiter

import (
	"context"
	"fmt"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

// resourceLimiter is a fixed window counter kept in Redis. Each window gets its
// own key that expires shortly after the window closes.
type resourceLimiter struct {
	redis contracts.RedisRepository
	clock clock.Clock
	Log   *zap.Logger
}

func NewResourceLimiter(redis contracts.RedisRepository, clk clock.Clock, logger *zap.Logger) contracts.ResourceLimiter {
	return &resourceLimiter{redis: redis, clock: clk, Log: logger}
}

func (l *resourceLimiter) Allow(ctx context.Context, group, resource string, quota int, window time.Duration) (bool, time.Duration, error) {
	requestID := utils.GetRequestID(ctx)

	if quota <= 0 {
		return true, 0, nil
	}
	if window < time.Second {
		window = time.Minute
	}

	group = strings.ToLower(strings.TrimSpace(group))
	resource = strings.TrimSpace(resource)
	if group == "" || resource == "" {
		return false, window, nil
	}

	windowSecs := int64(window / time.Second)
	now := l.clock.Now().UTC()
	windowID := now.Unix() / windowSecs
	key := fmt.Sprintf("ratelimit:%s:%s:%d", group, resource, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.Log.Error("resourceLimiter.Allow error calling redis.IncrementWithTTL",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, 0, err
	}

	retryAfter := time.Unix((windowID+1)*windowSecs, 0).Sub(now)
	if count > int64(quota) {
		l.Log.Info("resourceLimiter.Allow quota exhausted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Int64(constvars.LoggingCountKey, count),
		)
		return false, retryAfter, nil
	}
	return true, retryAfter, nil
}
