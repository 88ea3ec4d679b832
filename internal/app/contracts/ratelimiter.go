package contracts

import (
	"context"
	"time"
)

type ResourceLimiter interface {
	// Allow consumes one unit of quota for resource within group and reports
	// whether it fit, plus the time until the current window resets.
	Allow(ctx context.Context, group, resource string, quota int, window time.Duration) (bool, time.Duration, error)
}
