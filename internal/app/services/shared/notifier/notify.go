package notifier

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Notify publishes event and only logs a failure. A nil publisher is a no-op.
func Notify(ctx context.Context, publisher contracts.NotificationPublisher, logger *zap.Logger, event contracts.NotificationEvent) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("notifier.Notify failed to publish event",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
	}
}
