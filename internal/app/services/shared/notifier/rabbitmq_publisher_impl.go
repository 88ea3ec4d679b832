package notifier

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// amqpChannel is the part of *amqp091.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type rabbitMQPublisher struct {
	Channel amqpChannel
	Queue   string
	Log     *zap.Logger
	mu      sync.Mutex
}

var (
	rabbitMQPublisherInstance contracts.NotificationPublisher
	onceRabbitMQPublisher     sync.Once
	rabbitMQPublisherError    error
)

func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (contracts.NotificationPublisher, error) {
	onceRabbitMQPublisher.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			rabbitMQPublisherError = err
			return
		}

		_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
		if err != nil {
			rabbitMQPublisherError = err
			return
		}

		rabbitMQPublisherInstance = newRabbitMQPublisher(channel, queue, logger)
	})
	return rabbitMQPublisherInstance, rabbitMQPublisherError
}

func newRabbitMQPublisher(channel amqpChannel, queue string, logger *zap.Logger) *rabbitMQPublisher {
	return &rabbitMQPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, event contracts.NotificationEvent) error {
	requestID := utils.GetRequestID(ctx)
	if event.RequestID == "" {
		event.RequestID = requestID
	}

	p.Log.Info("rabbitMQPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
	)

	body, err := json.Marshal(event)
	if err != nil {
		p.Log.Error("rabbitMQPublisher.Publish error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Headers: amqp091.Table{
			"event_type": event.Type,
			"request_id": event.RequestID,
		},
	}

	// amqp091 channels are not safe for concurrent publishing
	p.mu.Lock()
	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	p.mu.Unlock()
	if err != nil {
		p.Log.Error("rabbitMQPublisher.Publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, p.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, p.Queue),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
	)
	return nil
}
