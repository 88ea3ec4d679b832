package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/contracts/mocks"
	"medtour-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	queue     string
	published []amqp091.Publishing
	err       error
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.queue = key
	c.published = append(c.published, msg)
	return nil
}

func TestPublish(t *testing.T) {
	channel := &fakeChannel{}
	publisher := newRabbitMQPublisher(channel, "medtour.notifications", zap.NewNop())

	scheduledDate := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "MDTR_SVC_1")
	err := publisher.Publish(ctx, contracts.NotificationEvent{
		Type:          constvars.EventAppointmentScheduled,
		OccurredAt:    scheduledDate.Add(-time.Hour),
		DoctorID:      "user_doctor",
		PatientID:     "user_patient",
		AppointmentID: "appt1",
		ScheduledDate: &scheduledDate,
	})
	require.NoError(t, err)

	require.Len(t, channel.published, 1)
	assert.Equal(t, "medtour.notifications", channel.queue)

	message := channel.published[0]
	assert.Equal(t, amqp091.Persistent, message.DeliveryMode)
	assert.Equal(t, constvars.EventAppointmentScheduled, message.Type)

	var decoded contracts.NotificationEvent
	require.NoError(t, json.Unmarshal(message.Body, &decoded))
	assert.Equal(t, "appt1", decoded.AppointmentID)
	assert.Equal(t, "MDTR_SVC_1", decoded.RequestID)
}

func TestPublishFailure(t *testing.T) {
	channel := &fakeChannel{err: errors.New("channel closed")}
	publisher := newRabbitMQPublisher(channel, "medtour.notifications", zap.NewNop())

	err := publisher.Publish(context.Background(), contracts.NotificationEvent{Type: constvars.EventAppointmentReminder})
	assert.Error(t, err)
}

func TestNotifySwallowsPublishError(t *testing.T) {
	publisher := new(mocks.NotificationPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e contracts.NotificationEvent) bool {
		return e.Type == constvars.EventAppointmentReminder
	})).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		Notify(context.Background(), publisher, zap.NewNop(), contracts.NotificationEvent{Type: constvars.EventAppointmentReminder})
	})
	publisher.AssertExpectations(t)

	assert.NotPanics(t, func() {
		Notify(context.Background(), nil, zap.NewNop(), contracts.NotificationEvent{})
	})
}
