package contracts

import (
	"context"
	"time"
)

type NotificationEvent struct {
	Type            string            `json:"type"`
	OccurredAt      time.Time         `json:"occurredAt"`
	RequestID       string            `json:"requestId,omitempty"`
	DoctorID        string            `json:"doctorId,omitempty"`
	PatientID       string            `json:"patientId,omitempty"`
	ReviewRequestID string            `json:"reviewRequestId,omitempty"`
	AppointmentID   string            `json:"appointmentId,omitempty"`
	Status          string            `json:"status,omitempty"`
	ScheduledDate   *time.Time        `json:"scheduledDate,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
}

// NotificationPublisher hands domain events to the messaging broker.
type NotificationPublisher interface {
	Publish(ctx context.Context, event NotificationEvent) error
}
