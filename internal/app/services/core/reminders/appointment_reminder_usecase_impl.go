package reminders

import (
	"context"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type appointmentReminderUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	NotificationPublisher contracts.NotificationPublisher
	InternalConfig        *config.InternalConfig
	Clock                 clock.Clock
	Log                   *zap.Logger
}

func NewAppointmentReminderUsecase(
	appointmentRepository contracts.AppointmentRepository,
	notificationPublisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.AppointmentReminderUsecase {
	return &appointmentReminderUsecase{
		AppointmentRepository: appointmentRepository,
		NotificationPublisher: notificationPublisher,
		InternalConfig:        internalConfig,
		Clock:                 clk,
		Log:                   logger,
	}
}

// SendDueReminders publishes one reminder per scheduled appointment whose join
// window opens within the configured lead time. An appointment is only marked
// once its reminder was handed to the broker.
func (uc *appointmentReminderUsecase) SendDueReminders(ctx context.Context) (int, error) {
	requestID := utils.GetRequestID(ctx)
	now := uc.Clock.Now()
	lead := time.Duration(uc.InternalConfig.Reminder.LeadMinutes) * time.Minute
	until := now.Add(constvars.AppointmentJoinLeadTime + lead)

	uc.Log.Info("appointmentReminderUsecase.SendDueReminders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time("until", until),
	)

	appointments, err := uc.AppointmentRepository.FindDueForReminder(ctx, now, until, int64(uc.InternalConfig.Reminder.BatchSize))
	if err != nil {
		uc.Log.Error("appointmentReminderUsecase.SendDueReminders error calling AppointmentRepository.FindDueForReminder",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}

	sent := 0
	for _, appointment := range appointments {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		window := appointment.JoinWindow(now)
		if window.HasEnded() {
			continue
		}

		appointmentID := appointment.ID.Hex()
		scheduledDate := appointment.ScheduledDate
		err := uc.NotificationPublisher.Publish(ctx, contracts.NotificationEvent{
			Type:            constvars.EventAppointmentReminder,
			OccurredAt:      now,
			DoctorID:        appointment.DoctorID,
			PatientID:       appointment.PatientID,
			ReviewRequestID: appointment.ReviewRequestID,
			AppointmentID:   appointmentID,
			Status:          appointment.Status,
			ScheduledDate:   &scheduledDate,
			Attributes: map[string]string{
				"joinOpensAt":  window.OpensAt.Format(time.RFC3339),
				"joinClosesAt": window.ClosesAt.Format(time.RFC3339),
				"roomUrl":      appointment.DailyRoomURL,
			},
		})
		if err != nil {
			uc.Log.Warn("appointmentReminderUsecase.SendDueReminders failed to publish reminder",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
				zap.Error(err),
			)
			continue
		}

		marked, err := uc.AppointmentRepository.MarkReminderSent(ctx, appointmentID, now)
		if err != nil {
			uc.Log.Error("appointmentReminderUsecase.SendDueReminders error calling AppointmentRepository.MarkReminderSent",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
				zap.Error(err),
			)
			continue
		}
		if marked {
			sent++
		}
	}

	uc.Log.Info("appointmentReminderUsecase.SendDueReminders succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, sent),
	)
	return sent, nil
}
