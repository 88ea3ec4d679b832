package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentFilter struct {
	DoctorID      string
	PatientID     string
	Statuses      []string
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
	// NotEndedAt keeps only appointments whose scheduled end is at or after this instant.
	NotEndedAt *time.Time
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter, pagination requests.Pagination) ([]models.Appointment, int64, error)
	FindUpcoming(ctx context.Context, filter AppointmentFilter, limit int64) ([]models.Appointment, error)
	CountGroupedByStatus(ctx context.Context, doctorID string) (map[string]int64, error)
	CountDistinctPatients(ctx context.Context, doctorID string) (int64, error)
	ListPatientsForDoctor(ctx context.Context, doctorID string, pagination requests.Pagination) ([]models.DoctorPatientSummary, int64, error)
	ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID string) (bool, error)
	// MarkInProgress flips scheduled to in-progress and reports whether this call made the change.
	MarkInProgress(ctx context.Context, appointmentID string, now time.Time) (bool, error)
	// UpdateStatus applies the change only while the stored status still equals fromStatus.
	UpdateStatus(ctx context.Context, appointmentID, fromStatus, toStatus, meetingNotes string, now time.Time) (*models.Appointment, error)
	FindDueForReminder(ctx context.Context, from, to time.Time, limit int64) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, appointmentID string, now time.Time) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

type AppointmentUsecase interface {
	CreateFromReviewRequest(ctx context.Context, request *requests.CreateAppointmentFromRequest) (*models.Appointment, error)
	ListForDoctor(ctx context.Context, request *requests.ListDoctorAppointments) (*responses.AppointmentList, error)
	UpcomingForDoctor(ctx context.Context, callerID, doctorID string) (*responses.UpcomingCalls, error)
	StatsForDoctor(ctx context.Context, callerID, doctorID string) (*models.AppointmentStats, error)
	PatientsCountForDoctor(ctx context.Context, callerID, doctorID string) (*responses.PatientsCount, error)
	PatientsForDoctor(ctx context.Context, callerID, doctorID string, pagination requests.Pagination) (*responses.DoctorPatientList, error)
	FindByID(ctx context.Context, callerID, appointmentID string) (*models.Appointment, error)
	Join(ctx context.Context, callerID, appointmentID string) (*responses.JoinAppointment, error)
	UpdateStatus(ctx context.Context, request *requests.UpdateAppointmentStatus) (*models.Appointment, error)
}

type AppointmentReminderUsecase interface {
	SendDueReminders(ctx context.Context) (int, error)
}
