package constvars

import "time"

const (
	ReviewRequestStatusPending  = "pending"
	ReviewRequestStatusReviewed = "reviewed"
	ReviewRequestStatusApproved = "approved"
	ReviewRequestStatusRejected = "rejected"
	ReviewRequestStatusAll      = "all"
)

var ReviewRequestStatuses = []string{
	ReviewRequestStatusPending,
	ReviewRequestStatusReviewed,
	ReviewRequestStatusApproved,
	ReviewRequestStatusRejected,
}

const (
	AppointmentStatusScheduled  = "scheduled"
	AppointmentStatusInProgress = "in-progress"
	AppointmentStatusCompleted  = "completed"
	AppointmentStatusCancelled  = "cancelled"
	AppointmentStatusNoShow     = "no-show"
	AppointmentStatusAll        = "all"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

var DoctorSpecializations = []string{
	"Cardiology",
	"Dermatology",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"General Medicine",
	"Surgery",
	"Gynecology",
	"Ophthalmology",
	"ENT",
	"Radiology",
}

var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

const (
	AppointmentDefaultDurationInMinutes = 30
	AppointmentJoinLeadTime             = 15 * time.Minute
	AppointmentUpcomingHorizon          = 7 * 24 * time.Hour
	AppointmentUpcomingLimit            = 10
	AppointmentPatientsDefaultPageSize  = 20
	DateOnlyLayout                      = "2006-01-02"
)

const (
	MedicalReportsFormField     = "medicalReports"
	MedicalReportsMaxFiles      = 5
	MedicalReportsMaxFileSize   = 10 << 20
	MedicalReportFileNamePrefix = "medicalReports"
	MedicalReportsMaxMemory     = 32 << 20
)

var MedicalReportAllowedMIMETypes = map[string]bool{
	"application/pdf":                                                         true,
	"image/jpeg":                                                              true,
	"image/jpg":                                                               true,
	"image/png":                                                               true,
	"application/msword":                                                      true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

const (
	DailyRoomNameFormat      = "medtour-%s-%d"
	DailyRoomMaxParticipants = 2
	DailyRoomsPath           = "/rooms"
)

const (
	EventReviewRequestCreated       = "review_request.created"
	EventReviewRequestStatusChanged = "review_request.status_changed"
	EventAppointmentScheduled       = "appointment.scheduled"
	EventAppointmentStatusChanged   = "appointment.status_changed"
	EventAppointmentReminder        = "appointment.reminder"
)
