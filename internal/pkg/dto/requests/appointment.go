package requests

import "time"

type CreateAppointmentFromRequest struct {
	CallerID        string     `json:"-"`
	ReviewRequestID string     `json:"reviewRequestId" validate:"required,not_blank"`
	ScheduledDate   *time.Time `json:"scheduledDate" validate:"required"`
	Duration        int        `json:"duration" validate:"omitempty,gte=5,lte=240"`
}

type ListDoctorAppointments struct {
	CallerID   string
	DoctorID   string
	Status     string
	Date       string
	Pagination Pagination
}

type UpdateAppointmentStatus struct {
	CallerID      string `json:"-"`
	AppointmentID string `json:"-"`
	Status        string `json:"status" validate:"required,oneof=scheduled in-progress completed cancelled no-show"`
	MeetingNotes  string `json:"meetingNotes" validate:"max=2000"`
}
