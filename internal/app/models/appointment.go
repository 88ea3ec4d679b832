package models

import (
	"medtour-service/internal/pkg/constvars"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appointment struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ReviewRequestID string             `json:"reviewRequestId" bson:"reviewRequestId"`
	DoctorID        string             `json:"doctorId" bson:"doctorId"`
	PatientID       string             `json:"patientId" bson:"patientId"`
	PatientName     string             `json:"patientName" bson:"patientName"`
	DoctorName      string             `json:"doctorName" bson:"doctorName"`
	ScheduledDate   time.Time          `json:"scheduledDate" bson:"scheduledDate"`
	Duration        int                `json:"duration" bson:"duration"`
	Status          string             `json:"status" bson:"status"`
	DailyRoomURL    string             `json:"dailyRoomUrl" bson:"dailyRoomUrl"`
	DailyRoomName   string             `json:"dailyRoomName" bson:"dailyRoomName"`
	MeetingNotes    string             `json:"meetingNotes,omitempty" bson:"meetingNotes,omitempty"`
	ConsultationFee float64            `json:"consultationFee" bson:"consultationFee"`
	PaymentStatus   string             `json:"paymentStatus" bson:"paymentStatus"`
	ReminderSentAt  *time.Time         `json:"reminderSentAt,omitempty" bson:"reminderSentAt,omitempty"`
	TimeModel       `bson:",inline"`
}

func (a *Appointment) IsDoctor(userID string) bool {
	return userID != "" && a.DoctorID == userID
}

func (a *Appointment) IsPatient(userID string) bool {
	return userID != "" && a.PatientID == userID
}

func (a *Appointment) IsParticipant(userID string) bool {
	return a.IsDoctor(userID) || a.IsPatient(userID)
}

func (a *Appointment) CallDuration() time.Duration {
	return time.Duration(a.Duration) * time.Minute
}

func (a *Appointment) JoinWindow(now time.Time) JoinWindow {
	return EvaluateJoinWindow(now, a.ScheduledDate, a.CallDuration())
}

// IsJoinableStatus reports whether the call room may be handed out in this status.
func (a *Appointment) IsJoinableStatus() bool {
	return a.Status == constvars.AppointmentStatusScheduled || a.Status == constvars.AppointmentStatusInProgress
}

var appointmentTransitions = map[string][]string{
	constvars.AppointmentStatusScheduled: {
		constvars.AppointmentStatusInProgress,
		constvars.AppointmentStatusCompleted,
		constvars.AppointmentStatusCancelled,
		constvars.AppointmentStatusNoShow,
	},
	constvars.AppointmentStatusInProgress: {
		constvars.AppointmentStatusCompleted,
		constvars.AppointmentStatusCancelled,
		constvars.AppointmentStatusNoShow,
	},
}

// CanTransitionTo reports whether status may follow the current one. Setting
// the current status again is allowed so notes can be edited.
func (a *Appointment) CanTransitionTo(status string) bool {
	if status == a.Status {
		return true
	}
	for _, next := range appointmentTransitions[a.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// AppointmentWithJoinState decorates an appointment with its join window at read time.
type AppointmentWithJoinState struct {
	Appointment
	CanJoin   bool      `json:"canJoin"`
	JoinState string    `json:"joinState"`
	OpensAt   time.Time `json:"joinOpensAt"`
	ClosesAt  time.Time `json:"joinClosesAt"`
}

func NewAppointmentWithJoinState(appointment Appointment, now time.Time) AppointmentWithJoinState {
	window := appointment.JoinWindow(now)
	return AppointmentWithJoinState{
		Appointment: appointment,
		CanJoin:     window.IsOpen() && appointment.IsJoinableStatus(),
		JoinState:   window.State,
		OpensAt:     window.OpensAt,
		ClosesAt:    window.ClosesAt,
	}
}

type AppointmentStats struct {
	Total      int64 `json:"total"`
	Scheduled  int64 `json:"scheduled"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
	NoShow     int64 `json:"noShow"`
}

// DoctorPatientSummary is one row of a doctor's patient list.
type DoctorPatientSummary struct {
	PatientID         string    `json:"patientId" bson:"_id"`
	PatientName       string    `json:"patientName" bson:"patientName"`
	LatestAppointment time.Time `json:"latestAppointment" bson:"latestAppointment"`
	TotalAppointments int64     `json:"totalAppointments" bson:"totalAppointments"`
	Statuses          []string  `json:"statuses" bson:"statuses"`
}
