package models

import (
	"medtour-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentCanTransitionTo(t *testing.T) {
	testCases := []struct {
		from     string
		to       string
		expected bool
	}{
		{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusInProgress, true},
		{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusCancelled, true},
		{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusCompleted, true},
		{constvars.AppointmentStatusInProgress, constvars.AppointmentStatusCompleted, true},
		{constvars.AppointmentStatusInProgress, constvars.AppointmentStatusScheduled, false},
		{constvars.AppointmentStatusCompleted, constvars.AppointmentStatusInProgress, false},
		{constvars.AppointmentStatusCancelled, constvars.AppointmentStatusScheduled, false},
		{constvars.AppointmentStatusCompleted, constvars.AppointmentStatusCompleted, true},
		{constvars.AppointmentStatusCancelled, constvars.AppointmentStatusCancelled, true},
		{constvars.AppointmentStatusNoShow, constvars.AppointmentStatusNoShow, true},
		{constvars.AppointmentStatusCompleted, constvars.AppointmentStatusCancelled, false},
		{constvars.AppointmentStatusNoShow, constvars.AppointmentStatusCompleted, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from+" to "+tc.to, func(t *testing.T) {
			appointment := &Appointment{Status: tc.from}
			assert.Equal(t, tc.expected, appointment.CanTransitionTo(tc.to))
		})
	}
}

func TestAppointmentParticipants(t *testing.T) {
	appointment := &Appointment{DoctorID: "user_doctor", PatientID: "user_patient"}

	assert.True(t, appointment.IsDoctor("user_doctor"))
	assert.False(t, appointment.IsDoctor("user_patient"))
	assert.True(t, appointment.IsParticipant("user_patient"))
	assert.False(t, appointment.IsParticipant("user_other"))
	assert.False(t, appointment.IsParticipant(""))
}

func TestNewAppointmentWithJoinState(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	open := NewAppointmentWithJoinState(Appointment{
		ScheduledDate: now.Add(10 * time.Minute),
		Duration:      30,
		Status:        constvars.AppointmentStatusScheduled,
	}, now)
	assert.True(t, open.CanJoin)
	assert.Equal(t, JoinStateOpen, open.JoinState)

	cancelled := NewAppointmentWithJoinState(Appointment{
		ScheduledDate: now.Add(10 * time.Minute),
		Duration:      30,
		Status:        constvars.AppointmentStatusCancelled,
	}, now)
	assert.False(t, cancelled.CanJoin)
}
