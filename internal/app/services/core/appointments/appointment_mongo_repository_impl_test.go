package appointments

import (
	"testing"
	"time"

	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildAppointmentQuery(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	horizon := now.Add(constvars.AppointmentUpcomingHorizon)

	query := buildAppointmentQuery(contracts.AppointmentFilter{
		DoctorID:    "user_doctor",
		Statuses:    []string{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusInProgress},
		ScheduledTo: &horizon,
		NotEndedAt:  &now,
	})

	assert.Equal(t, "user_doctor", query["doctorId"])
	assert.Equal(t, bson.M{"$in": []string{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusInProgress}}, query["status"])
	assert.Equal(t, bson.M{"$lt": horizon}, query["scheduledDate"])
	assert.Equal(t, bson.M{"$gte": bson.A{
		bson.M{"$add": bson.A{"$scheduledDate", bson.M{"$multiply": bson.A{"$duration", millisecondsPerMinute}}}},
		now,
	}}, query["$expr"])
	assert.NotContains(t, query, "patientId")
}

func TestBuildAppointmentQuerySingleStatus(t *testing.T) {
	query := buildAppointmentQuery(contracts.AppointmentFilter{
		PatientID: "user_patient",
		Statuses:  []string{constvars.AppointmentStatusCompleted},
	})

	assert.Equal(t, bson.M{
		"patientId": "user_patient",
		"status":    constvars.AppointmentStatusCompleted,
	}, query)
}
