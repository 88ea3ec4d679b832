package responses

import "medtour-service/internal/app/models"

type DoctorList struct {
	Doctors []models.DoctorProfile `json:"doctors"`
	Total   int64                  `json:"-"`
}

type ReviewRequestList struct {
	Requests     []models.ReviewRequest `json:"requests"`
	PendingCount int64                  `json:"pendingCount"`
	Total        int64                  `json:"-"`
}

type AppointmentList struct {
	Appointments []models.Appointment `json:"appointments"`
	Total        int64                `json:"-"`
}

type UpcomingCalls struct {
	Calls []models.AppointmentWithJoinState `json:"calls"`
}

type DoctorPatientList struct {
	Patients []models.DoctorPatientSummary `json:"patients"`
	Total    int64                         `json:"-"`
}

type PatientsCount struct {
	Count int64 `json:"count"`
}

type JoinAppointment struct {
	RoomURL     string             `json:"roomUrl"`
	RoomName    string             `json:"roomName"`
	Appointment models.Appointment `json:"appointment"`
}
