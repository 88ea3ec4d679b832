package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
)

type PatientRepository interface {
	FindByClerkUserID(ctx context.Context, clerkUserID string) (*models.Patient, error)
	// Upsert overwrites scalar fields and appends newReports to the existing list.
	Upsert(ctx context.Context, patient *models.Patient, newReports []models.MedicalReport) (*models.Patient, error)
	EnsureIndexes(ctx context.Context) error
}

type PatientUsecase interface {
	UpsertProfile(ctx context.Context, request *requests.UpsertPatientProfile) (*models.Patient, error)
	FindProfile(ctx context.Context, request *requests.FindPatientProfile) (*models.Patient, error)
	FindProfileStatus(ctx context.Context, request *requests.FindPatientProfile) (*models.PatientProfileStatus, error)
	ListAppointments(ctx context.Context, request *requests.ListPatientAppointments) (*responses.AppointmentList, error)
	ListUpcomingCalls(ctx context.Context, callerID, patientID string) (*responses.UpcomingCalls, error)
	FindDoctorPublicProfile(ctx context.Context, doctorID string) (*models.DoctorProfile, error)
}
