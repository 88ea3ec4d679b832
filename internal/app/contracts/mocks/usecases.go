package mocks

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type PatientUsecase struct {
	mock.Mock
}

func (m *PatientUsecase) UpsertProfile(ctx context.Context, request *requests.UpsertPatientProfile) (*models.Patient, error) {
	args := m.Called(ctx, request)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientUsecase) FindProfile(ctx context.Context, request *requests.FindPatientProfile) (*models.Patient, error) {
	args := m.Called(ctx, request)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientUsecase) FindProfileStatus(ctx context.Context, request *requests.FindPatientProfile) (*models.PatientProfileStatus, error) {
	args := m.Called(ctx, request)
	status, _ := args.Get(0).(*models.PatientProfileStatus)
	return status, args.Error(1)
}

func (m *PatientUsecase) ListAppointments(ctx context.Context, request *requests.ListPatientAppointments) (*responses.AppointmentList, error) {
	args := m.Called(ctx, request)
	list, _ := args.Get(0).(*responses.AppointmentList)
	return list, args.Error(1)
}

func (m *PatientUsecase) ListUpcomingCalls(ctx context.Context, callerID, patientID string) (*responses.UpcomingCalls, error) {
	args := m.Called(ctx, callerID, patientID)
	calls, _ := args.Get(0).(*responses.UpcomingCalls)
	return calls, args.Error(1)
}

func (m *PatientUsecase) FindDoctorPublicProfile(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	args := m.Called(ctx, doctorID)
	profile, _ := args.Get(0).(*models.DoctorProfile)
	return profile, args.Error(1)
}

type DoctorUsecase struct {
	mock.Mock
}

func (m *DoctorUsecase) UpsertProfile(ctx context.Context, request *requests.UpsertDoctorProfile) (*models.DoctorProfile, error) {
	args := m.Called(ctx, request)
	profile, _ := args.Get(0).(*models.DoctorProfile)
	return profile, args.Error(1)
}

func (m *DoctorUsecase) FindProfile(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	args := m.Called(ctx, doctorID)
	profile, _ := args.Get(0).(*models.DoctorProfile)
	return profile, args.Error(1)
}

func (m *DoctorUsecase) ListDoctors(ctx context.Context, request *requests.ListDoctors) (*responses.DoctorList, error) {
	args := m.Called(ctx, request)
	list, _ := args.Get(0).(*responses.DoctorList)
	return list, args.Error(1)
}

type ReviewRequestUsecase struct {
	mock.Mock
}

func (m *ReviewRequestUsecase) Create(ctx context.Context, request *requests.CreateReviewRequest) (*models.ReviewRequest, error) {
	args := m.Called(ctx, request)
	reviewRequest, _ := args.Get(0).(*models.ReviewRequest)
	return reviewRequest, args.Error(1)
}

func (m *ReviewRequestUsecase) ListForDoctor(ctx context.Context, request *requests.ListDoctorReviewRequests) (*responses.ReviewRequestList, error) {
	args := m.Called(ctx, request)
	list, _ := args.Get(0).(*responses.ReviewRequestList)
	return list, args.Error(1)
}

func (m *ReviewRequestUsecase) ListForPatient(ctx context.Context, request *requests.ListPatientReviewRequests) (*responses.ReviewRequestList, error) {
	args := m.Called(ctx, request)
	list, _ := args.Get(0).(*responses.ReviewRequestList)
	return list, args.Error(1)
}

func (m *ReviewRequestUsecase) Stats(ctx context.Context, callerID, doctorID string) (*models.ReviewRequestStats, error) {
	args := m.Called(ctx, callerID, doctorID)
	stats, _ := args.Get(0).(*models.ReviewRequestStats)
	return stats, args.Error(1)
}

func (m *ReviewRequestUsecase) UpdateStatus(ctx context.Context, request *requests.UpdateReviewRequestStatus) (*models.ReviewRequest, error) {
	args := m.Called(ctx, request)
	reviewRequest, _ := args.Get(0).(*models.ReviewRequest)
	return reviewRequest, args.Error(1)
}

func (m *ReviewRequestUsecase) FindByID(ctx context.Context, callerID, reviewRequestID string) (*models.ReviewRequest, error) {
	args := m.Called(ctx, callerID, reviewRequestID)
	reviewRequest, _ := args.Get(0).(*models.ReviewRequest)
	return reviewRequest, args.Error(1)
}

type AppointmentUsecase struct {
	mock.Mock
}

func (m *AppointmentUsecase) CreateFromReviewRequest(ctx context.Context, request *requests.CreateAppointmentFromRequest) (*models.Appointment, error) {
	args := m.Called(ctx, request)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentUsecase) ListForDoctor(ctx context.Context, request *requests.ListDoctorAppointments) (*responses.AppointmentList, error) {
	args := m.Called(ctx, request)
	list, _ := args.Get(0).(*responses.AppointmentList)
	return list, args.Error(1)
}

func (m *AppointmentUsecase) UpcomingForDoctor(ctx context.Context, callerID, doctorID string) (*responses.UpcomingCalls, error) {
	args := m.Called(ctx, callerID, doctorID)
	calls, _ := args.Get(0).(*responses.UpcomingCalls)
	return calls, args.Error(1)
}

func (m *AppointmentUsecase) StatsForDoctor(ctx context.Context, callerID, doctorID string) (*models.AppointmentStats, error) {
	args := m.Called(ctx, callerID, doctorID)
	stats, _ := args.Get(0).(*models.AppointmentStats)
	return stats, args.Error(1)
}

func (m *AppointmentUsecase) PatientsCountForDoctor(ctx context.Context, callerID, doctorID string) (*responses.PatientsCount, error) {
	args := m.Called(ctx, callerID, doctorID)
	count, _ := args.Get(0).(*responses.PatientsCount)
	return count, args.Error(1)
}

func (m *AppointmentUsecase) PatientsForDoctor(ctx context.Context, callerID, doctorID string, pagination requests.Pagination) (*responses.DoctorPatientList, error) {
	args := m.Called(ctx, callerID, doctorID, pagination)
	list, _ := args.Get(0).(*responses.DoctorPatientList)
	return list, args.Error(1)
}

func (m *AppointmentUsecase) FindByID(ctx context.Context, callerID, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, callerID, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentUsecase) Join(ctx context.Context, callerID, appointmentID string) (*responses.JoinAppointment, error) {
	args := m.Called(ctx, callerID, appointmentID)
	joined, _ := args.Get(0).(*responses.JoinAppointment)
	return joined, args.Error(1)
}

func (m *AppointmentUsecase) UpdateStatus(ctx context.Context, request *requests.UpdateAppointmentStatus) (*models.Appointment, error) {
	args := m.Called(ctx, request)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

type AppointmentReminderUsecase struct {
	mock.Mock
}

func (m *AppointmentReminderUsecase) SendDueReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
