package mocks

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"time"

	"github.com/stretchr/testify/mock"
)

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) FindByClerkUserID(ctx context.Context, clerkUserID string) (*models.Patient, error) {
	args := m.Called(ctx, clerkUserID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientRepository) Upsert(ctx context.Context, patient *models.Patient, newReports []models.MedicalReport) (*models.Patient, error) {
	args := m.Called(ctx, patient, newReports)
	result, _ := args.Get(0).(*models.Patient)
	return result, args.Error(1)
}

func (m *PatientRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type DoctorProfileRepository struct {
	mock.Mock
}

func (m *DoctorProfileRepository) FindByDoctorID(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	args := m.Called(ctx, doctorID)
	profile, _ := args.Get(0).(*models.DoctorProfile)
	return profile, args.Error(1)
}

func (m *DoctorProfileRepository) Upsert(ctx context.Context, profile *models.DoctorProfile) (*models.DoctorProfile, error) {
	args := m.Called(ctx, profile)
	result, _ := args.Get(0).(*models.DoctorProfile)
	return result, args.Error(1)
}

func (m *DoctorProfileRepository) List(ctx context.Context, request *requests.ListDoctors) ([]models.DoctorProfile, int64, error) {
	args := m.Called(ctx, request)
	profiles, _ := args.Get(0).([]models.DoctorProfile)
	return profiles, args.Get(1).(int64), args.Error(2)
}

func (m *DoctorProfileRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type ReviewRequestRepository struct {
	mock.Mock
}

func (m *ReviewRequestRepository) Create(ctx context.Context, reviewRequest *models.ReviewRequest) (string, error) {
	args := m.Called(ctx, reviewRequest)
	return args.String(0), args.Error(1)
}

func (m *ReviewRequestRepository) FindByID(ctx context.Context, reviewRequestID string) (*models.ReviewRequest, error) {
	args := m.Called(ctx, reviewRequestID)
	reviewRequest, _ := args.Get(0).(*models.ReviewRequest)
	return reviewRequest, args.Error(1)
}

func (m *ReviewRequestRepository) ListByDoctor(ctx context.Context, doctorID, status string, pagination requests.Pagination) ([]models.ReviewRequest, int64, error) {
	args := m.Called(ctx, doctorID, status, pagination)
	list, _ := args.Get(0).([]models.ReviewRequest)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *ReviewRequestRepository) ListByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.ReviewRequest, int64, error) {
	args := m.Called(ctx, patientID, pagination)
	list, _ := args.Get(0).([]models.ReviewRequest)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *ReviewRequestRepository) CountByDoctorAndStatus(ctx context.Context, doctorID, status string) (int64, error) {
	args := m.Called(ctx, doctorID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReviewRequestRepository) CountGroupedByStatus(ctx context.Context, doctorID string) (map[string]int64, error) {
	args := m.Called(ctx, doctorID)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *ReviewRequestRepository) ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID string) (bool, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRequestRepository) UpdateReviewStatus(ctx context.Context, reviewRequestID, status, doctorNotes string, reviewedOn time.Time) (*models.ReviewRequest, error) {
	args := m.Called(ctx, reviewRequestID, status, doctorNotes, reviewedOn)
	reviewRequest, _ := args.Get(0).(*models.ReviewRequest)
	return reviewRequest, args.Error(1)
}

func (m *ReviewRequestRepository) ClaimForApproval(ctx context.Context, reviewRequestID string, reviewedOn time.Time) (*models.ReviewRequest, error) {
	args := m.Called(ctx, reviewRequestID, reviewedOn)
	reviewRequest, _ := args.Get(0).(*models.ReviewRequest)
	return reviewRequest, args.Error(1)
}

func (m *ReviewRequestRepository) ReleaseApproval(ctx context.Context, reviewRequestID string, previous *models.ReviewRequest) error {
	return m.Called(ctx, reviewRequestID, previous).Error(0)
}

func (m *ReviewRequestRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentRepository) List(ctx context.Context, filter contracts.AppointmentFilter, pagination requests.Pagination) ([]models.Appointment, int64, error) {
	args := m.Called(ctx, filter, pagination)
	list, _ := args.Get(0).([]models.Appointment)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *AppointmentRepository) FindUpcoming(ctx context.Context, filter contracts.AppointmentFilter, limit int64) ([]models.Appointment, error) {
	args := m.Called(ctx, filter, limit)
	list, _ := args.Get(0).([]models.Appointment)
	return list, args.Error(1)
}

func (m *AppointmentRepository) CountGroupedByStatus(ctx context.Context, doctorID string) (map[string]int64, error) {
	args := m.Called(ctx, doctorID)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *AppointmentRepository) CountDistinctPatients(ctx context.Context, doctorID string) (int64, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AppointmentRepository) ListPatientsForDoctor(ctx context.Context, doctorID string, pagination requests.Pagination) ([]models.DoctorPatientSummary, int64, error) {
	args := m.Called(ctx, doctorID, pagination)
	list, _ := args.Get(0).([]models.DoctorPatientSummary)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *AppointmentRepository) ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID string) (bool, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Bool(0), args.Error(1)
}

func (m *AppointmentRepository) MarkInProgress(ctx context.Context, appointmentID string, now time.Time) (bool, error) {
	args := m.Called(ctx, appointmentID, now)
	return args.Bool(0), args.Error(1)
}

func (m *AppointmentRepository) UpdateStatus(ctx context.Context, appointmentID, fromStatus, toStatus, meetingNotes string, now time.Time) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, fromStatus, toStatus, meetingNotes, now)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentRepository) FindDueForReminder(ctx context.Context, from, to time.Time, limit int64) ([]models.Appointment, error) {
	args := m.Called(ctx, from, to, limit)
	list, _ := args.Get(0).([]models.Appointment)
	return list, args.Error(1)
}

func (m *AppointmentRepository) MarkReminderSent(ctx context.Context, appointmentID string, now time.Time) (bool, error) {
	args := m.Called(ctx, appointmentID, now)
	return args.Bool(0), args.Error(1)
}

func (m *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
