package patients

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/contracts/mocks"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testUpload struct {
	name        string
	contentType string
	size        int
}

type patientTestDeps struct {
	patients     *mocks.PatientRepository
	doctors      *mocks.DoctorProfileRepository
	reviews      *mocks.ReviewRequestRepository
	appointments *mocks.AppointmentRepository
	storage      *mocks.MedicalReportStorage
}

func newTestPatientUsecase(now time.Time) (*patientUsecase, patientTestDeps) {
	deps := patientTestDeps{
		patients:     new(mocks.PatientRepository),
		doctors:      new(mocks.DoctorProfileRepository),
		reviews:      new(mocks.ReviewRequestRepository),
		appointments: new(mocks.AppointmentRepository),
		storage:      new(mocks.MedicalReportStorage),
	}
	uc := newPatientUsecase(deps.patients, deps.doctors, deps.reviews, deps.appointments, deps.storage, clock.NewManaged(now), zap.NewNop())
	return uc, deps
}

func buildFileHeaders(t *testing.T, uploads ...testUpload) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, upload := range uploads {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="medicalReports"; filename="`+upload.name+`"`)
		header.Set(constvars.HeaderContentType, upload.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), upload.size))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[constvars.MedicalReportsFormField]
}

func validProfileRequest() *requests.UpsertPatientProfile {
	return &requests.UpsertPatientProfile{
		ClerkUserID: "user_patient",
		FirstName:   " Lena ",
		LastName:    "Hart",
		Email:       "Lena@Example.com",
		Phone:       "+4470000000",
		DateOfBirth: "1990-04-12",
		Gender:      "female",
		Height:      "168.5",
	}
}

func TestUpsertProfileStoresReportsAndAppends(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	uc, deps := newTestPatientUsecase(now)

	request := validProfileRequest()
	request.MedicalReports = buildFileHeaders(t,
		testUpload{name: "scan.pdf", contentType: "application/pdf", size: 128},
		testUpload{name: "xray.png", contentType: "image/png", size: 64},
	)

	deps.storage.On("Save", mock.Anything, "user_patient", mock.AnythingOfType("string"), "application/pdf", int64(128), mock.Anything).
		Return("uploads/user_patient/a.pdf", nil).Once()
	deps.storage.On("Save", mock.Anything, "user_patient", mock.AnythingOfType("string"), "image/png", int64(64), mock.Anything).
		Return("uploads/user_patient/b.png", nil).Once()

	deps.patients.On("Upsert", mock.Anything,
		mock.MatchedBy(func(p *models.Patient) bool {
			return p.ClerkUserID == "user_patient" &&
				p.FirstName == "Lena" &&
				p.Email == "lena@example.com" &&
				p.IsProfileComplete &&
				p.Height != nil && *p.Height == 168.5 &&
				p.Weight == nil &&
				p.DateOfBirth.Equal(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(reports []models.MedicalReport) bool {
			return len(reports) == 2 &&
				reports[0].OriginalName == "scan.pdf" &&
				reports[0].FilePath == "uploads/user_patient/a.pdf" &&
				reports[1].ContentType == "image/png" &&
				reports[1].UploadDate.Equal(now)
		}),
	).Return(&models.Patient{ClerkUserID: "user_patient", IsProfileComplete: true}, nil)

	saved, err := uc.UpsertProfile(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, saved.IsProfileComplete)
	deps.storage.AssertExpectations(t)
	deps.patients.AssertExpectations(t)
}

func TestUpsertProfileRejectsUploadsBeforeWriting(t *testing.T) {
	tests := []struct {
		name    string
		uploads []testUpload
	}{
		{
			name: "too many files",
			uploads: []testUpload{
				{name: "1.pdf", contentType: "application/pdf", size: 1},
				{name: "2.pdf", contentType: "application/pdf", size: 1},
				{name: "3.pdf", contentType: "application/pdf", size: 1},
				{name: "4.pdf", contentType: "application/pdf", size: 1},
				{name: "5.pdf", contentType: "application/pdf", size: 1},
				{name: "6.pdf", contentType: "application/pdf", size: 1},
			},
		},
		{
			name:    "file too large",
			uploads: []testUpload{{name: "big.pdf", contentType: "application/pdf", size: constvars.MedicalReportsMaxFileSize + 1}},
		},
		{
			name:    "invalid type",
			uploads: []testUpload{{name: "run.exe", contentType: "application/x-msdownload", size: 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, deps := newTestPatientUsecase(time.Now())
			request := validProfileRequest()
			request.MedicalReports = buildFileHeaders(t, tt.uploads...)

			_, err := uc.UpsertProfile(context.Background(), request)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
			deps.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			deps.patients.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpsertProfileInvalidDate(t *testing.T) {
	uc, deps := newTestPatientUsecase(time.Now())
	request := validProfileRequest()
	request.DateOfBirth = "12/04/1990"

	_, err := uc.UpsertProfile(context.Background(), request)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
	deps.patients.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertProfileDiscardsReportsWhenSaveFails(t *testing.T) {
	uc, deps := newTestPatientUsecase(time.Now())
	request := validProfileRequest()
	request.MedicalReports = buildFileHeaders(t, testUpload{name: "scan.pdf", contentType: "application/pdf", size: 8})

	deps.storage.On("Save", mock.Anything, "user_patient", mock.Anything, "application/pdf", int64(8), mock.Anything).
		Return("uploads/user_patient/a.pdf", nil)
	deps.patients.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("write failed"))
	deps.storage.On("Delete", mock.Anything, "uploads/user_patient/a.pdf").Return(nil)

	_, err := uc.UpsertProfile(context.Background(), request)
	require.Error(t, err)
	deps.storage.AssertCalled(t, "Delete", mock.Anything, "uploads/user_patient/a.pdf")
}

func TestFindProfileAccess(t *testing.T) {
	t.Run("patient reads own profile", func(t *testing.T) {
		uc, deps := newTestPatientUsecase(time.Now())
		deps.patients.On("FindByClerkUserID", mock.Anything, "user_patient").Return(&models.Patient{ClerkUserID: "user_patient"}, nil)

		patient, err := uc.FindProfile(context.Background(), &requests.FindPatientProfile{CallerID: "user_patient", ClerkUserID: "user_patient"})
		require.NoError(t, err)
		assert.Equal(t, "user_patient", patient.ClerkUserID)
		deps.reviews.AssertNotCalled(t, "ExistsForDoctorAndPatient", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("doctor with a review request", func(t *testing.T) {
		uc, deps := newTestPatientUsecase(time.Now())
		deps.reviews.On("ExistsForDoctorAndPatient", mock.Anything, "user_doctor", "user_patient").Return(true, nil)
		deps.patients.On("FindByClerkUserID", mock.Anything, "user_patient").Return(&models.Patient{ClerkUserID: "user_patient"}, nil)

		_, err := uc.FindProfile(context.Background(), &requests.FindPatientProfile{CallerID: "user_doctor", ClerkUserID: "user_patient"})
		require.NoError(t, err)
		deps.appointments.AssertNotCalled(t, "ExistsForDoctorAndPatient", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("doctor with an appointment", func(t *testing.T) {
		uc, deps := newTestPatientUsecase(time.Now())
		deps.reviews.On("ExistsForDoctorAndPatient", mock.Anything, "user_doctor", "user_patient").Return(false, nil)
		deps.appointments.On("ExistsForDoctorAndPatient", mock.Anything, "user_doctor", "user_patient").Return(true, nil)
		deps.patients.On("FindByClerkUserID", mock.Anything, "user_patient").Return(&models.Patient{ClerkUserID: "user_patient"}, nil)

		_, err := uc.FindProfile(context.Background(), &requests.FindPatientProfile{CallerID: "user_doctor", ClerkUserID: "user_patient"})
		require.NoError(t, err)
	})

	t.Run("unrelated caller", func(t *testing.T) {
		uc, deps := newTestPatientUsecase(time.Now())
		deps.reviews.On("ExistsForDoctorAndPatient", mock.Anything, "user_other", "user_patient").Return(false, nil)
		deps.appointments.On("ExistsForDoctorAndPatient", mock.Anything, "user_other", "user_patient").Return(false, nil)

		_, err := uc.FindProfile(context.Background(), &requests.FindPatientProfile{CallerID: "user_other", ClerkUserID: "user_patient"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, exceptions.StatusCodeOf(err))
		deps.patients.AssertNotCalled(t, "FindByClerkUserID", mock.Anything, mock.Anything)
	})

	t.Run("missing profile", func(t *testing.T) {
		uc, deps := newTestPatientUsecase(time.Now())
		deps.patients.On("FindByClerkUserID", mock.Anything, "user_patient").Return(nil, nil)

		_, err := uc.FindProfile(context.Background(), &requests.FindPatientProfile{CallerID: "user_patient", ClerkUserID: "user_patient"})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}

func TestFindProfileStatus(t *testing.T) {
	uc, deps := newTestPatientUsecase(time.Now())
	deps.patients.On("FindByClerkUserID", mock.Anything, "user_patient").Return(nil, nil).Once()

	status, err := uc.FindProfileStatus(context.Background(), &requests.FindPatientProfile{CallerID: "user_patient", ClerkUserID: "user_patient"})
	require.NoError(t, err)
	assert.False(t, status.Exists)

	deps.patients.On("FindByClerkUserID", mock.Anything, "user_patient").Return(&models.Patient{IsProfileComplete: true}, nil).Once()
	status, err = uc.FindProfileStatus(context.Background(), &requests.FindPatientProfile{CallerID: "user_patient", ClerkUserID: "user_patient"})
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.True(t, status.IsComplete)

	_, err = uc.FindProfileStatus(context.Background(), &requests.FindPatientProfile{CallerID: "user_other", ClerkUserID: "user_patient"})
	assert.Equal(t, http.StatusForbidden, exceptions.StatusCodeOf(err))
}

func TestListAppointmentsFiltersByStatus(t *testing.T) {
	uc, deps := newTestPatientUsecase(time.Now())
	pagination := requests.Pagination{Page: 1, PageSize: 10}

	deps.appointments.On("List", mock.Anything, contracts.AppointmentFilter{
		PatientID: "user_patient",
		Statuses:  []string{constvars.AppointmentStatusCompleted},
	}, pagination).Return([]models.Appointment{{PatientID: "user_patient"}}, int64(1), nil)

	list, err := uc.ListAppointments(context.Background(), &requests.ListPatientAppointments{
		CallerID:   "user_patient",
		PatientID:  "user_patient",
		Status:     constvars.AppointmentStatusCompleted,
		Pagination: pagination,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

func TestListUpcomingCallsMarksJoinable(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	uc, deps := newTestPatientUsecase(now)

	deps.appointments.On("FindUpcoming", mock.Anything, mock.MatchedBy(func(f contracts.AppointmentFilter) bool {
		return f.PatientID == "user_patient" && f.NotEndedAt != nil && f.NotEndedAt.Equal(now)
	}), int64(0)).Return([]models.Appointment{
		{PatientID: "user_patient", Status: constvars.AppointmentStatusScheduled, ScheduledDate: now.Add(10 * time.Minute), Duration: 30},
		{PatientID: "user_patient", Status: constvars.AppointmentStatusScheduled, ScheduledDate: now.Add(2 * time.Hour), Duration: 30},
	}, nil)

	calls, err := uc.ListUpcomingCalls(context.Background(), "user_patient", "user_patient")
	require.NoError(t, err)
	require.Len(t, calls.Calls, 2)
	assert.True(t, calls.Calls[0].CanJoin)
	assert.False(t, calls.Calls[1].CanJoin)
	assert.Equal(t, models.JoinStateTooEarly, calls.Calls[1].JoinState)
}

func TestFindDoctorPublicProfileHidesContact(t *testing.T) {
	uc, deps := newTestPatientUsecase(time.Now())
	deps.doctors.On("FindByDoctorID", mock.Anything, "user_doctor").
		Return(&models.DoctorProfile{DoctorID: "user_doctor", Email: "doc@example.com", PhoneNumber: "+1"}, nil)

	profile, err := uc.FindDoctorPublicProfile(context.Background(), "user_doctor")
	require.NoError(t, err)
	assert.Empty(t, profile.Email)
	assert.Empty(t, profile.PhoneNumber)

	deps.doctors.On("FindByDoctorID", mock.Anything, "user_missing").Return(nil, nil)
	_, err = uc.FindDoctorPublicProfile(context.Background(), "user_missing")
	assert.Equal(t, http.StatusNotFound, exceptions.StatusCodeOf(err))
}
