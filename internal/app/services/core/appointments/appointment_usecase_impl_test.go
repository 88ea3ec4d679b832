package appointments

import (
	"context"
	"errors"
	"net/http"
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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	testReviewRequestID = "665f1c2e9b1e8a0012345678"
	testLockKey         = "review_request:approve:665f1c2e9b1e8a0012345678"
)

var testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

type appointmentTestDeps struct {
	appointments *mocks.AppointmentRepository
	reviews      *mocks.ReviewRequestRepository
	doctors      *mocks.DoctorProfileRepository
	locker       *mocks.LockerService
	video        *mocks.VideoRoomProvider
	publisher    *mocks.NotificationPublisher
	clock        *clock.ManagedClock
}

func newTestAppointmentUsecase() (*appointmentUsecase, appointmentTestDeps) {
	deps := appointmentTestDeps{
		appointments: new(mocks.AppointmentRepository),
		reviews:      new(mocks.ReviewRequestRepository),
		doctors:      new(mocks.DoctorProfileRepository),
		locker:       new(mocks.LockerService),
		video:        new(mocks.VideoRoomProvider),
		publisher:    new(mocks.NotificationPublisher),
		clock:        clock.NewManaged(testNow),
	}
	uc := newAppointmentUsecase(
		deps.appointments,
		deps.reviews,
		deps.doctors,
		deps.locker,
		deps.video,
		deps.publisher,
		deps.clock,
		zap.NewNop(),
	)
	return uc, deps
}

func pendingReviewRequest() *models.ReviewRequest {
	return &models.ReviewRequest{
		DoctorID:    "user_doctor",
		PatientID:   "user_patient",
		PatientName: "Lena Hart",
		Status:      constvars.ReviewRequestStatusPending,
	}
}

func scheduleRequest() *requests.CreateAppointmentFromRequest {
	scheduledDate := testNow.Add(24 * time.Hour)
	return &requests.CreateAppointmentFromRequest{
		CallerID:        "user_doctor",
		ReviewRequestID: testReviewRequestID,
		ScheduledDate:   &scheduledDate,
	}
}

func expectLock(deps appointmentTestDeps) {
	deps.locker.On("TryLock", mock.Anything, testLockKey, constvars.ReviewRequestApproveLockTTL).Return(true, "lock-value", nil)
	deps.locker.On("Unlock", mock.Anything, testLockKey, "lock-value").Return(nil)
}

func TestCreateFromReviewRequestSchedulesCall(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	expectLock(deps)

	previous := pendingReviewRequest()
	deps.reviews.On("FindByID", mock.Anything, testReviewRequestID).Return(pendingReviewRequest(), nil)
	deps.doctors.On("FindByDoctorID", mock.Anything, "user_doctor").
		Return(&models.DoctorProfile{DoctorID: "user_doctor", FullName: "Dr. Amara Okafor", ConsultationFee: 150}, nil)
	deps.reviews.On("ClaimForApproval", mock.Anything, testReviewRequestID, testNow).Return(previous, nil)
	deps.video.On("CreateRoom", mock.Anything, mock.AnythingOfType("string"), testNow.Add(24*time.Hour), 30*time.Minute).
		Return(&contracts.VideoRoom{URL: "https://medtour.daily.co/room", Name: "room"}, nil)
	deps.appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
		return a.ReviewRequestID == testReviewRequestID &&
			a.Status == constvars.AppointmentStatusScheduled &&
			a.Duration == constvars.AppointmentDefaultDurationInMinutes &&
			a.DoctorName == "Dr. Amara Okafor" &&
			a.ConsultationFee == 150 &&
			a.PaymentStatus == constvars.PaymentStatusPending &&
			a.DailyRoomName == "room"
	})).Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e contracts.NotificationEvent) bool {
		return e.Type == constvars.EventAppointmentScheduled && e.ScheduledDate != nil
	})).Return(nil)

	appointment, err := uc.CreateFromReviewRequest(context.Background(), scheduleRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://medtour.daily.co/room", appointment.DailyRoomURL)
	assert.False(t, appointment.ID.IsZero())
	deps.locker.AssertCalled(t, "Unlock", mock.Anything, testLockKey, "lock-value")
	deps.reviews.AssertNotCalled(t, "ReleaseApproval", mock.Anything, mock.Anything, mock.Anything)
	deps.publisher.AssertExpectations(t)
}

func TestCreateFromReviewRequestLockHeld(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	deps.locker.On("TryLock", mock.Anything, testLockKey, constvars.ReviewRequestApproveLockTTL).Return(false, "", nil)

	_, err := uc.CreateFromReviewRequest(context.Background(), scheduleRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, exceptions.StatusCodeOf(err))
	deps.reviews.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateFromReviewRequestPreconditions(t *testing.T) {
	tests := []struct {
		name       string
		stored     *models.ReviewRequest
		profile    *models.DoctorProfile
		callerID   string
		wantStatus int
	}{
		{name: "missing request", stored: nil, callerID: "user_doctor", wantStatus: http.StatusNotFound},
		{name: "other doctor", stored: pendingReviewRequest(), callerID: "user_other", wantStatus: http.StatusForbidden},
		{name: "missing doctor profile", stored: pendingReviewRequest(), callerID: "user_doctor", wantStatus: http.StatusNotFound},
		{
			name:       "already approved",
			stored:     &models.ReviewRequest{DoctorID: "user_doctor", Status: constvars.ReviewRequestStatusApproved},
			profile:    &models.DoctorProfile{DoctorID: "user_doctor"},
			callerID:   "user_doctor",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "rejected",
			stored:     &models.ReviewRequest{DoctorID: "user_doctor", Status: constvars.ReviewRequestStatusRejected},
			profile:    &models.DoctorProfile{DoctorID: "user_doctor"},
			callerID:   "user_doctor",
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, deps := newTestAppointmentUsecase()
			expectLock(deps)
			deps.reviews.On("FindByID", mock.Anything, testReviewRequestID).Return(tt.stored, nil)
			deps.doctors.On("FindByDoctorID", mock.Anything, "user_doctor").Return(tt.profile, nil)

			request := scheduleRequest()
			request.CallerID = tt.callerID
			_, err := uc.CreateFromReviewRequest(context.Background(), request)
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, exceptions.StatusCodeOf(err))
			deps.reviews.AssertNotCalled(t, "ClaimForApproval", mock.Anything, mock.Anything, mock.Anything)
			deps.locker.AssertCalled(t, "Unlock", mock.Anything, testLockKey, "lock-value")
		})
	}
}

func TestCreateFromReviewRequestLostClaim(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	expectLock(deps)
	deps.reviews.On("FindByID", mock.Anything, testReviewRequestID).Return(pendingReviewRequest(), nil)
	deps.doctors.On("FindByDoctorID", mock.Anything, "user_doctor").Return(&models.DoctorProfile{DoctorID: "user_doctor"}, nil)
	deps.reviews.On("ClaimForApproval", mock.Anything, testReviewRequestID, testNow).Return(nil, nil)

	_, err := uc.CreateFromReviewRequest(context.Background(), scheduleRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, exceptions.StatusCodeOf(err))
	deps.video.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateFromReviewRequestRoomFailureRestoresRequest(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	expectLock(deps)

	previous := pendingReviewRequest()
	deps.reviews.On("FindByID", mock.Anything, testReviewRequestID).Return(pendingReviewRequest(), nil)
	deps.doctors.On("FindByDoctorID", mock.Anything, "user_doctor").Return(&models.DoctorProfile{DoctorID: "user_doctor"}, nil)
	deps.reviews.On("ClaimForApproval", mock.Anything, testReviewRequestID, testNow).Return(previous, nil)
	deps.video.On("CreateRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, exceptions.ErrDailyCreateRoom(errors.New("bad gateway"), http.StatusInternalServerError, "boom"))
	deps.reviews.On("ReleaseApproval", mock.Anything, testReviewRequestID, previous).Return(nil)

	_, err := uc.CreateFromReviewRequest(context.Background(), scheduleRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, exceptions.StatusCodeOf(err))
	deps.reviews.AssertCalled(t, "ReleaseApproval", mock.Anything, testReviewRequestID, previous)
	deps.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFromReviewRequestInsertFailureCompensates(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	expectLock(deps)

	previous := pendingReviewRequest()
	deps.reviews.On("FindByID", mock.Anything, testReviewRequestID).Return(pendingReviewRequest(), nil)
	deps.doctors.On("FindByDoctorID", mock.Anything, "user_doctor").Return(&models.DoctorProfile{DoctorID: "user_doctor"}, nil)
	deps.reviews.On("ClaimForApproval", mock.Anything, testReviewRequestID, testNow).Return(previous, nil)
	deps.video.On("CreateRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&contracts.VideoRoom{URL: "https://medtour.daily.co/room", Name: "room"}, nil)
	deps.appointments.On("Create", mock.Anything, mock.Anything).Return(exceptions.ErrMongoDBInsertDocument(errors.New("write failed")))
	deps.video.On("DeleteRoom", mock.Anything, "room").Return(errors.New("daily down"))
	deps.reviews.On("ReleaseApproval", mock.Anything, testReviewRequestID, previous).Return(nil)

	_, err := uc.CreateFromReviewRequest(context.Background(), scheduleRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, exceptions.StatusCodeOf(err))
	deps.video.AssertCalled(t, "DeleteRoom", mock.Anything, "room")
	deps.reviews.AssertCalled(t, "ReleaseApproval", mock.Anything, testReviewRequestID, previous)
	deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func joinableAppointment(scheduledDate time.Time, status string) *models.Appointment {
	return &models.Appointment{
		ID:            primitive.NewObjectID(),
		DoctorID:      "user_doctor",
		PatientID:     "user_patient",
		ScheduledDate: scheduledDate,
		Duration:      30,
		Status:        status,
		DailyRoomURL:  "https://medtour.daily.co/room",
		DailyRoomName: "room",
	}
}

func TestJoinWindowBoundaries(t *testing.T) {
	scheduled := testNow.Add(time.Hour)
	tests := []struct {
		name       string
		now        time.Time
		wantStatus int
	}{
		{name: "sixteen minutes early", now: scheduled.Add(-16 * time.Minute), wantStatus: http.StatusBadRequest},
		{name: "exactly fifteen minutes early", now: scheduled.Add(-15 * time.Minute), wantStatus: http.StatusOK},
		{name: "at the end", now: scheduled.Add(30 * time.Minute), wantStatus: http.StatusOK},
		{name: "after the end", now: scheduled.Add(31 * time.Minute), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, deps := newTestAppointmentUsecase()
			deps.clock.WarpForward(tt.now.Sub(testNow))

			appointment := joinableAppointment(scheduled, constvars.AppointmentStatusInProgress)
			deps.appointments.On("FindByID", mock.Anything, appointment.ID.Hex()).Return(appointment, nil)

			joined, err := uc.Join(context.Background(), "user_patient", appointment.ID.Hex())
			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, "https://medtour.daily.co/room", joined.RoomURL)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, exceptions.StatusCodeOf(err))
		})
	}
}

func TestJoinFirstJoinStartsCall(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	appointment := joinableAppointment(testNow.Add(5*time.Minute), constvars.AppointmentStatusScheduled)
	id := appointment.ID.Hex()

	deps.appointments.On("FindByID", mock.Anything, id).Return(appointment, nil)
	deps.appointments.On("MarkInProgress", mock.Anything, id, testNow).Return(true, nil)
	deps.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e contracts.NotificationEvent) bool {
		return e.Type == constvars.EventAppointmentStatusChanged && e.Status == constvars.AppointmentStatusInProgress
	})).Return(nil)

	joined, err := uc.Join(context.Background(), "user_doctor", id)
	require.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusInProgress, joined.Appointment.Status)
	deps.publisher.AssertExpectations(t)
}

func TestJoinConcurrentFlipRereads(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	appointment := joinableAppointment(testNow.Add(5*time.Minute), constvars.AppointmentStatusScheduled)
	id := appointment.ID.Hex()
	inProgress := *appointment
	inProgress.Status = constvars.AppointmentStatusInProgress

	deps.appointments.On("FindByID", mock.Anything, id).Return(appointment, nil).Once()
	deps.appointments.On("MarkInProgress", mock.Anything, id, testNow).Return(false, nil)
	deps.appointments.On("FindByID", mock.Anything, id).Return(&inProgress, nil).Once()

	joined, err := uc.Join(context.Background(), "user_patient", id)
	require.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusInProgress, joined.Appointment.Status)
	deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestJoinRejects(t *testing.T) {
	t.Run("not a participant", func(t *testing.T) {
		uc, deps := newTestAppointmentUsecase()
		appointment := joinableAppointment(testNow, constvars.AppointmentStatusScheduled)
		deps.appointments.On("FindByID", mock.Anything, appointment.ID.Hex()).Return(appointment, nil)

		_, err := uc.Join(context.Background(), "user_other", appointment.ID.Hex())
		assert.Equal(t, http.StatusForbidden, exceptions.StatusCodeOf(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		uc, deps := newTestAppointmentUsecase()
		appointment := joinableAppointment(testNow, constvars.AppointmentStatusCancelled)
		deps.appointments.On("FindByID", mock.Anything, appointment.ID.Hex()).Return(appointment, nil)

		_, err := uc.Join(context.Background(), "user_patient", appointment.ID.Hex())
		assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
	})

	t.Run("missing", func(t *testing.T) {
		uc, deps := newTestAppointmentUsecase()
		deps.appointments.On("FindByID", mock.Anything, testReviewRequestID).Return(nil, nil)

		_, err := uc.Join(context.Background(), "user_patient", testReviewRequestID)
		assert.Equal(t, http.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		to         string
		wantStatus int
	}{
		{name: "scheduled to completed", from: constvars.AppointmentStatusScheduled, to: constvars.AppointmentStatusCompleted, wantStatus: http.StatusOK},
		{name: "in-progress to no-show", from: constvars.AppointmentStatusInProgress, to: constvars.AppointmentStatusNoShow, wantStatus: http.StatusOK},
		{name: "completed notes edit", from: constvars.AppointmentStatusCompleted, to: constvars.AppointmentStatusCompleted, wantStatus: http.StatusOK},
		{name: "in-progress back to scheduled", from: constvars.AppointmentStatusInProgress, to: constvars.AppointmentStatusScheduled, wantStatus: http.StatusConflict},
		{name: "cancelled to completed", from: constvars.AppointmentStatusCancelled, to: constvars.AppointmentStatusCompleted, wantStatus: http.StatusConflict},
		{name: "cancelled notes edit", from: constvars.AppointmentStatusCancelled, to: constvars.AppointmentStatusCancelled, wantStatus: http.StatusOK},
		{name: "no-show to cancelled", from: constvars.AppointmentStatusNoShow, to: constvars.AppointmentStatusCancelled, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, deps := newTestAppointmentUsecase()
			appointment := joinableAppointment(testNow, tt.from)
			id := appointment.ID.Hex()
			updated := *appointment
			updated.Status = tt.to

			deps.appointments.On("FindByID", mock.Anything, id).Return(appointment, nil)
			deps.appointments.On("UpdateStatus", mock.Anything, id, tt.from, tt.to, "went well", testNow).Return(&updated, nil)
			deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

			result, err := uc.UpdateStatus(context.Background(), &requests.UpdateAppointmentStatus{
				CallerID:      "user_doctor",
				AppointmentID: id,
				Status:        tt.to,
				MeetingNotes:  "went well",
			})
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, tt.wantStatus, exceptions.StatusCodeOf(err))
				deps.appointments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, result.Status)
			if tt.from == tt.to {
				deps.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUpdateStatusPatientForbidden(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	appointment := joinableAppointment(testNow, constvars.AppointmentStatusScheduled)
	deps.appointments.On("FindByID", mock.Anything, appointment.ID.Hex()).Return(appointment, nil)

	_, err := uc.UpdateStatus(context.Background(), &requests.UpdateAppointmentStatus{
		CallerID:      "user_patient",
		AppointmentID: appointment.ID.Hex(),
		Status:        constvars.AppointmentStatusCancelled,
	})
	assert.Equal(t, http.StatusForbidden, exceptions.StatusCodeOf(err))
}

func TestStatsForDoctorTotal(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	deps.appointments.On("CountGroupedByStatus", mock.Anything, "user_doctor").Return(map[string]int64{
		constvars.AppointmentStatusScheduled:  2,
		constvars.AppointmentStatusInProgress: 1,
		constvars.AppointmentStatusCompleted:  4,
		constvars.AppointmentStatusCancelled:  3,
		constvars.AppointmentStatusNoShow:     1,
	}, nil)

	stats, err := uc.StatsForDoctor(context.Background(), "user_doctor", "user_doctor")
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(3), stats.Cancelled)
}

func TestListForDoctorDateFilter(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	pagination := requests.Pagination{Page: 1, PageSize: 10}

	deps.appointments.On("List", mock.Anything, mock.MatchedBy(func(f contracts.AppointmentFilter) bool {
		return f.DoctorID == "user_doctor" &&
			f.Statuses == nil &&
			f.ScheduledFrom.Equal(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)) &&
			f.ScheduledTo.Equal(time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC))
	}), pagination).Return([]models.Appointment{}, int64(0), nil)

	_, err := uc.ListForDoctor(context.Background(), &requests.ListDoctorAppointments{
		CallerID:   "user_doctor",
		DoctorID:   "user_doctor",
		Status:     constvars.AppointmentStatusAll,
		Date:       "2024-06-12",
		Pagination: pagination,
	})
	require.NoError(t, err)

	_, err = uc.ListForDoctor(context.Background(), &requests.ListDoctorAppointments{
		CallerID: "user_doctor",
		DoctorID: "user_doctor",
		Date:     "12-06-2024",
	})
	assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
}

func TestUpcomingForDoctor(t *testing.T) {
	uc, deps := newTestAppointmentUsecase()
	deps.appointments.On("FindUpcoming", mock.Anything, mock.MatchedBy(func(f contracts.AppointmentFilter) bool {
		return f.DoctorID == "user_doctor" &&
			len(f.Statuses) == 2 &&
			f.ScheduledTo.Equal(testNow.Add(constvars.AppointmentUpcomingHorizon)) &&
			f.NotEndedAt.Equal(testNow)
	}), int64(constvars.AppointmentUpcomingLimit)).Return([]models.Appointment{
		*joinableAppointment(testNow.Add(-10*time.Minute), constvars.AppointmentStatusInProgress),
	}, nil)

	calls, err := uc.UpcomingForDoctor(context.Background(), "user_doctor", "user_doctor")
	require.NoError(t, err)
	require.Len(t, calls.Calls, 1)
	assert.True(t, calls.Calls[0].CanJoin)
}
