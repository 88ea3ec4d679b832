package appointments

import (
	"context"
	"errors"
	"fmt"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/app/services/shared/notifier"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository   contracts.AppointmentRepository
	ReviewRequestRepository contracts.ReviewRequestRepository
	DoctorProfileRepository contracts.DoctorProfileRepository
	LockerService           contracts.LockerService
	VideoRoomProvider       contracts.VideoRoomProvider
	NotificationPublisher   contracts.NotificationPublisher
	Clock                   clock.Clock
	Log                     *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	reviewRequestRepository contracts.ReviewRequestRepository,
	doctorProfileRepository contracts.DoctorProfileRepository,
	lockerService contracts.LockerService,
	videoRoomProvider contracts.VideoRoomProvider,
	notificationPublisher contracts.NotificationPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = newAppointmentUsecase(
			appointmentRepository,
			reviewRequestRepository,
			doctorProfileRepository,
			lockerService,
			videoRoomProvider,
			notificationPublisher,
			clk,
			logger,
		)
	})
	return appointmentUsecaseInstance
}

func newAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	reviewRequestRepository contracts.ReviewRequestRepository,
	doctorProfileRepository contracts.DoctorProfileRepository,
	lockerService contracts.LockerService,
	videoRoomProvider contracts.VideoRoomProvider,
	notificationPublisher contracts.NotificationPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) *appointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository:   appointmentRepository,
		ReviewRequestRepository: reviewRequestRepository,
		DoctorProfileRepository: doctorProfileRepository,
		LockerService:           lockerService,
		VideoRoomProvider:       videoRoomProvider,
		NotificationPublisher:   notificationPublisher,
		Clock:                   clk,
		Log:                     logger,
	}
}

// CreateFromReviewRequest approves a review request by scheduling its call.
// The request is claimed first and the claim is released if the room or the
// appointment cannot be created.
func (uc *appointmentUsecase) CreateFromReviewRequest(ctx context.Context, request *requests.CreateAppointmentFromRequest) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.CreateFromReviewRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewRequestIDKey, request.ReviewRequestID),
		zap.String(constvars.LoggingCallerIDKey, request.CallerID),
	)

	lockKey := fmt.Sprintf(constvars.RedisKeyReviewRequestApproveLockFormat, request.ReviewRequestID)
	locked, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, constvars.ReviewRequestApproveLockTTL)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateFromReviewRequest error calling LockerService.TryLock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
		return nil, err
	}
	if !locked {
		return nil, exceptions.ErrReviewRequestBeingProcessed(errors.New("approval lock is held"), request.ReviewRequestID)
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.CreateFromReviewRequest failed to release lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	reviewRequest, err := uc.ReviewRequestRepository.FindByID(ctx, request.ReviewRequestID)
	if err != nil {
		return nil, err
	}
	if reviewRequest == nil {
		return nil, exceptions.ErrReviewRequestNotFound(errors.New("review request does not exist"))
	}
	if !reviewRequest.IsOwnedByDoctor(request.CallerID) {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the assigned doctor"), request.CallerID, constvars.ResourceReviewRequest)
	}

	doctorProfile, err := uc.DoctorProfileRepository.FindByDoctorID(ctx, reviewRequest.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctorProfile == nil {
		return nil, exceptions.ErrDoctorProfileNotFound(errors.New("doctor profile does not exist"))
	}

	switch reviewRequest.Status {
	case constvars.ReviewRequestStatusApproved:
		return nil, exceptions.ErrReviewRequestAlreadyApproved(errors.New("review request already approved"), request.ReviewRequestID)
	case constvars.ReviewRequestStatusRejected:
		return nil, exceptions.ErrReviewRequestRejected(errors.New("review request was rejected"), request.ReviewRequestID)
	}

	now := uc.Clock.Now()
	previous, err := uc.ReviewRequestRepository.ClaimForApproval(ctx, request.ReviewRequestID, now)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateFromReviewRequest error calling ReviewRequestRepository.ClaimForApproval",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if previous == nil {
		return nil, exceptions.ErrReviewRequestNotClaimable(errors.New("review request changed before it was claimed"), request.ReviewRequestID)
	}

	duration := request.Duration
	if duration <= 0 {
		duration = constvars.AppointmentDefaultDurationInMinutes
	}
	appointment := &models.Appointment{
		ID:              primitive.NewObjectID(),
		ReviewRequestID: request.ReviewRequestID,
		DoctorID:        reviewRequest.DoctorID,
		PatientID:       reviewRequest.PatientID,
		PatientName:     reviewRequest.PatientName,
		DoctorName:      doctorProfile.FullName,
		ScheduledDate:   request.ScheduledDate.UTC(),
		Duration:        duration,
		Status:          constvars.AppointmentStatusScheduled,
		ConsultationFee: doctorProfile.ConsultationFee,
		PaymentStatus:   constvars.PaymentStatusPending,
	}
	appointment.SetCreatedAtUpdatedAt(now)

	room, err := uc.VideoRoomProvider.CreateRoom(ctx, appointment.ID.Hex(), appointment.ScheduledDate, appointment.CallDuration())
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateFromReviewRequest error calling VideoRoomProvider.CreateRoom",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.releaseApproval(ctx, request.ReviewRequestID, previous)
		return nil, err
	}
	appointment.DailyRoomURL = room.URL
	appointment.DailyRoomName = room.Name

	if err := uc.AppointmentRepository.Create(ctx, appointment); err != nil {
		uc.Log.Error("appointmentUsecase.CreateFromReviewRequest error calling AppointmentRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoomNameKey, room.Name),
			zap.Error(err),
		)
		if deleteErr := uc.VideoRoomProvider.DeleteRoom(context.WithoutCancel(ctx), room.Name); deleteErr != nil {
			uc.Log.Warn("appointmentUsecase.CreateFromReviewRequest failed to delete orphaned room",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRoomNameKey, room.Name),
				zap.Error(deleteErr),
			)
		}
		uc.releaseApproval(ctx, request.ReviewRequestID, previous)
		return nil, err
	}

	scheduledDate := appointment.ScheduledDate
	notifier.Notify(ctx, uc.NotificationPublisher, uc.Log, contracts.NotificationEvent{
		Type:            constvars.EventAppointmentScheduled,
		OccurredAt:      now,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		ReviewRequestID: appointment.ReviewRequestID,
		AppointmentID:   appointment.ID.Hex(),
		Status:          appointment.Status,
		ScheduledDate:   &scheduledDate,
	})

	uc.Log.Info("appointmentUsecase.CreateFromReviewRequest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		zap.String(constvars.LoggingRoomNameKey, appointment.DailyRoomName),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) releaseApproval(ctx context.Context, reviewRequestID string, previous *models.ReviewRequest) {
	if err := uc.ReviewRequestRepository.ReleaseApproval(context.WithoutCancel(ctx), reviewRequestID, previous); err != nil {
		uc.Log.Error("appointmentUsecase.CreateFromReviewRequest failed to restore review request",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingReviewRequestIDKey, reviewRequestID),
			zap.String(constvars.LoggingPreviousStatusKey, previous.Status),
			zap.Error(err),
		)
	}
}

func (uc *appointmentUsecase) ListForDoctor(ctx context.Context, request *requests.ListDoctorAppointments) (*responses.AppointmentList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.ListForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	if request.CallerID != request.DoctorID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the doctor"), request.CallerID, constvars.ResourceAppointment)
	}

	filter := contracts.AppointmentFilter{DoctorID: request.DoctorID}
	if request.Status != "" && request.Status != constvars.AppointmentStatusAll {
		filter.Statuses = []string{request.Status}
	}
	if date := strings.TrimSpace(request.Date); date != "" {
		day, err := time.Parse(constvars.DateOnlyLayout, date)
		if err != nil {
			return nil, exceptions.ErrCannotParseDate(err, constvars.DateOnlyLayout)
		}
		nextDay := day.AddDate(0, 0, 1)
		filter.ScheduledFrom = &day
		filter.ScheduledTo = &nextDay
	}

	appointments, total, err := uc.AppointmentRepository.List(ctx, filter, request.Pagination)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListForDoctor error calling AppointmentRepository.List",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return &responses.AppointmentList{Appointments: appointments, Total: total}, nil
}

func (uc *appointmentUsecase) UpcomingForDoctor(ctx context.Context, callerID, doctorID string) (*responses.UpcomingCalls, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.UpcomingForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if callerID != doctorID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the doctor"), callerID, constvars.ResourceAppointment)
	}

	now := uc.Clock.Now()
	horizon := now.Add(constvars.AppointmentUpcomingHorizon)
	filter := contracts.AppointmentFilter{
		DoctorID:    doctorID,
		Statuses:    []string{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusInProgress},
		ScheduledTo: &horizon,
		NotEndedAt:  &now,
	}

	appointments, err := uc.AppointmentRepository.FindUpcoming(ctx, filter, constvars.AppointmentUpcomingLimit)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpcomingForDoctor error calling AppointmentRepository.FindUpcoming",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	calls := make([]models.AppointmentWithJoinState, 0, len(appointments))
	for _, appointment := range appointments {
		call := models.NewAppointmentWithJoinState(appointment, now)
		if call.JoinState == models.JoinStateEnded {
			continue
		}
		calls = append(calls, call)
	}
	return &responses.UpcomingCalls{Calls: calls}, nil
}

func (uc *appointmentUsecase) StatsForDoctor(ctx context.Context, callerID, doctorID string) (*models.AppointmentStats, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.StatsForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if callerID != doctorID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the doctor"), callerID, constvars.ResourceAppointment)
	}

	counts, err := uc.AppointmentRepository.CountGroupedByStatus(ctx, doctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.StatsForDoctor error calling AppointmentRepository.CountGroupedByStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	stats := &models.AppointmentStats{
		Scheduled:  counts[constvars.AppointmentStatusScheduled],
		InProgress: counts[constvars.AppointmentStatusInProgress],
		Completed:  counts[constvars.AppointmentStatusCompleted],
		Cancelled:  counts[constvars.AppointmentStatusCancelled],
		NoShow:     counts[constvars.AppointmentStatusNoShow],
	}
	// cancelled and no-show calls never happened
	stats.Total = stats.Scheduled + stats.InProgress + stats.Completed
	return stats, nil
}

func (uc *appointmentUsecase) PatientsCountForDoctor(ctx context.Context, callerID, doctorID string) (*responses.PatientsCount, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.PatientsCountForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if callerID != doctorID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the doctor"), callerID, constvars.ResourceDoctorData)
	}

	count, err := uc.AppointmentRepository.CountDistinctPatients(ctx, doctorID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.PatientsCountForDoctor error calling AppointmentRepository.CountDistinctPatients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return &responses.PatientsCount{Count: count}, nil
}

func (uc *appointmentUsecase) PatientsForDoctor(ctx context.Context, callerID, doctorID string, pagination requests.Pagination) (*responses.DoctorPatientList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.PatientsForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if callerID != doctorID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the doctor"), callerID, constvars.ResourceDoctorData)
	}

	patients, total, err := uc.AppointmentRepository.ListPatientsForDoctor(ctx, doctorID, pagination)
	if err != nil {
		uc.Log.Error("appointmentUsecase.PatientsForDoctor error calling AppointmentRepository.ListPatientsForDoctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return &responses.DoctorPatientList{Patients: patients, Total: total}, nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, callerID, appointmentID string) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	return uc.findForParticipant(ctx, callerID, appointmentID)
}

// Join hands out the call room inside the join window. The first join moves a
// scheduled appointment to in-progress.
func (uc *appointmentUsecase) Join(ctx context.Context, callerID, appointmentID string) (*responses.JoinAppointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Join called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingCallerIDKey, callerID),
	)

	appointment, err := uc.findForParticipant(ctx, callerID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.IsJoinableStatus() {
		return nil, exceptions.ErrAppointmentNotJoinable(errors.New("appointment is closed"), appointmentID, appointment.Status)
	}

	now := uc.Clock.Now()
	window := appointment.JoinWindow(now)
	switch {
	case window.State == models.JoinStateTooEarly:
		return nil, exceptions.ErrCallRoomNotYetAvailable(errors.New("join window not open"), window.OpensAt.Format(time.RFC3339))
	case window.HasEnded():
		return nil, exceptions.ErrAppointmentEnded(errors.New("join window closed"), window.ClosesAt.Format(time.RFC3339))
	}

	if appointment.Status == constvars.AppointmentStatusScheduled {
		appointment, err = uc.startCall(ctx, appointment, now)
		if err != nil {
			return nil, err
		}
	}

	uc.Log.Info("appointmentUsecase.Join succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, appointment.Status),
	)
	return &responses.JoinAppointment{
		RoomURL:     appointment.DailyRoomURL,
		RoomName:    appointment.DailyRoomName,
		Appointment: *appointment,
	}, nil
}

func (uc *appointmentUsecase) startCall(ctx context.Context, appointment *models.Appointment, now time.Time) (*models.Appointment, error) {
	appointmentID := appointment.ID.Hex()
	flipped, err := uc.AppointmentRepository.MarkInProgress(ctx, appointmentID, now)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Join error calling AppointmentRepository.MarkInProgress",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	if flipped {
		appointment.Status = constvars.AppointmentStatusInProgress
		appointment.SetUpdatedAt(now)
		uc.notifyStatusChanged(ctx, appointment, constvars.AppointmentStatusScheduled, now)
		return appointment, nil
	}

	// another join or a status update got there first
	current, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrAppointmentNotFound(errors.New("appointment disappeared"))
	}
	if !current.IsJoinableStatus() {
		return nil, exceptions.ErrAppointmentNotJoinable(errors.New("appointment closed concurrently"), appointmentID, current.Status)
	}
	return current, nil
}

func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, request *requests.UpdateAppointmentStatus) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	existing, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrAppointmentNotFound(errors.New("appointment does not exist"))
	}
	if !existing.IsDoctor(request.CallerID) {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the doctor of the appointment"), request.CallerID, constvars.ResourceAppointment)
	}
	if !existing.CanTransitionTo(request.Status) {
		return nil, exceptions.ErrAppointmentStatusTransition(errors.New("status transition not allowed"), request.AppointmentID, existing.Status, request.Status)
	}

	now := uc.Clock.Now()
	updated, err := uc.AppointmentRepository.UpdateStatus(ctx, request.AppointmentID, existing.Status, request.Status, strings.TrimSpace(request.MeetingNotes), now)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateStatus error calling AppointmentRepository.UpdateStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrAppointmentStatusTransition(errors.New("status changed concurrently"), request.AppointmentID, existing.Status, request.Status)
	}

	if updated.Status != existing.Status {
		uc.notifyStatusChanged(ctx, updated, existing.Status, now)
	}

	uc.Log.Info("appointmentUsecase.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPreviousStatusKey, existing.Status),
		zap.String(constvars.LoggingStatusKey, updated.Status),
	)
	return updated, nil
}

func (uc *appointmentUsecase) findForParticipant(ctx context.Context, callerID, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(errors.New("appointment does not exist"))
	}
	if !appointment.IsParticipant(callerID) {
		return nil, exceptions.ErrForbidden(errors.New("caller is not a participant"), callerID, constvars.ResourceAppointment)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) notifyStatusChanged(ctx context.Context, appointment *models.Appointment, previousStatus string, now time.Time) {
	notifier.Notify(ctx, uc.NotificationPublisher, uc.Log, contracts.NotificationEvent{
		Type:            constvars.EventAppointmentStatusChanged,
		OccurredAt:      now,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		ReviewRequestID: appointment.ReviewRequestID,
		AppointmentID:   appointment.ID.Hex(),
		Status:          appointment.Status,
		Attributes:      map[string]string{constvars.LoggingPreviousStatusKey: previousStatus},
	})
}
