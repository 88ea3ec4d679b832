package reviewRequests

import (
	"context"
	"errors"
	"fmt"
	"medtour-service/internal/app/config"
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

	"go.uber.org/zap"
)

type reviewRequestUsecase struct {
	ReviewRequestRepository contracts.ReviewRequestRepository
	ResourceLimiter         contracts.ResourceLimiter
	NotificationPublisher   contracts.NotificationPublisher
	InternalConfig          *config.InternalConfig
	Clock                   clock.Clock
	Log                     *zap.Logger
}

var (
	reviewRequestUsecaseInstance contracts.ReviewRequestUsecase
	onceReviewRequestUsecase     sync.Once
)

func NewReviewRequestUsecase(
	reviewRequestRepository contracts.ReviewRequestRepository,
	resourceLimiter contracts.ResourceLimiter,
	notificationPublisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.ReviewRequestUsecase {
	onceReviewRequestUsecase.Do(func() {
		reviewRequestUsecaseInstance = newReviewRequestUsecase(
			reviewRequestRepository,
			resourceLimiter,
			notificationPublisher,
			internalConfig,
			clk,
			logger,
		)
	})
	return reviewRequestUsecaseInstance
}

func newReviewRequestUsecase(
	reviewRequestRepository contracts.ReviewRequestRepository,
	resourceLimiter contracts.ResourceLimiter,
	notificationPublisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	clk clock.Clock,
	logger *zap.Logger,
) *reviewRequestUsecase {
	return &reviewRequestUsecase{
		ReviewRequestRepository: reviewRequestRepository,
		ResourceLimiter:         resourceLimiter,
		NotificationPublisher:   notificationPublisher,
		InternalConfig:          internalConfig,
		Clock:                   clk,
		Log:                     logger,
	}
}

func (uc *reviewRequestUsecase) Create(ctx context.Context, request *requests.CreateReviewRequest) (*models.ReviewRequest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reviewRequestUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	if err := uc.checkCreateQuota(ctx, request.PatientID); err != nil {
		return nil, err
	}

	now := uc.Clock.Now()
	reviewRequest := &models.ReviewRequest{
		PatientID:    request.PatientID,
		DoctorID:     strings.TrimSpace(request.DoctorID),
		PatientName:  strings.TrimSpace(request.PatientName),
		PatientEmail: strings.ToLower(strings.TrimSpace(request.PatientEmail)),
		Condition:    strings.TrimSpace(request.Condition),
		Message:      strings.TrimSpace(request.Message),
		Status:       constvars.ReviewRequestStatusPending,
		SubmittedOn:  now,
	}
	reviewRequest.SetCreatedAtUpdatedAt(now)

	reviewRequestID, err := uc.ReviewRequestRepository.Create(ctx, reviewRequest)
	if err != nil {
		uc.Log.Error("reviewRequestUsecase.Create error calling ReviewRequestRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	notifier.Notify(ctx, uc.NotificationPublisher, uc.Log, contracts.NotificationEvent{
		Type:            constvars.EventReviewRequestCreated,
		OccurredAt:      now,
		DoctorID:        reviewRequest.DoctorID,
		PatientID:       reviewRequest.PatientID,
		ReviewRequestID: reviewRequestID,
		Status:          reviewRequest.Status,
	})

	uc.Log.Info("reviewRequestUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewRequestIDKey, reviewRequestID),
	)
	return reviewRequest, nil
}

// checkCreateQuota fails open when the limiter itself is unavailable.
func (uc *reviewRequestUsecase) checkCreateQuota(ctx context.Context, patientID string) error {
	requestID := utils.GetRequestID(ctx)
	quota := uc.InternalConfig.RateLimit.ReviewRequestCreateQuota
	if quota <= 0 || uc.ResourceLimiter == nil {
		return nil
	}
	window := time.Duration(uc.InternalConfig.RateLimit.ReviewRequestCreateWindowInSeconds) * time.Second

	allowed, retryAfter, err := uc.ResourceLimiter.Allow(ctx, constvars.RateLimiterGroupReviewRequestCreate, patientID, quota, window)
	if err != nil {
		uc.Log.Warn("reviewRequestUsecase.Create rate limiter unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil
	}
	if !allowed {
		uc.Log.Warn("reviewRequestUsecase.Create rate limit exceeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Duration(constvars.LoggingDurationKey, retryAfter),
		)
		return exceptions.ErrRateLimitExceeded(
			fmt.Errorf("retry after %s", retryAfter),
			constvars.RateLimiterGroupReviewRequestCreate,
		)
	}
	return nil
}

func (uc *reviewRequestUsecase) ListForDoctor(ctx context.Context, request *requests.ListDoctorReviewRequests) (*responses.ReviewRequestList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reviewRequestUsecase.ListForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	if request.CallerID != request.DoctorID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the doctor"), request.CallerID, constvars.ResourceReviewRequest)
	}

	status := request.Status
	if status == "" {
		status = constvars.ReviewRequestStatusPending
	}

	reviewRequests, total, err := uc.ReviewRequestRepository.ListByDoctor(ctx, request.DoctorID, status, request.Pagination)
	if err != nil {
		uc.Log.Error("reviewRequestUsecase.ListForDoctor error calling ReviewRequestRepository.ListByDoctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	pendingCount, err := uc.ReviewRequestRepository.CountByDoctorAndStatus(ctx, request.DoctorID, constvars.ReviewRequestStatusPending)
	if err != nil {
		uc.Log.Error("reviewRequestUsecase.ListForDoctor error calling ReviewRequestRepository.CountByDoctorAndStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.ReviewRequestList{
		Requests:     reviewRequests,
		PendingCount: pendingCount,
		Total:        total,
	}, nil
}

func (uc *reviewRequestUsecase) ListForPatient(ctx context.Context, request *requests.ListPatientReviewRequests) (*responses.ReviewRequestList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reviewRequestUsecase.ListForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	if request.CallerID != request.PatientID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the patient"), request.CallerID, constvars.ResourceReviewRequest)
	}

	reviewRequests, total, err := uc.ReviewRequestRepository.ListByPatient(ctx, request.PatientID, request.Pagination)
	if err != nil {
		uc.Log.Error("reviewRequestUsecase.ListForPatient error calling ReviewRequestRepository.ListByPatient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return &responses.ReviewRequestList{Requests: reviewRequests, Total: total}, nil
}

func (uc *reviewRequestUsecase) Stats(ctx context.Context, callerID, doctorID string) (*models.ReviewRequestStats, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reviewRequestUsecase.Stats called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if callerID != doctorID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the doctor"), callerID, constvars.ResourceReviewRequest)
	}

	counts, err := uc.ReviewRequestRepository.CountGroupedByStatus(ctx, doctorID)
	if err != nil {
		uc.Log.Error("reviewRequestUsecase.Stats error calling ReviewRequestRepository.CountGroupedByStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	stats := &models.ReviewRequestStats{
		Pending:  counts[constvars.ReviewRequestStatusPending],
		Reviewed: counts[constvars.ReviewRequestStatusReviewed],
		Approved: counts[constvars.ReviewRequestStatusApproved],
		Rejected: counts[constvars.ReviewRequestStatusRejected],
	}
	stats.Total = stats.Pending + stats.Reviewed + stats.Approved + stats.Rejected
	return stats, nil
}

// UpdateStatus records a doctor's review. Approval only happens by scheduling
// an appointment. Approved and rejected requests never change again.
func (uc *reviewRequestUsecase) UpdateStatus(ctx context.Context, request *requests.UpdateReviewRequestStatus) (*models.ReviewRequest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reviewRequestUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewRequestIDKey, request.ReviewRequestID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	if request.Status == constvars.ReviewRequestStatusApproved {
		return nil, exceptions.ErrReviewRequestApproveByPatch(errors.New("approved can only be set by scheduling"))
	}

	existing, err := uc.ReviewRequestRepository.FindByID(ctx, request.ReviewRequestID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrReviewRequestNotFound(errors.New("review request does not exist"))
	}
	if !existing.IsOwnedByDoctor(request.CallerID) {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the assigned doctor"), request.CallerID, constvars.ResourceReviewRequest)
	}
	if existing.Status == constvars.ReviewRequestStatusApproved {
		return nil, exceptions.ErrReviewRequestAlreadyApproved(errors.New("review request is terminal"), request.ReviewRequestID)
	}
	if existing.Status == constvars.ReviewRequestStatusRejected {
		return nil, exceptions.ErrReviewRequestAlreadyRejected(errors.New("review request is terminal"), request.ReviewRequestID)
	}

	now := uc.Clock.Now()
	updated, err := uc.ReviewRequestRepository.UpdateReviewStatus(ctx, request.ReviewRequestID, request.Status, strings.TrimSpace(request.DoctorNotes), now)
	if err != nil {
		uc.Log.Error("reviewRequestUsecase.UpdateStatus error calling ReviewRequestRepository.UpdateReviewStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		// approved or rejected by a concurrent call after the read above
		return nil, exceptions.ErrReviewRequestNotClaimable(errors.New("review request reached a terminal status concurrently"), request.ReviewRequestID)
	}

	notifier.Notify(ctx, uc.NotificationPublisher, uc.Log, contracts.NotificationEvent{
		Type:            constvars.EventReviewRequestStatusChanged,
		OccurredAt:      now,
		DoctorID:        updated.DoctorID,
		PatientID:       updated.PatientID,
		ReviewRequestID: request.ReviewRequestID,
		Status:          updated.Status,
		Attributes:      map[string]string{constvars.LoggingPreviousStatusKey: existing.Status},
	})

	uc.Log.Info("reviewRequestUsecase.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPreviousStatusKey, existing.Status),
		zap.String(constvars.LoggingStatusKey, updated.Status),
	)
	return updated, nil
}

func (uc *reviewRequestUsecase) FindByID(ctx context.Context, callerID, reviewRequestID string) (*models.ReviewRequest, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reviewRequestUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewRequestIDKey, reviewRequestID),
	)

	reviewRequest, err := uc.ReviewRequestRepository.FindByID(ctx, reviewRequestID)
	if err != nil {
		return nil, err
	}
	if reviewRequest == nil {
		return nil, exceptions.ErrReviewRequestNotFound(errors.New("review request does not exist"))
	}
	if !reviewRequest.IsOwnedByDoctor(callerID) && !reviewRequest.IsOwnedByPatient(callerID) {
		return nil, exceptions.ErrForbidden(errors.New("caller is not a party of the review request"), callerID, constvars.ResourceReviewRequest)
	}
	return reviewRequest, nil
}
