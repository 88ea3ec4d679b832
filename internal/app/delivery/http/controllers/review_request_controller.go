package controllers

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewRequestController struct {
	Log                  *zap.Logger
	ReviewRequestUsecase contracts.ReviewRequestUsecase
}

var (
	reviewRequestControllerInstance *ReviewRequestController
	onceReviewRequestController     sync.Once
)

func NewReviewRequestController(logger *zap.Logger, reviewRequestUsecase contracts.ReviewRequestUsecase) *ReviewRequestController {
	onceReviewRequestController.Do(func() {
		instance := &ReviewRequestController{
			Log:                  logger,
			ReviewRequestUsecase: reviewRequestUsecase,
		}
		reviewRequestControllerInstance = instance
	})
	return reviewRequestControllerInstance
}

func (ctrl *ReviewRequestController) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := new(requests.CreateReviewRequest)
	if err := decodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.PatientID = user.UserID

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("Review request validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "validation"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	reviewRequest, err := ctrl.ReviewRequestUsecase.Create(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to create review request", start, err)
		return
	}

	ctrl.Log.Info("Review request created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewRequestIDKey, reviewRequest.ID.Hex()),
		zap.String(constvars.LoggingDoctorIDKey, reviewRequest.DoctorID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ReviewRequestCreatedMessage, reviewRequest)
}

func (ctrl *ReviewRequestController) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := &requests.ListDoctorReviewRequests{
		CallerID:   user.UserID,
		DoctorID:   chi.URLParam(r, constvars.URLParamDoctorID),
		Status:     r.URL.Query().Get(constvars.QueryParamStatus),
		Pagination: utils.BuildPaginationRequest(r, constvars.AppDefaultPageSize),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ReviewRequestUsecase.ListForDoctor(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to list doctor review requests", start, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, request.Pagination.Page, request.Pagination.PageSize, paginationBaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ReviewRequestsFoundMessage, pagination, result)
}

func (ctrl *ReviewRequestController) ListForPatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := &requests.ListPatientReviewRequests{
		CallerID:   user.UserID,
		PatientID:  chi.URLParam(r, constvars.URLParamPatientID),
		Pagination: utils.BuildPaginationRequest(r, constvars.AppDefaultPageSize),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ReviewRequestUsecase.ListForPatient(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to list patient review requests", start, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, request.Pagination.Page, request.Pagination.PageSize, paginationBaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ReviewRequestsFoundMessage, pagination, result)
}

func (ctrl *ReviewRequestController) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	stats, err := ctrl.ReviewRequestUsecase.Stats(ctx, user.UserID, chi.URLParam(r, constvars.URLParamDoctorID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to count review requests", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReviewRequestStatsFoundMessage, stats)
}

func (ctrl *ReviewRequestController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := new(requests.UpdateReviewRequestStatus)
	if err := decodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.CallerID = user.UserID
	request.ReviewRequestID = chi.URLParam(r, constvars.URLParamID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	reviewRequest, err := ctrl.ReviewRequestUsecase.UpdateStatus(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to update review request status", start, err)
		return
	}

	ctrl.Log.Info("Review request status updated",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewRequestIDKey, request.ReviewRequestID),
		zap.String(constvars.LoggingStatusKey, request.Status),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReviewRequestUpdatedMessage, reviewRequest)
}

func (ctrl *ReviewRequestController) FindByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	reviewRequest, err := ctrl.ReviewRequestUsecase.FindByID(ctx, user.UserID, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to find review request", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReviewRequestFoundMessage, reviewRequest)
}
