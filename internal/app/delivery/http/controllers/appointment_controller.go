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

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	onceAppointmentController.Do(func() {
		instance := &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
		}
		appointmentControllerInstance = instance
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) CreateFromReviewRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	ctrl.Log.Debug("Appointment scheduling started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEndpointKey, r.URL.Path),
		zap.String(constvars.LoggingMethodKey, r.Method),
	)

	request := new(requests.CreateAppointmentFromRequest)
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

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("Appointment request validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "validation"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// Room creation at the video provider shares this budget.
	ctx, cancel := context.WithTimeout(r.Context(), 2*usecaseTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.CreateFromReviewRequest(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to schedule appointment", start, err)
		return
	}

	ctrl.Log.Info("Appointment scheduled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
		zap.String(constvars.LoggingReviewRequestIDKey, request.ReviewRequestID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentScheduledMessage, appointment)
}

func (ctrl *AppointmentController) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	query := r.URL.Query()
	request := &requests.ListDoctorAppointments{
		CallerID:   user.UserID,
		DoctorID:   chi.URLParam(r, constvars.URLParamDoctorID),
		Status:     query.Get(constvars.QueryParamStatus),
		Date:       query.Get(constvars.QueryParamDate),
		Pagination: utils.BuildPaginationRequest(r, constvars.AppDefaultPageSize),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ListForDoctor(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to list doctor appointments", start, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, request.Pagination.Page, request.Pagination.PageSize, paginationBaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.AppointmentsFoundMessage, pagination, result)
}

func (ctrl *AppointmentController) UpcomingForDoctor(w http.ResponseWriter, r *http.Request) {
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

	calls, err := ctrl.AppointmentUsecase.UpcomingForDoctor(ctx, user.UserID, chi.URLParam(r, constvars.URLParamDoctorID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to list upcoming appointments", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentsFoundMessage, calls)
}

func (ctrl *AppointmentController) StatsForDoctor(w http.ResponseWriter, r *http.Request) {
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

	stats, err := ctrl.AppointmentUsecase.StatsForDoctor(ctx, user.UserID, chi.URLParam(r, constvars.URLParamDoctorID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to count appointments", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentStatsFoundMessage, stats)
}

func (ctrl *AppointmentController) PatientsCountForDoctor(w http.ResponseWriter, r *http.Request) {
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

	count, err := ctrl.AppointmentUsecase.PatientsCountForDoctor(ctx, user.UserID, chi.URLParam(r, constvars.URLParamDoctorID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to count doctor patients", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentPatientsCountMessage, count)
}

func (ctrl *AppointmentController) PatientsForDoctor(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	pagination := utils.BuildPaginationRequest(r, constvars.AppointmentPatientsDefaultPageSize)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.PatientsForDoctor(ctx, user.UserID, chi.URLParam(r, constvars.URLParamDoctorID), pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to list doctor patients", start, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(result.Total, pagination.Page, pagination.PageSize, paginationBaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.AppointmentPatientsFoundMessage, paginationResponse, result)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
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

	appointment, err := ctrl.AppointmentUsecase.FindByID(ctx, user.UserID, chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to find appointment", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFoundMessage, appointment)
}

func (ctrl *AppointmentController) Join(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, constvars.URLParamID)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	joined, err := ctrl.AppointmentUsecase.Join(ctx, user.UserID, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to join appointment", start, err)
		return
	}

	ctrl.Log.Info("Appointment joined",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingCallerIDKey, user.UserID),
		zap.String(constvars.LoggingRoomNameKey, joined.RoomName),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentJoinedMessage, joined)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := new(requests.UpdateAppointmentStatus)
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
	request.AppointmentID = chi.URLParam(r, constvars.URLParamID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.UpdateStatus(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to update appointment status", start, err)
		return
	}

	ctrl.Log.Info("Appointment status updated",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingStatusKey, request.Status),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentUpdatedMessage, appointment)
}
