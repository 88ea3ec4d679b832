package controllers

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

var (
	doctorControllerInstance *DoctorController
	onceDoctorController     sync.Once
)

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	onceDoctorController.Do(func() {
		instance := &DoctorController{
			Log:           logger,
			DoctorUsecase: doctorUsecase,
		}
		doctorControllerInstance = instance
	})
	return doctorControllerInstance
}

func (ctrl *DoctorController) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := new(requests.UpsertDoctorProfile)
	if err := decodeJSONBody(r, request); err != nil {
		ctrl.Log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.DoctorID = user.UserID

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("Doctor profile validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "validation"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	profile, err := ctrl.DoctorUsecase.UpsertProfile(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to save doctor profile", start, err)
		return
	}

	ctrl.Log.Info("Doctor profile saved",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, user.UserID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorProfileSavedMessage, profile)
}

func (ctrl *DoctorController) FindProfile(w http.ResponseWriter, r *http.Request) {
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

	profile, err := ctrl.DoctorUsecase.FindProfile(ctx, user.UserID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to find doctor profile", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorProfileFoundMessage, profile)
}

func (ctrl *DoctorController) ListDoctors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	request := &requests.ListDoctors{
		Specialization: strings.TrimSpace(query.Get(constvars.QueryParamSpecialization)),
		Search:         strings.TrimSpace(query.Get(constvars.QueryParamSearch)),
		Pagination:     utils.BuildPaginationRequest(r, constvars.AppDefaultPageSize),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.DoctorUsecase.ListDoctors(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to list doctors", start, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, request.Pagination.Page, request.Pagination.PageSize, paginationBaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.DoctorsFoundMessage, pagination, result)
}
