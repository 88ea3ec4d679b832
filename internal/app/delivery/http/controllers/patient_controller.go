package controllers

import (
	"context"
	"errors"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
}

var (
	patientControllerInstance *PatientController
	oncePatientController     sync.Once
)

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase) *PatientController {
	oncePatientController.Do(func() {
		instance := &PatientController{
			Log:            logger,
			PatientUsecase: patientUsecase,
		}
		patientControllerInstance = instance
	})
	return patientControllerInstance
}

func (ctrl *PatientController) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request, err := ctrl.bindProfileRequest(r)
	if err != nil {
		ctrl.Log.Error("Failed to parse patient profile request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "request parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	request.ClerkUserID = user.UserID

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("Patient profile validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "validation"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.UpsertProfile(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to save patient profile", start, err)
		return
	}

	ctrl.Log.Info("Patient profile saved",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, user.UserID),
		zap.Int(constvars.LoggingCountKey, len(request.MedicalReports)),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PatientProfileSavedMessage, patient)
}

// bindProfileRequest accepts the multipart profile form and, for clients
// without attachments, a plain JSON body.
func (ctrl *PatientController) bindProfileRequest(r *http.Request) (*requests.UpsertPatientProfile, error) {
	request := new(requests.UpsertPatientProfile)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(constvars.HeaderContentType))
	if mediaType == constvars.MIMEApplicationJSON {
		if err := decodeJSONBody(r, request); err != nil {
			return nil, err
		}
		return request, nil
	}

	if err := r.ParseMultipartForm(constvars.MedicalReportsMaxMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, exceptions.ErrRequestBodyTooLarge(err)
		}
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	for field := range r.MultipartForm.File {
		if field != constvars.MedicalReportsFormField {
			return nil, exceptions.ErrUploadUnexpectedField(nil, field)
		}
	}

	form := r.MultipartForm.Value
	value := func(key string) string {
		if values := form[key]; len(values) > 0 {
			return values[0]
		}
		return ""
	}

	request.FirstName = value("firstName")
	request.LastName = value("lastName")
	request.Email = value("email")
	request.Phone = value("phone")
	request.DateOfBirth = value("dateOfBirth")
	request.Gender = value("gender")
	request.Height = value("height")
	request.Weight = value("weight")
	request.BloodGroup = value("bloodGroup")
	request.EmergencyContact = value("emergencyContact")
	request.EmergencyPhone = value("emergencyPhone")
	request.Allergies = value("allergies")
	request.CurrentMedications = value("currentMedications")
	request.PastIllnesses = value("pastIllnesses")
	request.SurgicalHistory = value("surgicalHistory")
	request.FamilyMedicalHistory = value("familyMedicalHistory")
	request.SmokingStatus = value("smokingStatus")
	request.DrinkingStatus = value("drinkingStatus")
	request.ExerciseFrequency = value("exerciseFrequency")
	request.DietaryRestrictions = value("dietaryRestrictions")
	request.MedicalReports = r.MultipartForm.File[constvars.MedicalReportsFormField]

	return request, nil
}

func (ctrl *PatientController) FindProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := &requests.FindPatientProfile{
		CallerID:    user.UserID,
		ClerkUserID: chi.URLParam(r, constvars.URLParamClerkUserID),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.FindProfile(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to find patient profile", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientProfileFoundMessage, patient)
}

func (ctrl *PatientController) FindProfileStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := &requests.FindPatientProfile{
		CallerID:    user.UserID,
		ClerkUserID: chi.URLParam(r, constvars.URLParamClerkUserID),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	status, err := ctrl.PatientUsecase.FindProfileStatus(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to find patient profile status", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientProfileStatusFoundMessage, status)
}

func (ctrl *PatientController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	user, ok := authenticatedUserFromContext(ctrl.Log, w, r, requestID)
	if !ok {
		return
	}

	request := &requests.ListPatientAppointments{
		CallerID:   user.UserID,
		PatientID:  chi.URLParam(r, constvars.URLParamUserID),
		Status:     r.URL.Query().Get(constvars.QueryParamStatus),
		Pagination: utils.BuildPaginationRequest(r, constvars.AppDefaultPageSize),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.PatientUsecase.ListAppointments(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to list patient appointments", start, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, request.Pagination.Page, request.Pagination.PageSize, paginationBaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.PatientAppointmentsFoundMessage, pagination, result)
}

func (ctrl *PatientController) ListUpcomingCalls(w http.ResponseWriter, r *http.Request) {
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

	calls, err := ctrl.PatientUsecase.ListUpcomingCalls(ctx, user.UserID, chi.URLParam(r, constvars.URLParamUserID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to list upcoming calls", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientUpcomingCallsFoundMessage, calls)
}

func (ctrl *PatientController) FindDoctorPublicProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFromContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	profile, err := ctrl.PatientUsecase.FindDoctorPublicProfile(ctx, chi.URLParam(r, constvars.URLParamDoctorID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "Failed to find doctor profile", start, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorProfileFoundMessage, profile)
}
