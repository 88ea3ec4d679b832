package patients

import (
	"context"
	"errors"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository       contracts.PatientRepository
	DoctorProfileRepository contracts.DoctorProfileRepository
	ReviewRequestRepository contracts.ReviewRequestRepository
	AppointmentRepository   contracts.AppointmentRepository
	MedicalReportStorage    contracts.MedicalReportStorage
	Clock                   clock.Clock
	Log                     *zap.Logger
}

var (
	patientUsecaseInstance contracts.PatientUsecase
	oncePatientUsecase     sync.Once
)

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	doctorProfileRepository contracts.DoctorProfileRepository,
	reviewRequestRepository contracts.ReviewRequestRepository,
	appointmentRepository contracts.AppointmentRepository,
	medicalReportStorage contracts.MedicalReportStorage,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.PatientUsecase {
	oncePatientUsecase.Do(func() {
		patientUsecaseInstance = newPatientUsecase(
			patientRepository,
			doctorProfileRepository,
			reviewRequestRepository,
			appointmentRepository,
			medicalReportStorage,
			clk,
			logger,
		)
	})
	return patientUsecaseInstance
}

func newPatientUsecase(
	patientRepository contracts.PatientRepository,
	doctorProfileRepository contracts.DoctorProfileRepository,
	reviewRequestRepository contracts.ReviewRequestRepository,
	appointmentRepository contracts.AppointmentRepository,
	medicalReportStorage contracts.MedicalReportStorage,
	clk clock.Clock,
	logger *zap.Logger,
) *patientUsecase {
	return &patientUsecase{
		PatientRepository:       patientRepository,
		DoctorProfileRepository: doctorProfileRepository,
		ReviewRequestRepository: reviewRequestRepository,
		AppointmentRepository:   appointmentRepository,
		MedicalReportStorage:    medicalReportStorage,
		Clock:                   clk,
		Log:                     logger,
	}
}

func (uc *patientUsecase) UpsertProfile(ctx context.Context, request *requests.UpsertPatientProfile) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.UpsertProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.ClerkUserID),
		zap.Int(constvars.LoggingCountKey, len(request.MedicalReports)),
	)

	if err := validateMedicalReports(request.MedicalReports); err != nil {
		uc.Log.Error("patientUsecase.UpsertProfile rejected medical reports",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	patient, err := buildPatient(request)
	if err != nil {
		return nil, err
	}

	now := uc.Clock.Now()
	patient.IsProfileComplete = true
	patient.SetCreatedAtUpdatedAt(now)

	reports, err := uc.storeMedicalReports(ctx, request, now)
	if err != nil {
		return nil, err
	}

	saved, err := uc.PatientRepository.Upsert(ctx, patient, reports)
	if err != nil {
		uc.Log.Error("patientUsecase.UpsertProfile error calling PatientRepository.Upsert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.discardMedicalReports(ctx, reports)
		return nil, err
	}

	uc.Log.Info("patientUsecase.UpsertProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, saved.ClerkUserID),
		zap.Int(constvars.LoggingCountKey, len(saved.MedicalReports)),
	)
	return saved, nil
}

func (uc *patientUsecase) FindProfile(ctx context.Context, request *requests.FindPatientProfile) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.FindProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCallerIDKey, request.CallerID),
		zap.String(constvars.LoggingPatientIDKey, request.ClerkUserID),
	)

	allowed, err := uc.canViewPatient(ctx, request.CallerID, request.ClerkUserID)
	if err != nil {
		uc.Log.Error("patientUsecase.FindProfile error checking access",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !allowed {
		return nil, exceptions.ErrForbidden(errors.New("caller has no relationship with patient"), request.CallerID, constvars.ResourcePatientProfile)
	}

	patient, err := uc.PatientRepository.FindByClerkUserID(ctx, request.ClerkUserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientProfileNotFound(errors.New("patient profile does not exist"))
	}
	return patient, nil
}

func (uc *patientUsecase) FindProfileStatus(ctx context.Context, request *requests.FindPatientProfile) (*models.PatientProfileStatus, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.FindProfileStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.ClerkUserID),
	)

	if request.CallerID != request.ClerkUserID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the patient"), request.CallerID, constvars.ResourcePatientProfile)
	}

	patient, err := uc.PatientRepository.FindByClerkUserID(ctx, request.ClerkUserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return &models.PatientProfileStatus{}, nil
	}
	return &models.PatientProfileStatus{Exists: true, IsComplete: patient.IsProfileComplete}, nil
}

func (uc *patientUsecase) ListAppointments(ctx context.Context, request *requests.ListPatientAppointments) (*responses.AppointmentList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	if request.CallerID != request.PatientID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the patient"), request.CallerID, constvars.ResourceAppointment)
	}

	filter := contracts.AppointmentFilter{PatientID: request.PatientID}
	if request.Status != "" && request.Status != constvars.AppointmentStatusAll {
		filter.Statuses = []string{request.Status}
	}

	appointments, total, err := uc.AppointmentRepository.List(ctx, filter, request.Pagination)
	if err != nil {
		uc.Log.Error("patientUsecase.ListAppointments error calling AppointmentRepository.List",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return &responses.AppointmentList{Appointments: appointments, Total: total}, nil
}

// ListUpcomingCalls returns calls whose join window has not ended yet.
func (uc *patientUsecase) ListUpcomingCalls(ctx context.Context, callerID, patientID string) (*responses.UpcomingCalls, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.ListUpcomingCalls called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if callerID != patientID {
		return nil, exceptions.ErrForbidden(errors.New("caller is not the patient"), callerID, constvars.ResourceAppointment)
	}

	now := uc.Clock.Now()
	filter := contracts.AppointmentFilter{
		PatientID:  patientID,
		Statuses:   []string{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusInProgress},
		NotEndedAt: &now,
	}

	appointments, err := uc.AppointmentRepository.FindUpcoming(ctx, filter, 0)
	if err != nil {
		uc.Log.Error("patientUsecase.ListUpcomingCalls error calling AppointmentRepository.FindUpcoming",
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

func (uc *patientUsecase) FindDoctorPublicProfile(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.FindDoctorPublicProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	profile, err := uc.DoctorProfileRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrDoctorProfileNotFound(errors.New("doctor profile does not exist"))
	}
	public := profile.Public()
	return &public, nil
}

// canViewPatient allows the patient and any doctor that has a review request
// or appointment with them.
func (uc *patientUsecase) canViewPatient(ctx context.Context, callerID, patientID string) (bool, error) {
	if callerID == "" {
		return false, nil
	}
	if callerID == patientID {
		return true, nil
	}

	related, err := uc.ReviewRequestRepository.ExistsForDoctorAndPatient(ctx, callerID, patientID)
	if err != nil || related {
		return related, err
	}
	return uc.AppointmentRepository.ExistsForDoctorAndPatient(ctx, callerID, patientID)
}

func (uc *patientUsecase) storeMedicalReports(ctx context.Context, request *requests.UpsertPatientProfile, now time.Time) ([]models.MedicalReport, error) {
	requestID := utils.GetRequestID(ctx)
	reports := make([]models.MedicalReport, 0, len(request.MedicalReports))

	for _, header := range request.MedicalReports {
		fileName := utils.GenerateMedicalReportFileName(header.Filename, now)
		contentType := medicalReportContentType(header)

		file, err := header.Open()
		if err != nil {
			uc.discardMedicalReports(ctx, reports)
			return nil, exceptions.ErrCannotParseMultipartForm(err)
		}

		filePath, err := uc.MedicalReportStorage.Save(ctx, request.ClerkUserID, fileName, contentType, header.Size, file)
		file.Close()
		if err != nil {
			uc.Log.Error("patientUsecase.UpsertProfile error calling MedicalReportStorage.Save",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingFileNameKey, fileName),
				zap.Error(err),
			)
			uc.discardMedicalReports(ctx, reports)
			return nil, err
		}

		uc.Log.Info("patientUsecase.UpsertProfile stored medical report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, fileName),
			zap.Int64(constvars.LoggingFileSizeKey, header.Size),
		)
		reports = append(reports, models.MedicalReport{
			FileName:     fileName,
			OriginalName: header.Filename,
			FilePath:     filePath,
			ContentType:  contentType,
			FileSize:     header.Size,
			UploadDate:   now,
		})
	}
	return reports, nil
}

func (uc *patientUsecase) discardMedicalReports(ctx context.Context, reports []models.MedicalReport) {
	for _, report := range reports {
		if err := uc.MedicalReportStorage.Delete(ctx, report.FilePath); err != nil {
			uc.Log.Warn("patientUsecase failed to discard medical report",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingFileNameKey, report.FileName),
				zap.Error(err),
			)
		}
	}
}

func buildPatient(request *requests.UpsertPatientProfile) (*models.Patient, error) {
	dateOfBirth, err := parseDateOfBirth(request.DateOfBirth)
	if err != nil {
		return nil, err
	}

	height, err := parseOptionalFloat(request.Height)
	if err != nil {
		return nil, err
	}
	weight, err := parseOptionalFloat(request.Weight)
	if err != nil {
		return nil, err
	}

	return &models.Patient{
		ClerkUserID:          request.ClerkUserID,
		FirstName:            strings.TrimSpace(request.FirstName),
		LastName:             strings.TrimSpace(request.LastName),
		Email:                strings.ToLower(strings.TrimSpace(request.Email)),
		Phone:                strings.TrimSpace(request.Phone),
		DateOfBirth:          dateOfBirth,
		Gender:               request.Gender,
		Height:               height,
		Weight:               weight,
		BloodGroup:           request.BloodGroup,
		EmergencyContact:     request.EmergencyContact,
		EmergencyPhone:       request.EmergencyPhone,
		Allergies:            request.Allergies,
		CurrentMedications:   request.CurrentMedications,
		PastIllnesses:        request.PastIllnesses,
		SurgicalHistory:      request.SurgicalHistory,
		FamilyMedicalHistory: request.FamilyMedicalHistory,
		SmokingStatus:        request.SmokingStatus,
		DrinkingStatus:       request.DrinkingStatus,
		ExerciseFrequency:    request.ExerciseFrequency,
		DietaryRestrictions:  request.DietaryRestrictions,
	}, nil
}

func parseDateOfBirth(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(constvars.DateOnlyLayout, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseDate(err, constvars.DateOnlyLayout)
	}
	return parsed.UTC(), nil
}

func parseOptionalFloat(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return &parsed, nil
}
