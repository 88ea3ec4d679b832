package doctors

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
	"strings"
	"sync"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorProfileRepository contracts.DoctorProfileRepository
	Clock                   clock.Clock
	Log                     *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorProfileRepository contracts.DoctorProfileRepository,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = newDoctorUsecase(doctorProfileRepository, clk, logger)
	})
	return doctorUsecaseInstance
}

func newDoctorUsecase(doctorProfileRepository contracts.DoctorProfileRepository, clk clock.Clock, logger *zap.Logger) *doctorUsecase {
	return &doctorUsecase{
		DoctorProfileRepository: doctorProfileRepository,
		Clock:                   clk,
		Log:                     logger,
	}
}

func (uc *doctorUsecase) UpsertProfile(ctx context.Context, request *requests.UpsertDoctorProfile) (*models.DoctorProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.UpsertProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	languages := make([]string, 0, len(request.Languages))
	for _, language := range request.Languages {
		languages = append(languages, strings.TrimSpace(language))
	}

	profile := &models.DoctorProfile{
		DoctorID:          request.DoctorID,
		FullName:          strings.TrimSpace(request.FullName),
		Specialization:    request.Specialization,
		Qualification:     strings.TrimSpace(request.Qualification),
		Experience:        *request.Experience,
		ConsultationFee:   *request.ConsultationFee,
		ClinicAddress:     strings.TrimSpace(request.ClinicAddress),
		PhoneNumber:       strings.TrimSpace(request.PhoneNumber),
		Email:             strings.ToLower(strings.TrimSpace(request.Email)),
		Bio:               request.Bio,
		Languages:         languages,
		Availability:      request.Availability,
		IsProfileComplete: true,
	}
	profile.SetCreatedAtUpdatedAt(uc.Clock.Now())

	saved, err := uc.DoctorProfileRepository.Upsert(ctx, profile)
	if err != nil {
		uc.Log.Error("doctorUsecase.UpsertProfile error calling DoctorProfileRepository.Upsert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("doctorUsecase.UpsertProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, saved.DoctorID),
	)
	return saved, nil
}

func (uc *doctorUsecase) FindProfile(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.FindProfile called",
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
	return profile, nil
}

// ListDoctors returns complete profiles with contact details stripped.
func (uc *doctorUsecase) ListDoctors(ctx context.Context, request *requests.ListDoctors) (*responses.DoctorList, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, request.Search),
	)

	profiles, total, err := uc.DoctorProfileRepository.List(ctx, request)
	if err != nil {
		uc.Log.Error("doctorUsecase.ListDoctors error calling DoctorProfileRepository.List",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	doctors := make([]models.DoctorProfile, 0, len(profiles))
	for _, profile := range profiles {
		doctors = append(doctors, profile.Public())
	}

	uc.Log.Info("doctorUsecase.ListDoctors succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(doctors)),
	)
	return &responses.DoctorList{Doctors: doctors, Total: total}, nil
}
