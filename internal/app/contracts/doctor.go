package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
)

type DoctorProfileRepository interface {
	FindByDoctorID(ctx context.Context, doctorID string) (*models.DoctorProfile, error)
	Upsert(ctx context.Context, profile *models.DoctorProfile) (*models.DoctorProfile, error)
	List(ctx context.Context, request *requests.ListDoctors) ([]models.DoctorProfile, int64, error)
	EnsureIndexes(ctx context.Context) error
}

type DoctorUsecase interface {
	UpsertProfile(ctx context.Context, request *requests.UpsertDoctorProfile) (*models.DoctorProfile, error)
	FindProfile(ctx context.Context, doctorID string) (*models.DoctorProfile, error)
	ListDoctors(ctx context.Context, request *requests.ListDoctors) (*responses.DoctorList, error)
}
