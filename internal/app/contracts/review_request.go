package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"time"
)

type ReviewRequestRepository interface {
	Create(ctx context.Context, reviewRequest *models.ReviewRequest) (string, error)
	FindByID(ctx context.Context, reviewRequestID string) (*models.ReviewRequest, error)
	ListByDoctor(ctx context.Context, doctorID, status string, pagination requests.Pagination) ([]models.ReviewRequest, int64, error)
	ListByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.ReviewRequest, int64, error)
	CountByDoctorAndStatus(ctx context.Context, doctorID, status string) (int64, error)
	CountGroupedByStatus(ctx context.Context, doctorID string) (map[string]int64, error)
	ExistsForDoctorAndPatient(ctx context.Context, doctorID, patientID string) (bool, error)
	// UpdateReviewStatus changes status and notes unless the request is already approved.
	// It returns nil when no non-approved request matched.
	UpdateReviewStatus(ctx context.Context, reviewRequestID, status, doctorNotes string, reviewedOn time.Time) (*models.ReviewRequest, error)
	// ClaimForApproval atomically moves a pending or reviewed request to approved
	// and returns the request as it was before the claim, or nil when nothing matched.
	ClaimForApproval(ctx context.Context, reviewRequestID string, reviewedOn time.Time) (*models.ReviewRequest, error)
	// ReleaseApproval undoes a claim, restoring the previous status and review time.
	ReleaseApproval(ctx context.Context, reviewRequestID string, previous *models.ReviewRequest) error
	EnsureIndexes(ctx context.Context) error
}

type ReviewRequestUsecase interface {
	Create(ctx context.Context, request *requests.CreateReviewRequest) (*models.ReviewRequest, error)
	ListForDoctor(ctx context.Context, request *requests.ListDoctorReviewRequests) (*responses.ReviewRequestList, error)
	ListForPatient(ctx context.Context, request *requests.ListPatientReviewRequests) (*responses.ReviewRequestList, error)
	Stats(ctx context.Context, callerID, doctorID string) (*models.ReviewRequestStats, error)
	UpdateStatus(ctx context.Context, request *requests.UpdateReviewRequestStatus) (*models.ReviewRequest, error)
	FindByID(ctx context.Context, callerID, reviewRequestID string) (*models.ReviewRequest, error)
}
