package contracts

import (
	"context"
	"medtour-service/internal/app/models"
)

// IdentityVerifier turns a bearer session token into the authenticated caller.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*models.AuthenticatedUser, error)
}
