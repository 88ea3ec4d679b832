package middlewares

import (
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log              *zap.Logger
	IdentityVerifier contracts.IdentityVerifier
	InternalConfig   *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, identityVerifier contracts.IdentityVerifier, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:              logger,
		IdentityVerifier: identityVerifier,
		InternalConfig:   internalConfig,
	}
}
