package clerk

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// sessionClaims are the claims Clerk puts in a session token.
type sessionClaims struct {
	SessionID       string `json:"sid"`
	AuthorizedParty string `json:"azp,omitempty"`
	OrgID           string `json:"org_id,omitempty"`
	jwt.RegisteredClaims
}

type clerkVerifier struct {
	publicKey         *rsa.PublicKey
	authorizedParties map[string]struct{}
	leeway            time.Duration
	clock             clock.Clock
	Log               *zap.Logger
}

// NewClerkVerifier verifies session tokens locally against the instance PEM
// public key, without calling Clerk.
func NewClerkVerifier(internalConfig *config.InternalConfig, clk clock.Clock, logger *zap.Logger) (contracts.IdentityVerifier, error) {
	pemKey := strings.TrimSpace(internalConfig.Clerk.JWTKey)
	// keys set through env files often carry escaped newlines
	pemKey = strings.ReplaceAll(pemKey, `\n`, "\n")

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constvars.ErrDevAuthPublicKeyInvalid, err)
	}

	authorizedParties := make(map[string]struct{})
	for _, party := range utils.SplitCommaSeparated(internalConfig.Clerk.AuthorizedParties) {
		authorizedParties[party] = struct{}{}
	}

	return &clerkVerifier{
		publicKey:         publicKey,
		authorizedParties: authorizedParties,
		leeway:            time.Duration(internalConfig.Clerk.ClockSkewInSeconds) * time.Second,
		clock:             clk,
		Log:               logger,
	}, nil
}

func (v *clerkVerifier) Verify(ctx context.Context, token string) (*models.AuthenticatedUser, error) {
	requestID := utils.GetRequestID(ctx)

	if token == "" {
		return nil, exceptions.ErrTokenMissing(errors.New("empty token"))
	}

	claims := &sessionClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.publicKey, nil
	})
	if err != nil {
		v.Log.Info("clerkVerifier.Verify rejected token signature",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	if err := v.validateTimes(claims); err != nil {
		v.Log.Info("clerkVerifier.Verify rejected token lifetime",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	if claims.Subject == "" {
		return nil, exceptions.ErrTokenSubjectMissing(errors.New("sub claim is empty"))
	}

	if len(v.authorizedParties) > 0 {
		if _, ok := v.authorizedParties[claims.AuthorizedParty]; !ok {
			v.Log.Info("clerkVerifier.Verify rejected authorized party",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("azp", claims.AuthorizedParty),
			)
			return nil, exceptions.ErrTokenUnauthorizedParty(fmt.Errorf("azp %q not allowed", claims.AuthorizedParty))
		}
	}

	return &models.AuthenticatedUser{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		OrgID:     claims.OrgID,
	}, nil
}

// validateTimes checks exp and nbf against the injected clock with leeway.
func (v *clerkVerifier) validateTimes(claims *sessionClaims) error {
	now := v.clock.Now()
	if claims.ExpiresAt == nil {
		return errors.New("exp claim missing")
	}
	if now.After(claims.ExpiresAt.Time.Add(v.leeway)) {
		return jwt.ErrTokenExpired
	}
	if claims.NotBefore != nil && now.Add(v.leeway).Before(claims.NotBefore.Time) {
		return jwt.ErrTokenNotValidYet
	}
	if claims.IssuedAt != nil && now.Add(v.leeway).Before(claims.IssuedAt.Time) {
		return jwt.ErrTokenUsedBeforeIssued
	}
	return nil
}
