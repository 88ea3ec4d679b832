package clerk

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"testing"
	"time"

	"medtour-service/internal/app/config"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type verifierFixture struct {
	privateKey *rsa.PrivateKey
	clock      *clock.ManagedClock
	now        time.Time
}

func newFixture(t *testing.T, authorizedParties string) (*verifierFixture, *clerkVerifier) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	clk := clock.NewManaged(now)

	internalConfig := &config.InternalConfig{
		Clerk: config.AppClerk{
			JWTKey:             string(publicPEM),
			AuthorizedParties:  authorizedParties,
			ClockSkewInSeconds: 5,
		},
	}
	verifier, err := NewClerkVerifier(internalConfig, clk, zap.NewNop())
	require.NoError(t, err)

	return &verifierFixture{privateKey: privateKey, clock: clk, now: now}, verifier.(*clerkVerifier)
}

func (f *verifierFixture) sign(t *testing.T, claims sessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(f.privateKey)
	require.NoError(t, err)
	return token
}

func (f *verifierFixture) validClaims() sessionClaims {
	return sessionClaims{
		SessionID:       "sess_1",
		AuthorizedParty: "http://localhost:3000",
		OrgID:           "org_1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_1",
			IssuedAt:  jwt.NewNumericDate(f.now.Add(-10 * time.Second)),
			NotBefore: jwt.NewNumericDate(f.now.Add(-10 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(f.now.Add(50 * time.Second)),
		},
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok, "expected CustomError, got %T", err)
	return customErr.StatusCode
}

func TestVerifyValidToken(t *testing.T) {
	fixture, verifier := newFixture(t, "")

	user, err := verifier.Verify(context.Background(), fixture.sign(t, fixture.validClaims()))
	require.NoError(t, err)

	assert.Equal(t, "user_1", user.UserID)
	assert.Equal(t, "sess_1", user.SessionID)
	assert.Equal(t, "org_1", user.OrgID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	fixture, verifier := newFixture(t, "")
	token := fixture.sign(t, fixture.validClaims())

	fixture.clock.WarpForward(2 * time.Minute)

	_, err := verifier.Verify(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestVerifyAllowsClockSkew(t *testing.T) {
	fixture, verifier := newFixture(t, "")
	token := fixture.sign(t, fixture.validClaims())

	fixture.clock.WarpForward(53 * time.Second)

	_, err := verifier.Verify(context.Background(), token)
	assert.NoError(t, err)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	_, verifier := newFixture(t, "")
	other, _ := newFixture(t, "")

	_, err := verifier.Verify(context.Background(), other.sign(t, other.validClaims()))
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestVerifyRejectsHMACToken(t *testing.T) {
	fixture, verifier := newFixture(t, "")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, fixture.validClaims()).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyAuthorizedParties(t *testing.T) {
	fixture, verifier := newFixture(t, "https://medtour.example.com, http://localhost:3000")

	claims := fixture.validClaims()
	_, err := verifier.Verify(context.Background(), fixture.sign(t, claims))
	assert.NoError(t, err)

	claims.AuthorizedParty = "https://evil.example.com"
	_, err = verifier.Verify(context.Background(), fixture.sign(t, claims))
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestVerifyRequiresSubject(t *testing.T) {
	fixture, verifier := newFixture(t, "")

	claims := fixture.validClaims()
	claims.Subject = ""
	_, err := verifier.Verify(context.Background(), fixture.sign(t, claims))
	assert.Error(t, err)

	_, err = verifier.Verify(context.Background(), "")
	assert.Error(t, err)
}
