package middlewares

import (
	"errors"
	"io"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts/mocks"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func newTestMiddlewares(verifier *mocks.IdentityVerifier) *Middlewares {
	return NewMiddlewares(zap.NewNop(), verifier, &config.InternalConfig{
		App: config.App{
			MaxRequests:                1,
			RequestBodyLimitInMegabyte: 1,
		},
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := newTestMiddlewares(nil)

	var seenRequestID string
	handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRequestID = utils.GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("Client supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/doctor/all", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-request-1")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-request-1", seenRequestID)
		assert.Equal(t, "client-request-1", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/doctor/all", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.True(t, strings.HasPrefix(seenRequestID, "MDTR_SVC_"))
		assert.Equal(t, seenRequestID, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestAuthenticate(t *testing.T) {
	verifier := new(mocks.IdentityVerifier)
	middlewares := newTestMiddlewares(verifier)

	var seenUser *models.AuthenticatedUser
	handler := middlewares.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = utils.GetAuthenticatedUser(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	verifier.On("Verify", mock.Anything, "good-token").Return(&models.AuthenticatedUser{UserID: "user_doctor", SessionID: "sess_1"}, nil)
	verifier.On("Verify", mock.Anything, "expired-token").Return(nil, exceptions.ErrTokenInvalidOrExpired(errors.New("token is expired")))

	t.Run("Valid token", func(t *testing.T) {
		seenUser = nil
		req := httptest.NewRequest(http.MethodGet, "/api/doctor/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer good-token")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, seenUser)
		assert.Equal(t, "user_doctor", seenUser.UserID)
	})

	t.Run("Missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/doctor/profile", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, gjson.Get(rr.Body.String(), "success").Bool())
	})

	t.Run("Non bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/doctor/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Basic dXNlcjpwYXNz")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/doctor/profile", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer expired-token")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	verifier.AssertExpectations(t)
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	middlewares := newTestMiddlewares(nil)

	handler := middlewares.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/stats", nil)
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() { handler.ServeHTTP(rr, req) })
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, gjson.Get(rr.Body.String(), "success").Bool())
}

func TestBodyLimit(t *testing.T) {
	middlewares := newTestMiddlewares(nil)

	var readErr error
	handler := middlewares.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/review-requests/create", strings.NewReader(strings.Repeat("a", (1<<20)+1)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytesErr)
}

func TestRateLimitByIP(t *testing.T) {
	middlewares := newTestMiddlewares(nil)

	handler := middlewares.RateLimitByIP()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/doctor/all", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/doctor/all", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
