package controllers

import (
	"context"
	"errors"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const usecaseTimeout = 10 * time.Second

func requestIDFromContext(log *zap.Logger, w http.ResponseWriter, r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		log.Error("Request ID missing from context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	return requestID, true
}

func authenticatedUserFromContext(log *zap.Logger, w http.ResponseWriter, r *http.Request, requestID string) (*models.AuthenticatedUser, bool) {
	user, ok := utils.GetAuthenticatedUser(r.Context())
	if !ok {
		log.Error("Authenticated user missing from context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "authentication"),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingAuthenticatedUser(nil))
		return nil, false
	}
	return user, true
}

// decodeJSONBody reports oversized bodies separately from malformed JSON.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return exceptions.ErrRequestBodyTooLarge(err)
		}
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, requestID, message string, start time.Time, err error) {
	log.Error(message,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingErrorTypeKey, "usecase error"),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(context.DeadlineExceeded))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func paginationBaseURL(r *http.Request) string {
	return r.URL.Path
}
