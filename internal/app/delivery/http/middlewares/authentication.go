package middlewares

import (
	"context"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// Authenticate requires a Clerk session token and stores the verified caller in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		token := utils.ExtractBearerToken(r.Header.Get(constvars.HeaderAuthorization))
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		user, err := m.IdentityVerifier.Verify(r.Context(), token)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate rejected session token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		m.Log.Debug("Middlewares.Authenticate verified caller",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, user.UserID),
		)

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_AUTHENTICATED_USER_KEY, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
