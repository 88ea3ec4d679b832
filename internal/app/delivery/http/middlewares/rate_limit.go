package middlewares

import (
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitByIP limits every client address to MaxRequests per second.
func (m *Middlewares) RateLimitByIP() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRateLimitExceeded(nil, constvars.ResourceClientAddress))
		}),
	)
}
