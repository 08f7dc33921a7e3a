package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/fitnease/tracking/internal/auth"
	"github.com/fitnease/tracking/internal/telemetry/metrics"
	"github.com/fitnease/tracking/pkg"

	log "github.com/sirupsen/logrus"
)

type panicResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PanicRecovery turns a handler panic into a 500 JSON response. http.ErrAbortHandler
// is re-raised so net/http can abort the connection.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				fields := log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				}
				if user, ok := auth.UserFromContext(r.Context()); ok {
					fields["user_id"] = user.ID
				}
				log.WithFields(fields).Errorf("panic serving request: %v\n%s", rec, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteJSON(w, panicResponse{Message: "Internal server error"}, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
