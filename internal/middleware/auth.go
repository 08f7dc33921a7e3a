package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fitnease/tracking/internal/auth"
	"github.com/fitnease/tracking/internal/telemetry/tracing"
	"github.com/fitnease/tracking/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type tokenValidator interface {
	Validate(ctx context.Context, token string) (*auth.User, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type AuthMiddlewareHandler struct {
	validator    tokenValidator
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(validator tokenValidator) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		validator: validator,
		allowedPaths: map[string]bool{
			"/":       true,
			"/health": true,
		},
	}
}

// AuthCheck requires a valid bearer token on every path except the health checks.
// The authenticated user is put into the request context.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSON(w, errorResponse{Error: "No token provided"}, http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			user, err := h.validator.Validate(ctx, token)
			switch {
			case errors.Is(err, auth.ErrInvalidToken):
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSON(w, errorResponse{Error: "Invalid token"}, http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			case err != nil:
				log.Errorf("[failed token validation] => %s: %s", r.URL.Path, err)
				pkg.WriteJSON(w, errorResponse{Error: "Authentication service unavailable"}, http.StatusServiceUnavailable)
				span.SetStatus(codes.Error, "auth-service-unavailable")
				span.RecordError(err)
				return
			}

			span.SetAttributes(attribute.Int("user.id", user.ID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(ctx, user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
