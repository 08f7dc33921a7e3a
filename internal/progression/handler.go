package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fitnease/tracking/internal/middleware"
	"github.com/fitnease/tracking/internal/telemetry/metrics"
	"github.com/fitnease/tracking/internal/telemetry/tracing"
	"github.com/fitnease/tracking/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progression_test

type progressionService interface {
	CheckEligibility(ctx context.Context, userID int) EligibilityResult
	Progress(ctx context.Context, userID int) ProgressReport
	PromoteIfEligible(ctx context.Context, userID int) PromoteResult
}

type PromoteRequest struct {
	UserID *int `json:"user_id"`
}

type PromoteResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	NewLevel    FitnessLevel       `json:"new_level,omitempty"`
	Eligibility *EligibilityResult `json:"eligibility,omitempty"`
}

type Handler struct {
	service progressionService
}

func NewHandler(service progressionService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	promoteAllowedPerMin int,
) {
	progressionRouter := mainRouter.PathPrefix("/api/tracking/progression").Subrouter()
	progressionRouter.HandleFunc("/check/{userId}", handler.HandleCheck).Methods("GET", "OPTIONS").Name("progression-check")
	progressionRouter.HandleFunc("/progress/{userId}", handler.HandleProgress).Methods("GET", "OPTIONS").Name("progression-progress")

	promoteRouter := progressionRouter.PathPrefix("/promote").Subrouter()
	promoteRouter.HandleFunc("", handler.HandlePromote).Methods("POST", "OPTIONS").Name("progression-promote")
	promoteRouter.Use(middleware.RateLimit(rateLimiter, "progression-promote", promoteAllowedPerMin, metricsManager))
}

func (handler *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.check")
	defer span.End()

	userID, err := userIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("user.id", userID))

	pkg.WriteData(w, handler.service.CheckEligibility(ctx, userID))
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.progress")
	defer span.End()

	userID, err := userIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("user.id", userID))

	pkg.WriteData(w, handler.service.Progress(ctx, userID))
}

func (handler *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.promote")
	defer span.End()

	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("promote user, unmarshal json body: %s", err)
		pkg.WriteJSON(w, PromoteResponse{Message: "invalid request body"}, http.StatusBadRequest)
		return
	}
	if req.UserID == nil || *req.UserID <= 0 {
		pkg.WriteJSON(w, PromoteResponse{Message: "user_id is required"}, http.StatusBadRequest)
		return
	}

	userID := *req.UserID
	span.SetAttributes(attribute.Int("user.id", userID))

	result := handler.service.PromoteIfEligible(ctx, userID)
	switch {
	case result.Success:
		pkg.WriteJSON(w, PromoteResponse{
			Success:  true,
			Message:  fmt.Sprintf("User promoted to %s level!", result.NewLevel),
			NewLevel: result.NewLevel,
		}, http.StatusOK)
	case result.Reason == PromoteFailureIneligible:
		pkg.WriteJSON(w, PromoteResponse{
			Message:     "User is not eligible for promotion",
			Eligibility: result.Eligibility,
		}, http.StatusBadRequest)
	default:
		pkg.WriteJSON(w, PromoteResponse{
			Message: "Failed to promote user",
		}, http.StatusInternalServerError)
	}
}

func userIDFromPath(r *http.Request) (int, error) {
	userIDStr := mux.Vars(r)["userId"]
	if userIDStr == "" {
		return 0, fmt.Errorf("error, user id empty")
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("error, user id invalid")
	}
	return userID, nil
}
