package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fitnease/tracking/internal/progression"
	"github.com/fitnease/tracking/internal/telemetry/metrics"
	"github.com/fitnease/tracking/internal/telemetry/tracing"
	"github.com/fitnease/tracking/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

const defaultPageSize = 20

type sessionsRepo interface {
	Add(ctx context.Context, session *Session) (*Session, error)
	Get(ctx context.Context, id int) (*Session, error)
	Update(ctx context.Context, session *Session) (completedNow bool, err error)
	ListForUser(ctx context.Context, userID, page, size int) (_ []Session, total int, err error)
	PreviousCompletedAt(ctx context.Context, userID, excludeSessionID int) (*time.Time, error)
}

type completionHandler interface {
	HandleWorkoutCompleted(ctx context.Context, userID int, outcome progression.WorkoutOutcome) progression.PromotionOutcome
}

type SessionResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    *Session         `json:"data,omitempty"`
	Errors  ValidationErrors `json:"errors,omitempty"`
}

type SessionsPage struct {
	Sessions []Session `json:"sessions"`
	Page     int       `json:"page"`
	Size     int       `json:"size"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo        sessionsRepo
	completions completionHandler
	metrics     *metrics.Manager
}

func NewHandler(repo sessionsRepo, completions completionHandler, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:        repo,
		completions: completions,
		metrics:     metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	trackingRouter := mainRouter.PathPrefix("/api/tracking").Subrouter()
	trackingRouter.HandleFunc("/workout-session", handler.HandleCreate).Methods("POST", "OPTIONS").Name("workout-session-create")
	trackingRouter.HandleFunc("/workout-session/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("workout-session-update")
	trackingRouter.HandleFunc("/workout-sessions/{userId}", handler.HandleListForUser).Methods("GET", "OPTIONS").Name("workout-sessions-list")
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("new workout session, unmarshal json body: %s", err)
		pkg.WriteJSON(w, SessionResponse{Message: "invalid request body"}, http.StatusBadRequest)
		return
	}

	if err := Validate(&session); err != nil {
		writeValidationError(w, err)
		return
	}
	span.SetAttributes(attribute.Int("user.id", session.UserID))

	added, err := handler.repo.Add(ctx, &session)
	if errors.Is(err, ErrSessionRejected) {
		log.Warnf("add workout session for user %d: %s", session.UserID, err)
		pkg.WriteJSON(w, SessionResponse{Message: "Invalid workout session values"}, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		log.Errorf("add workout session for user %d: %s", session.UserID, err)
		pkg.WriteJSON(w, SessionResponse{Message: "Failed to record workout session"}, http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutSessions.With(prometheus.Labels{
		"session_type": string(added.SessionType),
		"completed":    strconv.FormatBool(added.IsCompleted),
	}).Inc()
	log.Debugf("workout session %d added for user %d", added.ID, added.UserID)

	if added.IsCompleted {
		handler.onCompleted(ctx, added)
	}

	pkg.WriteJSON(w, SessionResponse{
		Success: true,
		Message: "Workout session recorded successfully",
		Data:    added,
	}, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "error, session id invalid", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("session.id", id))

	var update SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Errorf("update workout session %d, unmarshal json body: %s", id, err)
		pkg.WriteJSON(w, SessionResponse{Message: "invalid request body"}, http.StatusBadRequest)
		return
	}

	session, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		pkg.WriteJSON(w, SessionResponse{Message: "Workout session not found"}, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get workout session %d: %s", id, err)
		pkg.WriteJSON(w, SessionResponse{Message: "Failed to update workout session"}, http.StatusInternalServerError)
		return
	}

	update.ApplyTo(session)
	if err := Validate(session); err != nil {
		writeValidationError(w, err)
		return
	}

	completedNow, err := handler.repo.Update(ctx, session)
	if errors.Is(err, ErrSessionRejected) {
		log.Warnf("update workout session %d: %s", id, err)
		pkg.WriteJSON(w, SessionResponse{Message: "Invalid workout session values"}, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		log.Errorf("update workout session %d: %s", id, err)
		pkg.WriteJSON(w, SessionResponse{Message: "Failed to update workout session"}, http.StatusInternalServerError)
		return
	}

	if completedNow {
		handler.onCompleted(ctx, session)
	}

	pkg.WriteJSON(w, SessionResponse{
		Success: true,
		Message: "Workout session updated successfully",
		Data:    session,
	}, http.StatusOK)
}

func (handler *Handler) HandleListForUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listForUser")
	defer span.End()

	userID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil || userID <= 0 {
		http.Error(w, "error, user id invalid", http.StatusBadRequest)
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil || size < 1 || size > 100 {
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	sessions, total, err := handler.repo.ListForUser(ctx, userID, page, size)
	if err != nil {
		log.Errorf("list workout sessions for user %d: %s", userID, err)
		http.Error(w, "failed to get workout sessions", http.StatusInternalServerError)
		return
	}

	pkg.WriteData(w, SessionsPage{
		Sessions: sessions,
		Page:     page,
		Size:     size,
		Total:    total,
	})
}

// onCompleted runs the progression workflow for a freshly completed session.
// Nothing here can fail the request.
func (handler *Handler) onCompleted(ctx context.Context, session *Session) {
	previous, err := handler.repo.PreviousCompletedAt(ctx, session.UserID, session.ID)
	if err != nil {
		log.Warnf("previous completed workout for user %d: %s", session.UserID, err)
		previous = nil
	}

	outcome := progression.WorkoutOutcome{
		Completed:           true,
		Difficulty:          1,
		GroupWorkout:        session.SessionType == SessionTypeGroup,
		WorkoutDate:         session.CompletedAt(),
		PreviousWorkoutDate: previous,
	}
	if session.ActualDurationMinutes != nil {
		outcome.DurationMinutes = *session.ActualDurationMinutes
	}
	if session.DifficultyLevel != nil {
		outcome.Difficulty = *session.DifficultyLevel
	}

	result := handler.completions.HandleWorkoutCompleted(ctx, session.UserID, outcome)
	if result.Promoted {
		log.WithFields(log.Fields{
			"user_id":    session.UserID,
			"session_id": session.ID,
			"new_level":  result.NewLevel,
		}).Info("user auto-promoted")
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		pkg.WriteJSON(w, SessionResponse{Message: err.Error()}, http.StatusBadRequest)
		return
	}
	pkg.WriteJSON(w, SessionResponse{
		Message: "Validation failed",
		Errors:  validationErrs,
	}, http.StatusUnprocessableEntity)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
