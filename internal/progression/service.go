package progression

import (
	"context"
	"errors"
	"time"

	"github.com/fitnease/tracking/internal/profile"
	"github.com/fitnease/tracking/internal/telemetry/metrics"
	"github.com/fitnease/tracking/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progression_test

// AdvancedDifficulty is the lowest workout difficulty counted as an advanced workout.
const AdvancedDifficulty = 3

type profileStore interface {
	Snapshot(ctx context.Context, userID int) (*profile.Snapshot, error)
	SetFitnessLevel(ctx context.Context, userID int, level string, updatedAt time.Time) error
	IncrementMetrics(ctx context.Context, userID int, inc profile.MetricsIncrement) error
	UpdateStreak(ctx context.Context, userID int, upd profile.StreakUpdate) error
}

// PromotionListener is notified after a promotion has been written to the profile store.
// Errors are logged by the caller; they never undo or fail the promotion.
type PromotionListener interface {
	OnPromotion(ctx context.Context, event PromotionEvent) error
}

type Trigger string

const (
	TriggerAPI               Trigger = "api"
	TriggerWorkoutCompletion Trigger = "workout_completion"
	TriggerDirect            Trigger = "direct"
)

type PromotionEvent struct {
	ID         string       `json:"id"`
	UserID     int          `json:"user_id"`
	FromLevel  FitnessLevel `json:"from_level"`
	ToLevel    FitnessLevel `json:"to_level"`
	Score      float64      `json:"score"`
	PromotedAt time.Time    `json:"promoted_at"`
	Trigger    Trigger      `json:"trigger"`
}

// WorkoutOutcome describes a finished workout session as far as progression cares.
type WorkoutOutcome struct {
	Completed       bool
	DurationMinutes int
	Difficulty      int
	GroupWorkout    bool
	// WorkoutDate defaults to today.
	WorkoutDate time.Time
	// PreviousWorkoutDate is the date of the user's last completed workout before this one, if any.
	PreviousWorkoutDate *time.Time
}

type PromotionOutcome struct {
	Promoted    bool
	NewLevel    FitnessLevel
	Eligibility EligibilityResult
}

type PromoteFailure string

const (
	PromoteFailureIneligible  PromoteFailure = "ineligible"
	PromoteFailureWriteFailed PromoteFailure = "write_failed"
)

type PromoteResult struct {
	Success     bool
	NewLevel    FitnessLevel
	Eligibility *EligibilityResult
	Reason      PromoteFailure
}

var errInvalidTarget = errors.New("invalid promotion target")

// Service connects the Scorer to the profile store. It keeps no state between calls,
// the profile store is the only source of truth.
type Service struct {
	store     profileStore
	scorer    *Scorer
	metrics   *metrics.Manager
	listeners []PromotionListener
}

func NewService(
	store profileStore,
	scorer *Scorer,
	metricsManager *metrics.Manager,
	listeners ...PromotionListener,
) *Service {
	return &Service{
		store:     store,
		scorer:    scorer,
		metrics:   metricsManager,
		listeners: listeners,
	}
}

// CheckEligibility fetches a fresh snapshot and scores it. Any store failure gives the
// empty ineligible result with Unavailable set.
func (s *Service) CheckEligibility(ctx context.Context, userID int) EligibilityResult {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.checkEligibility")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer span.End()

	snapshot, err := s.store.Snapshot(ctx, userID)
	if err == nil && snapshot == nil {
		err = profile.ErrMalformedSnapshot
	}
	if err != nil {
		log.Errorf("check eligibility for user %d, fetch profile snapshot: %s", userID, err)
		span.RecordError(err)
		s.metrics.CounterProfileStoreErrors.WithLabelValues("snapshot").Inc()
		s.metrics.CounterEligibilityChecks.WithLabelValues("unavailable").Inc()
		return unavailableResult()
	}

	result := s.scorer.Evaluate(*snapshot)
	span.SetAttributes(
		attribute.String("fitness_level.target", result.TargetLevel.String()),
		attribute.Bool("eligible", result.Eligible),
		attribute.Float64("score", result.Score),
	)

	switch {
	case result.Eligible:
		s.metrics.CounterEligibilityChecks.WithLabelValues("eligible").Inc()
	case result.TargetLevel == LevelNone && ParseLevel(snapshot.FitnessLevel) == LevelNone:
		s.metrics.CounterEligibilityChecks.WithLabelValues("unknown_level").Inc()
	case result.TargetLevel == LevelNone:
		s.metrics.CounterEligibilityChecks.WithLabelValues("max_level").Inc()
	default:
		s.metrics.CounterEligibilityChecks.WithLabelValues("ineligible").Inc()
	}

	return result
}

// Promote writes the target level with a fresh tier timestamp. It does not check
// eligibility, callers have to do that right before.
func (s *Service) Promote(ctx context.Context, userID int, target FitnessLevel) bool {
	from, ok := PreviousLevel(target)
	if !ok {
		log.Errorf("promote user %d to [%s]: %s", userID, target, errInvalidTarget)
		return false
	}
	return s.promote(ctx, userID, from, target, 0, TriggerDirect)
}

func (s *Service) promote(
	ctx context.Context,
	userID int,
	from, target FitnessLevel,
	score float64,
	trigger Trigger,
) bool {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.promote")
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("fitness_level.target", target.String()),
		attribute.String("trigger", string(trigger)),
	)
	defer span.End()

	promotedAt := s.scorer.Now().UTC()
	if err := s.store.SetFitnessLevel(ctx, userID, target.String(), promotedAt); err != nil {
		log.Errorf("failed to promote user %d to %s: %s", userID, target, err)
		span.RecordError(err)
		s.metrics.CounterProfileStoreErrors.WithLabelValues("set_fitness_level").Inc()
		s.metrics.CounterPromotionFailures.Inc()
		return false
	}

	log.Infof("user %d promoted %s -> %s [trigger: %s, score: %.2f]", userID, from, target, trigger, score)
	s.metrics.CounterPromotions.WithLabelValues(target.String(), string(trigger)).Inc()

	s.notify(ctx, PromotionEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		FromLevel:  from,
		ToLevel:    target,
		Score:      score,
		PromotedAt: promotedAt,
		Trigger:    trigger,
	})

	return true
}

func (s *Service) notify(ctx context.Context, event PromotionEvent) {
	for _, listener := range s.listeners {
		if err := listener.OnPromotion(ctx, event); err != nil {
			log.Errorf("promotion listener %T, event %s for user %d: %s", listener, event.ID, event.UserID, err)
		}
	}
}

// AccumulateMetrics adds a workout to the user's progression counters in a single
// request. Failures are logged and otherwise ignored.
func (s *Service) AccumulateMetrics(ctx context.Context, userID int, outcome WorkoutOutcome) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.accumulateMetrics")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer span.End()

	workoutDate := outcome.WorkoutDate
	if workoutDate.IsZero() {
		workoutDate = s.scorer.Now()
	}

	inc := profile.MetricsIncrement{
		IncrementWorkouts:         outcome.Completed,
		AddMinutes:                max(outcome.DurationMinutes, 0),
		IncrementAdvancedWorkouts: outcome.Difficulty >= AdvancedDifficulty,
		IncrementGroupWorkouts:    outcome.GroupWorkout,
		LastWorkoutDate:           workoutDate.UTC().Format(time.DateOnly),
	}

	if err := s.store.IncrementMetrics(ctx, userID, inc); err != nil {
		log.Errorf("failed to update progression metrics for user %d %+v: %s", userID, inc, err)
		span.RecordError(err)
		s.metrics.CounterProfileStoreErrors.WithLabelValues("increment_metrics").Inc()
	}
}

// UpdateStreak extends the streak for a workout on the day after the previous one and
// resets it after a gap. Workouts on the same day leave it untouched.
func (s *Service) UpdateStreak(ctx context.Context, userID int, lastWorkoutDate, currentWorkoutDate time.Time) {
	var upd profile.StreakUpdate
	switch daysBetween(lastWorkoutDate, currentWorkoutDate) {
	case 0:
		return
	case 1:
		upd.IncrementStreak = true
	default:
		if currentWorkoutDate.Before(lastWorkoutDate) {
			log.Warnf("update streak for user %d: workout date %s before last workout %s",
				userID, currentWorkoutDate.Format(time.DateOnly), lastWorkoutDate.Format(time.DateOnly))
			return
		}
		upd.ResetStreak = true
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.updateStreak")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer span.End()

	if err := s.store.UpdateStreak(ctx, userID, upd); err != nil {
		log.Errorf("failed to update streak for user %d: %s", userID, err)
		span.RecordError(err)
		s.metrics.CounterProfileStoreErrors.WithLabelValues("update_streak").Inc()
	}
}

// HandleWorkoutCompleted runs the auto-promotion flow for a finished workout:
// counters first, then a fresh check, then the promotion itself when eligible.
func (s *Service) HandleWorkoutCompleted(ctx context.Context, userID int, outcome WorkoutOutcome) PromotionOutcome {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progression.workoutCompleted")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer span.End()

	if outcome.WorkoutDate.IsZero() {
		outcome.WorkoutDate = s.scorer.Now()
	}

	s.AccumulateMetrics(ctx, userID, outcome)
	if outcome.PreviousWorkoutDate != nil {
		s.UpdateStreak(ctx, userID, *outcome.PreviousWorkoutDate, outcome.WorkoutDate)
	}

	eligibility := s.CheckEligibility(ctx, userID)
	if !eligibility.Eligible {
		return PromotionOutcome{Eligibility: eligibility}
	}

	from, _ := PreviousLevel(eligibility.TargetLevel)
	if !s.promote(ctx, userID, from, eligibility.TargetLevel, eligibility.Score, TriggerWorkoutCompletion) {
		return PromotionOutcome{Eligibility: eligibility}
	}

	return PromotionOutcome{
		Promoted:    true,
		NewLevel:    eligibility.TargetLevel,
		Eligibility: eligibility,
	}
}

// PromoteIfEligible re-checks eligibility and promotes to the next tier when it passes.
func (s *Service) PromoteIfEligible(ctx context.Context, userID int) PromoteResult {
	eligibility := s.CheckEligibility(ctx, userID)
	if !eligibility.Eligible {
		return PromoteResult{
			Eligibility: &eligibility,
			Reason:      PromoteFailureIneligible,
		}
	}

	from, _ := PreviousLevel(eligibility.TargetLevel)
	if !s.promote(ctx, userID, from, eligibility.TargetLevel, eligibility.Score, TriggerAPI) {
		return PromoteResult{
			Eligibility: &eligibility,
			Reason:      PromoteFailureWriteFailed,
		}
	}

	return PromoteResult{
		Success:  true,
		NewLevel: eligibility.TargetLevel,
	}
}

func (s *Service) Progress(ctx context.Context, userID int) ProgressReport {
	return NewProgressReport(s.CheckEligibility(ctx, userID))
}

func (s *Service) CalculateProfileCompleteness(fields map[string]any) int {
	return ProfileCompleteness(fields)
}

// daysBetween counts UTC calendar days from a to b, ignoring the time of day.
func daysBetween(a, b time.Time) int {
	a, b = a.UTC(), b.UTC()
	dateA := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	dateB := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(dateB.Sub(dateA).Hours() / 24)
}
