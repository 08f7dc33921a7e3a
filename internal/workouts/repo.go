package workouts

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/fitnease/tracking/internal/telemetry/tracing"
	"github.com/fitnease/tracking/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Schema creates the workout_session table and its indexes.
//
//go:embed schema.sql
var Schema string

const sessionColumns = `
	session_id, user_id, workout_id, group_id, session_type, start_time, end_time,
	actual_duration_minutes, difficulty_level, is_completed, completion_percentage,
	calories_burned, performance_rating, user_notes, heart_rate_avg, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *Repo) Add(ctx context.Context, session *Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	span.SetAttributes(attribute.Int("user.id", session.UserID))
	defer func() { endSpan(span, err) }()

	err = r.db.QueryRow(ctx, `
		INSERT INTO workout_session (
			user_id, workout_id, group_id, session_type, start_time, end_time,
			actual_duration_minutes, difficulty_level, is_completed, completion_percentage,
			calories_burned, performance_rating, user_notes, heart_rate_avg
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING session_id, created_at, updated_at`,
		session.UserID,
		session.WorkoutID,
		session.GroupID,
		session.SessionType,
		session.StartTime,
		session.EndTime,
		session.ActualDurationMinutes,
		session.DifficultyLevel,
		session.IsCompleted,
		session.CompletionPercentage,
		session.CaloriesBurned,
		session.PerformanceRating,
		session.UserNotes,
		session.HeartRateAvg,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if pkg.IsConstraintViolationError(err) {
		return nil, fmt.Errorf("%w: %w", ErrSessionRejected, err)
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	span.SetAttributes(attribute.Int("session.id", id))
	defer func() { endSpan(span, err) }()

	rows, err := r.db.Query(ctx, `SELECT `+sessionColumns+` FROM workout_session WHERE session_id = $1`, id)
	if err != nil {
		return nil, err
	}

	sessions, err := rows2sessions(rows)
	if err != nil {
		return nil, err
	}
	if len(sessions) != 1 {
		return nil, ErrSessionNotFound
	}

	return &sessions[0], nil
}

// Update writes the mutable fields of the session back and refreshes UpdatedAt.
// completedNow is true only for the call that moved the stored row from not
// completed to completed; concurrent updates of the same session are serialized
// on the row lock, so at most one of them sees the transition.
func (r *Repo) Update(ctx context.Context, session *Session) (completedNow bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	span.SetAttributes(attribute.Int("session.id", session.ID))
	defer func() { endSpan(span, err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("rollback: %w: %w", rollbackErr, err)
			}
			return
		}
		err = tx.Commit(ctx)
		if err != nil {
			completedNow = false
		}
	}()

	var wasCompleted bool
	err = tx.QueryRow(ctx, `
		SELECT is_completed
		FROM workout_session
		WHERE session_id = $1
		FOR UPDATE`,
		session.ID,
	).Scan(&wasCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrSessionNotFound
	}
	if err != nil {
		return false, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE workout_session SET
			end_time = $1,
			actual_duration_minutes = $2,
			is_completed = $3,
			completion_percentage = $4,
			calories_burned = $5,
			performance_rating = $6,
			user_notes = $7,
			heart_rate_avg = $8,
			updated_at = NOW()
		WHERE session_id = $9
		RETURNING updated_at`,
		session.EndTime,
		session.ActualDurationMinutes,
		session.IsCompleted,
		session.CompletionPercentage,
		session.CaloriesBurned,
		session.PerformanceRating,
		session.UserNotes,
		session.HeartRateAvg,
		session.ID,
	).Scan(&session.UpdatedAt)
	if pkg.IsConstraintViolationError(err) {
		return false, fmt.Errorf("%w: %w", ErrSessionRejected, err)
	}
	if err != nil {
		return false, err
	}

	return !wasCompleted && session.IsCompleted, nil
}

// ListForUser returns one page of the user's sessions, newest first, and the user's total session count.
func (r *Repo) ListForUser(ctx context.Context, userID, page, size int) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listForUser")
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("page", page),
		attribute.Int("size", size),
	)
	defer func() { endSpan(span, err) }()

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout_session WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, -1, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE user_id = $1
		ORDER BY created_at DESC, session_id DESC
		LIMIT $2
		OFFSET $3`,
		userID, size, (page-1)*size,
	)
	if err != nil {
		return nil, -1, err
	}

	sessions, err := rows2sessions(rows)
	if err != nil {
		return nil, -1, err
	}

	return sessions, total, nil
}

// PreviousCompletedAt returns when the user last completed a workout, ignoring the given session.
// Nil when the user has no other completed sessions.
func (r *Repo) PreviousCompletedAt(ctx context.Context, userID, excludeSessionID int) (_ *time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.previousCompletedAt")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer func() { endSpan(span, err) }()

	var completedAt time.Time
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(end_time, updated_at) AS completed_at
		FROM workout_session
		WHERE user_id = $1 AND is_completed AND session_id <> $2
		ORDER BY completed_at DESC
		LIMIT 1`,
		userID, excludeSessionID,
	).Scan(&completedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &completedAt, nil
}

func rows2sessions(rows pgx.Rows) ([]Session, error) {
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.WorkoutID,
			&s.GroupID,
			&s.SessionType,
			&s.StartTime,
			&s.EndTime,
			&s.ActualDurationMinutes,
			&s.DifficultyLevel,
			&s.IsCompleted,
			&s.CompletionPercentage,
			&s.CaloriesBurned,
			&s.PerformanceRating,
			&s.UserNotes,
			&s.HeartRateAvg,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
