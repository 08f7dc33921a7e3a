package workouts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrSessionNotFound = errors.New("workout session not found")
	// ErrSessionRejected is returned when the database refuses the values of a session.
	ErrSessionRejected = errors.New("workout session rejected")
)

type SessionType string

const (
	SessionTypeIndividual SessionType = "individual"
	SessionTypeGroup      SessionType = "group"
)

const (
	maxNotesLength = 1000
	minHeartRate   = 50
	maxHeartRate   = 250
)

type Session struct {
	ID                    int         `json:"session_id"`
	UserID                int         `json:"user_id"`
	WorkoutID             int         `json:"workout_id"`
	GroupID               *int        `json:"group_id"`
	SessionType           SessionType `json:"session_type"`
	StartTime             *time.Time  `json:"start_time"`
	EndTime               *time.Time  `json:"end_time"`
	ActualDurationMinutes *int        `json:"actual_duration_minutes"`
	DifficultyLevel       *int        `json:"difficulty_level"`
	IsCompleted           bool        `json:"is_completed"`
	CompletionPercentage  float64     `json:"completion_percentage"`
	CaloriesBurned        *float64    `json:"calories_burned"`
	PerformanceRating     *float64    `json:"performance_rating"`
	UserNotes             *string     `json:"user_notes"`
	HeartRateAvg          *int        `json:"heart_rate_avg"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// CompletedAt is the best known time the session finished.
func (s *Session) CompletedAt() time.Time {
	if s.EndTime != nil {
		return *s.EndTime
	}
	return s.UpdatedAt
}

// SessionUpdate holds the fields a client may change on an existing session. Nil means unchanged.
type SessionUpdate struct {
	EndTime               *time.Time `json:"end_time"`
	ActualDurationMinutes *int       `json:"actual_duration_minutes"`
	IsCompleted           *bool      `json:"is_completed"`
	CompletionPercentage  *float64   `json:"completion_percentage"`
	CaloriesBurned        *float64   `json:"calories_burned"`
	PerformanceRating     *float64   `json:"performance_rating"`
	UserNotes             *string    `json:"user_notes"`
	HeartRateAvg          *int       `json:"heart_rate_avg"`
}

func (u SessionUpdate) ApplyTo(s *Session) {
	if u.EndTime != nil {
		s.EndTime = u.EndTime
	}
	if u.ActualDurationMinutes != nil {
		s.ActualDurationMinutes = u.ActualDurationMinutes
	}
	if u.IsCompleted != nil {
		s.IsCompleted = *u.IsCompleted
	}
	if u.CompletionPercentage != nil {
		s.CompletionPercentage = *u.CompletionPercentage
	}
	if u.CaloriesBurned != nil {
		s.CaloriesBurned = u.CaloriesBurned
	}
	if u.PerformanceRating != nil {
		s.PerformanceRating = u.PerformanceRating
	}
	if u.UserNotes != nil {
		s.UserNotes = u.UserNotes
	}
	if u.HeartRateAvg != nil {
		s.HeartRateAvg = u.HeartRateAvg
	}
}

// ValidationErrors maps a field name to its failed rules.
type ValidationErrors map[string][]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e ValidationErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Validate checks a session before it is stored. Returns nil when the session is valid.
func Validate(s *Session) error {
	errs := ValidationErrors{}

	if s.UserID <= 0 {
		errs.add("user_id", "the user id field is required")
	}
	if s.WorkoutID <= 0 {
		errs.add("workout_id", "the workout id field is required")
	}
	if s.SessionType != SessionTypeIndividual && s.SessionType != SessionTypeGroup {
		errs.add("session_type", "the session type must be one of: individual, group")
	}
	if s.StartTime != nil && s.EndTime != nil && !s.EndTime.After(*s.StartTime) {
		errs.add("end_time", "the end time must be a date after start time")
	}
	if s.ActualDurationMinutes != nil && *s.ActualDurationMinutes < 0 {
		errs.add("actual_duration_minutes", "the actual duration minutes must be at least 0")
	}
	if s.DifficultyLevel != nil && (*s.DifficultyLevel < 1 || *s.DifficultyLevel > 3) {
		errs.add("difficulty_level", "the difficulty level must be between 1 and 3")
	}
	if s.CompletionPercentage < 0 || s.CompletionPercentage > 100 {
		errs.add("completion_percentage", "the completion percentage must be between 0 and 100")
	}
	if s.CaloriesBurned != nil && *s.CaloriesBurned < 0 {
		errs.add("calories_burned", "the calories burned must be at least 0")
	}
	if s.PerformanceRating != nil && (*s.PerformanceRating < 1 || *s.PerformanceRating > 5) {
		errs.add("performance_rating", "the performance rating must be between 1 and 5")
	}
	if s.UserNotes != nil && len([]rune(*s.UserNotes)) > maxNotesLength {
		errs.add("user_notes", fmt.Sprintf("the user notes must not be greater than %d characters", maxNotesLength))
	}
	if s.HeartRateAvg != nil && (*s.HeartRateAvg < minHeartRate || *s.HeartRateAvg > maxHeartRate) {
		errs.add("heart_rate_avg", fmt.Sprintf("the heart rate avg must be between %d and %d", minHeartRate, maxHeartRate))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
