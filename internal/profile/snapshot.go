package profile

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Snapshot is the progression view of a user, as kept by the profile store (auth service).
// It is read fresh on every eligibility check and never cached here.
type Snapshot struct {
	UserID                        int        `json:"user_id"`
	FitnessLevel                  string     `json:"fitness_level"`
	FitnessLevelUpdatedAt         *time.Time `json:"fitness_level_updated_at,omitempty"`
	ActiveDays                    int        `json:"active_days"`
	TotalWorkoutsCompleted        int        `json:"total_workouts_completed"`
	TotalWorkoutMinutes           int        `json:"total_workout_minutes"`
	AdvancedWorkoutsCompleted     int        `json:"advanced_workouts_completed"`
	GoalsAchievedCount            int        `json:"goals_achieved_count"`
	GroupWorkoutsCount            int        `json:"group_workouts_count"`
	LongestStreakDays             int        `json:"longest_streak_days"`
	ProfileCompletenessPercentage int        `json:"profile_completeness_percentage"`
}

// snapshotResponse mirrors the internal users endpoint payload. Pointers tell
// missing fields apart from zero values.
type snapshotResponse struct {
	UserID                        *int    `json:"user_id"`
	FitnessLevel                  *string `json:"fitness_level"`
	FitnessLevelUpdatedAt         *string `json:"fitness_level_updated_at"`
	ActiveDays                    *int    `json:"active_days"`
	TotalWorkoutsCompleted        *int    `json:"total_workouts_completed"`
	TotalWorkoutMinutes           *int    `json:"total_workout_minutes"`
	AdvancedWorkoutsCompleted     *int    `json:"advanced_workouts_completed"`
	GoalsAchievedCount            *int    `json:"goals_achieved_count"`
	GroupWorkoutsCount            *int    `json:"group_workouts_count"`
	LongestStreakDays             *int    `json:"longest_streak_days"`
	ProfileCompletenessPercentage *int    `json:"profile_completeness_percentage"`
}

const defaultFitnessLevel = "beginner"

// timestamp layouts the auth service has been seen to emit
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// DecodeSnapshot parses a profile store payload. Missing counters default to zero,
// a missing user_id is an error.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var resp snapshotResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	return resp.toSnapshot()
}

func (r *snapshotResponse) toSnapshot() (*Snapshot, error) {
	if r.UserID == nil {
		return nil, fmt.Errorf("%w: missing user_id", ErrMalformedSnapshot)
	}

	s := &Snapshot{
		UserID:                        *r.UserID,
		FitnessLevel:                  defaultFitnessLevel,
		ActiveDays:                    intOrZero(r.ActiveDays),
		TotalWorkoutsCompleted:        intOrZero(r.TotalWorkoutsCompleted),
		TotalWorkoutMinutes:           intOrZero(r.TotalWorkoutMinutes),
		AdvancedWorkoutsCompleted:     intOrZero(r.AdvancedWorkoutsCompleted),
		GoalsAchievedCount:            intOrZero(r.GoalsAchievedCount),
		GroupWorkoutsCount:            intOrZero(r.GroupWorkoutsCount),
		LongestStreakDays:             intOrZero(r.LongestStreakDays),
		ProfileCompletenessPercentage: intOrZero(r.ProfileCompletenessPercentage),
	}
	if r.FitnessLevel != nil && *r.FitnessLevel != "" {
		s.FitnessLevel = strings.ToLower(*r.FitnessLevel)
	}

	if r.FitnessLevelUpdatedAt != nil && *r.FitnessLevelUpdatedAt != "" {
		ts, err := parseTimestamp(*r.FitnessLevelUpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: fitness_level_updated_at: %w", ErrMalformedSnapshot, err)
		}
		s.FitnessLevelUpdatedAt = &ts
	}

	return s, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format [%s]", value)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
