package progression

// EligibilityResult is computed per check and never persisted.
type EligibilityResult struct {
	Eligible     bool               `json:"eligible"`
	TargetLevel  FitnessLevel       `json:"target_level,omitempty"`
	Score        float64            `json:"score"`
	Threshold    float64            `json:"threshold"`
	Message      string             `json:"message,omitempty"`
	Requirements *Requirements      `json:"requirements"`
	Breakdown    map[string]float64 `json:"breakdown"`

	// Unavailable is set when the profile store could not provide a usable snapshot.
	// Eligible is always false in that case.
	Unavailable bool `json:"upstream_unavailable,omitempty"`
}

// Requirements lists the individual gates plus the raw counters that fed the score.
type Requirements struct {
	MinDays              int  `json:"min_days"`
	CurrentDays          int  `json:"current_days"`
	MeetsTimeRequirement bool `json:"meets_time_requirement"`

	// tier tenure, only gated for the advanced tier
	MinDaysAtCurrentLevel int   `json:"min_days_at_current_level,omitempty"`
	DaysAtCurrentLevel    int   `json:"days_at_current_level"`
	MeetsLevelTenure      *bool `json:"meets_level_tenure,omitempty"`

	MeetsScoreRequirement bool `json:"meets_score_requirement"`

	CompletedWorkouts   int `json:"completed_workouts"`
	WorkoutMinutes      int `json:"workout_minutes"`
	WeeksActive         int `json:"weeks_active"`
	ProfileCompleteness int `json:"profile_completeness"`
	AdvancedWorkouts    int `json:"advanced_workouts"`
	GoalsAchieved       int `json:"goals_achieved"`
	GroupWorkouts       int `json:"group_workouts"`
	LongestStreak       int `json:"longest_streak"`
}

// breakdown keys
const (
	PointsWorkouts         = "workouts_points"
	PointsMinutes          = "minutes_points"
	PointsCompletionRate   = "completion_rate_points"
	PointsWeeksActive      = "weeks_active_points"
	PointsProfile          = "profile_points"
	PointsAdvancedWorkouts = "advanced_workouts_points"
	PointsGoalsAchieved    = "goals_achieved_points"
	PointsGroupWorkouts    = "group_workouts_points"
	PointsStreak           = "streak_points"
)

// unavailableResult is what a check returns when it has to fail closed.
func unavailableResult() EligibilityResult {
	return EligibilityResult{
		Eligible:    false,
		TargetLevel: LevelNone,
		Breakdown:   map[string]float64{},
		Unavailable: true,
	}
}
