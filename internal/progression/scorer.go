package progression

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/fitnease/tracking/internal/profile"
)

// Intermediate promotion (beginner -> intermediate).
const (
	IntermediateMinActiveDays   = 28 // 4 weeks of active days
	IntermediateWeeksActiveCap  = 12
	IntermediateCompletionRate  = 0.88
	IntermediateScoreThreshold  = 300
	intermediateWorkoutWeight   = 2.0
	intermediateMinutesDivisor  = 10.0
	intermediateCompletionScale = 100.0
	intermediateWeekWeight      = 5
	intermediateProfileWeight   = 50.0
)

// Advanced promotion (intermediate -> advanced).
const (
	AdvancedMinActiveDays       = 112 // 16 weeks of active days
	AdvancedMinDaysAtLevel      = 84  // 12 weeks as intermediate
	AdvancedWeeksActiveCap      = 24
	AdvancedCompletionRate      = 0.92
	AdvancedScoreThreshold      = 1000
	advancedWorkoutWeight       = 1.5
	advancedMinutesDivisor      = 8.0
	advancedCompletionScale     = 150.0
	advancedWeekWeight          = 8
	advancedAdvancedWorkoutPts  = 5
	advancedGoalPts             = 100
	advancedGroupWorkoutPts     = 10
	advancedStreakDayPts        = 3
	terminalWeeksActiveCap      = 52
	maxLevelReachedMessage      = "Congratulations! You have reached the maximum fitness level!"
	unknownLevelMessageFormat   = "No promotion available for fitness level %q"
	eligibleMessageFormat       = "Congratulations! You are eligible for promotion to %s level!"
	intermediateProgressMessage = "Keep working out to reach Intermediate level. You're %s%% there!"
	advancedProgressMessage     = "Keep pushing yourself to reach Advanced level. You're %s%% there!"
)

// Scorer computes promotion eligibility from a profile snapshot. It does no I/O;
// the only outside input is the clock, used to measure tier tenure.
//
// There is no per-user workout completion rate upstream, so a fixed rate
// (IntermediateCompletionRate / AdvancedCompletionRate) stands in for it as soon
// as the user has completed at least one workout. The thresholds were tuned with
// these constants in place.
type Scorer struct {
	now func() time.Time
}

func NewScorer(now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{now: now}
}

func (s *Scorer) Now() time.Time {
	return s.now()
}

// Evaluate scores the snapshot against the tier directly above the current one.
func (s *Scorer) Evaluate(snapshot profile.Snapshot) EligibilityResult {
	current := ParseLevel(snapshot.FitnessLevel)
	if current == LevelNone {
		return unknownLevelResult(snapshot.FitnessLevel)
	}
	target, ok := NextLevel(current)
	if !ok {
		return maxLevelResult(snapshot)
	}

	switch target {
	case LevelIntermediate:
		return s.intermediateEligibility(snapshot)
	case LevelAdvanced:
		return s.advancedEligibility(snapshot)
	default:
		// unreachable with the current tier set
		return unavailableResult()
	}
}

func (s *Scorer) intermediateEligibility(snapshot profile.Snapshot) EligibilityResult {
	activeDays := snapshot.ActiveDays
	completed := snapshot.TotalWorkoutsCompleted
	minutes := snapshot.TotalWorkoutMinutes
	profileCompleteness := snapshot.ProfileCompletenessPercentage

	weeksActive := weeksActive(activeDays, IntermediateWeeksActiveCap)
	completionRate := 0.0
	if completed > 0 {
		completionRate = IntermediateCompletionRate
	}

	workoutsPoints := float64(completed) * intermediateWorkoutWeight
	minutesPoints := float64(minutes) / intermediateMinutesDivisor
	completionPoints := completionRate * intermediateCompletionScale
	weeksPoints := float64(weeksActive * intermediateWeekWeight)
	profilePoints := float64(profileCompleteness) / 100 * intermediateProfileWeight

	score := workoutsPoints + minutesPoints + completionPoints + weeksPoints + profilePoints

	meetsTime := activeDays >= IntermediateMinActiveDays
	meetsScore := score >= IntermediateScoreThreshold
	eligible := meetsTime && meetsScore

	return EligibilityResult{
		Eligible:    eligible,
		TargetLevel: LevelIntermediate,
		Score:       round(score, 2),
		Threshold:   IntermediateScoreThreshold,
		Message:     progressMessage(eligible, LevelIntermediate, score, IntermediateScoreThreshold),
		Requirements: &Requirements{
			MinDays:               IntermediateMinActiveDays,
			CurrentDays:           activeDays,
			MeetsTimeRequirement:  meetsTime,
			DaysAtCurrentLevel:    s.daysAtLevel(snapshot.FitnessLevelUpdatedAt),
			MeetsScoreRequirement: meetsScore,
			CompletedWorkouts:     completed,
			WorkoutMinutes:        minutes,
			WeeksActive:           weeksActive,
			ProfileCompleteness:   profileCompleteness,
			AdvancedWorkouts:      snapshot.AdvancedWorkoutsCompleted,
			GoalsAchieved:         snapshot.GoalsAchievedCount,
			GroupWorkouts:         snapshot.GroupWorkoutsCount,
			LongestStreak:         snapshot.LongestStreakDays,
		},
		Breakdown: map[string]float64{
			PointsWorkouts:       round(workoutsPoints, 2),
			PointsMinutes:        round(minutesPoints, 2),
			PointsCompletionRate: round(completionPoints, 2),
			PointsWeeksActive:    weeksPoints,
			PointsProfile:        round(profilePoints, 2),
		},
	}
}

func (s *Scorer) advancedEligibility(snapshot profile.Snapshot) EligibilityResult {
	activeDays := snapshot.ActiveDays
	completed := snapshot.TotalWorkoutsCompleted
	minutes := snapshot.TotalWorkoutMinutes
	daysAtLevel := s.daysAtLevel(snapshot.FitnessLevelUpdatedAt)

	weeksActive := weeksActive(activeDays, AdvancedWeeksActiveCap)
	completionRate := 0.0
	if completed > 0 {
		completionRate = AdvancedCompletionRate
	}

	workoutsPoints := float64(completed) * advancedWorkoutWeight
	minutesPoints := float64(minutes) / advancedMinutesDivisor
	completionPoints := completionRate * advancedCompletionScale
	weeksPoints := float64(weeksActive * advancedWeekWeight)
	advancedPoints := float64(snapshot.AdvancedWorkoutsCompleted * advancedAdvancedWorkoutPts)
	goalsPoints := float64(snapshot.GoalsAchievedCount * advancedGoalPts)
	groupPoints := float64(snapshot.GroupWorkoutsCount * advancedGroupWorkoutPts)
	streakPoints := float64(snapshot.LongestStreakDays * advancedStreakDayPts)

	score := workoutsPoints + minutesPoints + completionPoints + weeksPoints +
		advancedPoints + goalsPoints + groupPoints + streakPoints

	meetsTime := activeDays >= AdvancedMinActiveDays
	meetsTenure := daysAtLevel >= AdvancedMinDaysAtLevel
	meetsScore := score >= AdvancedScoreThreshold
	eligible := meetsTime && meetsTenure && meetsScore

	return EligibilityResult{
		Eligible:    eligible,
		TargetLevel: LevelAdvanced,
		Score:       round(score, 2),
		Threshold:   AdvancedScoreThreshold,
		Message:     progressMessage(eligible, LevelAdvanced, score, AdvancedScoreThreshold),
		Requirements: &Requirements{
			MinDays:               AdvancedMinActiveDays,
			CurrentDays:           activeDays,
			MeetsTimeRequirement:  meetsTime,
			MinDaysAtCurrentLevel: AdvancedMinDaysAtLevel,
			DaysAtCurrentLevel:    daysAtLevel,
			MeetsLevelTenure:      &meetsTenure,
			MeetsScoreRequirement: meetsScore,
			CompletedWorkouts:     completed,
			WorkoutMinutes:        minutes,
			WeeksActive:           weeksActive,
			ProfileCompleteness:   snapshot.ProfileCompletenessPercentage,
			AdvancedWorkouts:      snapshot.AdvancedWorkoutsCompleted,
			GoalsAchieved:         snapshot.GoalsAchievedCount,
			GroupWorkouts:         snapshot.GroupWorkoutsCount,
			LongestStreak:         snapshot.LongestStreakDays,
		},
		Breakdown: map[string]float64{
			PointsWorkouts:         round(workoutsPoints, 2),
			PointsMinutes:          round(minutesPoints, 2),
			PointsCompletionRate:   round(completionPoints, 2),
			PointsWeeksActive:      weeksPoints,
			PointsAdvancedWorkouts: advancedPoints,
			PointsGoalsAchieved:    goalsPoints,
			PointsGroupWorkouts:    groupPoints,
			PointsStreak:           streakPoints,
		},
	}
}

// maxLevelResult is returned for advanced users. Nothing is gated here, the counters
// are reported for display only.
func maxLevelResult(snapshot profile.Snapshot) EligibilityResult {
	weeks := weeksActive(snapshot.ActiveDays, terminalWeeksActiveCap)
	return EligibilityResult{
		Eligible:    false,
		TargetLevel: LevelNone,
		Score:       0,
		Threshold:   0,
		Message:     maxLevelReachedMessage,
		Requirements: &Requirements{
			MinDays:               0,
			CurrentDays:           snapshot.ActiveDays,
			MeetsTimeRequirement:  true,
			MeetsScoreRequirement: true,
			CompletedWorkouts:     snapshot.TotalWorkoutsCompleted,
			WorkoutMinutes:        snapshot.TotalWorkoutMinutes,
			WeeksActive:           weeks,
			ProfileCompleteness:   snapshot.ProfileCompletenessPercentage,
			AdvancedWorkouts:      snapshot.AdvancedWorkoutsCompleted,
			GoalsAchieved:         snapshot.GoalsAchievedCount,
			GroupWorkouts:         snapshot.GroupWorkoutsCount,
			LongestStreak:         snapshot.LongestStreakDays,
		},
		Breakdown: map[string]float64{
			PointsWorkouts:       float64(snapshot.TotalWorkoutsCompleted),
			PointsMinutes:        float64(snapshot.TotalWorkoutMinutes),
			PointsCompletionRate: 100,
			PointsWeeksActive:    float64(weeks),
			PointsStreak:         float64(snapshot.LongestStreakDays),
			PointsGroupWorkouts:  float64(snapshot.GroupWorkoutsCount),
			PointsGoalsAchieved:  float64(snapshot.GoalsAchievedCount),
		},
	}
}

// unknownLevelResult is the answer for a stored level outside the tier ladder. It
// never promotes.
func unknownLevelResult(level string) EligibilityResult {
	return EligibilityResult{
		Eligible:    false,
		TargetLevel: LevelNone,
		Message:     fmt.Sprintf(unknownLevelMessageFormat, level),
		Breakdown:   map[string]float64{},
	}
}

// daysAtLevel is the number of whole days since the last tier change.
// A missing or future timestamp counts as zero days.
func (s *Scorer) daysAtLevel(updatedAt *time.Time) int {
	if updatedAt == nil || updatedAt.IsZero() {
		return 0
	}
	elapsed := s.now().Sub(*updatedAt)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

func weeksActive(activeDays, maxWeeks int) int {
	if activeDays <= 0 {
		return 0
	}
	weeks := (activeDays + 6) / 7
	return min(weeks, maxWeeks)
}

func progressMessage(eligible bool, target FitnessLevel, score, threshold float64) string {
	if eligible {
		return fmt.Sprintf(eligibleMessageFormat, target.Title())
	}
	pct := strconv.FormatFloat(round(score/threshold*100, 1), 'f', -1, 64)
	if target == LevelAdvanced {
		return fmt.Sprintf(advancedProgressMessage, pct)
	}
	return fmt.Sprintf(intermediateProgressMessage, pct)
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
