package progression

const (
	maxLevelReachedLabel = "Max level reached"
	noProgressionData    = "No progression data available"
)

// ProgressReport is the user facing view of an EligibilityResult.
type ProgressReport struct {
	Eligible        bool               `json:"eligible_for_promotion"`
	CurrentScore    float64            `json:"current_score"`
	RequiredScore   float64            `json:"required_score"`
	ScoreProgress   float64            `json:"score_progress"`
	TimeProgress    float64            `json:"time_progress"`
	OverallProgress float64            `json:"progress_percentage"`
	NextLevel       string             `json:"next_level"`
	Requirements    *Requirements      `json:"requirements"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Message         string             `json:"message"`
	Unavailable     bool               `json:"upstream_unavailable,omitempty"`
}

// NewProgressReport derives progress percentages from a check result.
// Overall progress is the minimum of score and time progress: both have to reach 100.
func NewProgressReport(result EligibilityResult) ProgressReport {
	scoreProgress := 0.0
	if result.Threshold > 0 {
		scoreProgress = clampPercent(round(result.Score/result.Threshold*100, 1))
	}

	// without requirements (failed check) there is no time progress to report
	minDays, currentDays := 1, 0
	if result.Requirements != nil {
		minDays = result.Requirements.MinDays
		currentDays = result.Requirements.CurrentDays
	}
	timeProgress := 100.0
	if minDays > 0 {
		timeProgress = clampPercent(round(float64(currentDays)/float64(minDays)*100, 1))
	}

	nextLevel := maxLevelReachedLabel
	if result.TargetLevel != LevelNone {
		nextLevel = result.TargetLevel.String()
	}

	message := result.Message
	if message == "" {
		message = noProgressionData
	}

	breakdown := result.Breakdown
	if breakdown == nil {
		breakdown = map[string]float64{}
	}

	return ProgressReport{
		Eligible:        result.Eligible,
		CurrentScore:    result.Score,
		RequiredScore:   result.Threshold,
		ScoreProgress:   scoreProgress,
		TimeProgress:    timeProgress,
		OverallProgress: min(scoreProgress, timeProgress),
		NextLevel:       nextLevel,
		Requirements:    result.Requirements,
		Breakdown:       breakdown,
		Message:         message,
		Unavailable:     result.Unavailable,
	}
}

func clampPercent(v float64) float64 {
	return max(0, min(v, 100))
}
