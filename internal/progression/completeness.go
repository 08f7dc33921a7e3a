package progression

import (
	"math"
	"reflect"
	"strings"
)

// ProfileFields are the onboarding fields that make up profile completeness.
var ProfileFields = []string{
	"fitness_goals",
	"target_muscle_groups",
	"activity_level",
	"workout_experience_years",
	"available_equipment",
	"time_constraints_minutes",
}

// ProfileCompleteness returns the rounded percentage of ProfileFields that are set.
// Zero values count as unset, so zero years of experience is not an answer.
func ProfileCompleteness(fields map[string]any) int {
	completed := 0
	for _, field := range ProfileFields {
		if !isBlank(fields[field]) {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(ProfileFields)) * 100))
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		trimmed := strings.TrimSpace(val)
		return trimmed == "" || trimmed == "0"
	case bool:
		return !val
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil() || isBlank(rv.Elem().Interface())
	default:
		return rv.IsZero()
	}
}
