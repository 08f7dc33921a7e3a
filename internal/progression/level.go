package progression

import "strings"

// FitnessLevel is a user tier. Tiers are strictly ordered and a user only ever moves
// one step up: beginner -> intermediate -> advanced.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// LevelNone marks "no level": no target above the top tier, or an unrecognised stored level.
const LevelNone FitnessLevel = ""

func (l FitnessLevel) String() string {
	return string(l)
}

func (l FitnessLevel) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

// Title is the level name as shown to users, e.g. "Intermediate".
func (l FitnessLevel) Title() string {
	if l == LevelNone {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// ParseLevel maps the profile store value to a level. An empty value is a freshly
// registered user, i.e. beginner. Anything unrecognised is LevelNone and has no
// promotion path.
func ParseLevel(s string) FitnessLevel {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return LevelBeginner
	}
	level := FitnessLevel(trimmed)
	if !level.IsValid() {
		return LevelNone
	}
	return level
}

// NextLevel returns the only tier a user at current can be promoted to.
// The second return value is false for the terminal tier.
func NextLevel(current FitnessLevel) (FitnessLevel, bool) {
	switch current {
	case LevelBeginner:
		return LevelIntermediate, true
	case LevelIntermediate:
		return LevelAdvanced, true
	default:
		return LevelNone, false
	}
}

// PreviousLevel is the inverse of NextLevel.
func PreviousLevel(target FitnessLevel) (FitnessLevel, bool) {
	switch target {
	case LevelIntermediate:
		return LevelBeginner, true
	case LevelAdvanced:
		return LevelIntermediate, true
	default:
		return LevelNone, false
	}
}
