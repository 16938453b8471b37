package model

// StudentProgress is the single source of truth for one student's XP, level
// and per-cell challenge status. One row per student, created at first
// login, mutated only through the progress ledger.
type StudentProgress struct {
	BaseModel
	UserID              uint                       `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	XP                  int                        `gorm:"default:0" json:"xp"`
	Level               int                        `gorm:"default:1" json:"level"`
	StatusMap           map[string]ChallengeStatus `gorm:"serializer:json;type:json" json:"statusMap"`
	CompletedChallenges []string                   `gorm:"serializer:json;type:json" json:"completedChallenges"`
	Badges              []string                   `gorm:"serializer:json;type:json" json:"badges"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

// XPPerLevel is the fixed level band width. Level 1 covers [0,500), level 2
// [500,1000), and so on.
const XPPerLevel = 500

// LevelForXP computes the level implied by an XP total.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// ProgressFraction is the display-only fill fraction of the current level
// band, clamped to [0,1]. It is derived, never stored.
func ProgressFraction(xp, level int) float64 {
	if level < 1 {
		level = 1
	}
	base := (level - 1) * XPPerLevel
	frac := float64(xp-base) / float64(XPPerLevel)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
