package model

// SkillDomain is one column of the curriculum skill matrix.
type SkillDomain string

const (
	Sketching         SkillDomain = "Sketching"
	Woodwork          SkillDomain = "Woodwork"
	PowerTools        SkillDomain = "Power Tools"
	ThreeDPrinting    SkillDomain = "3D Printing"
	LaserCutter       SkillDomain = "Laser Cutter"
	Microbits         SkillDomain = "Microbits"
	DigitalDesign     SkillDomain = "Digital Design"
	Textiles          SkillDomain = "Textiles"
	Robotics          SkillDomain = "Robotics"
	VideoProduction   SkillDomain = "Video Production"
	SustainableDesign SkillDomain = "Sustainable Design"
	Programming       SkillDomain = "Programming"
	AILiteracy        SkillDomain = "AI Literacy"
	Entrepreneurship  SkillDomain = "Entrepreneurship"
)

// AllSkillDomains lists every matrix column in display order.
var AllSkillDomains = []SkillDomain{
	Sketching, Woodwork, PowerTools, ThreeDPrinting, LaserCutter,
	Microbits, DigitalDesign, Textiles, Robotics, VideoProduction,
	SustainableDesign, Programming, AILiteracy, Entrepreneurship,
}

type GradeLevel string

const (
	G6  GradeLevel = "G6"
	G7  GradeLevel = "G7"
	G8  GradeLevel = "G8"
	G9  GradeLevel = "G9"
	G10 GradeLevel = "G10"
)

var AllGradeLevels = []GradeLevel{G6, G7, G8, G9, G10}

// ChallengeStatus is the per-cell lifecycle value tracked by the progress
// ledger. Cells start AVAILABLE; there is no global locking policy.
type ChallengeStatus string

const (
	StatusLocked     ChallengeStatus = "LOCKED"
	StatusAvailable  ChallengeStatus = "AVAILABLE"
	StatusInProgress ChallengeStatus = "IN_PROGRESS"
	StatusSubmitted  ChallengeStatus = "SUBMITTED"
	StatusCompleted  ChallengeStatus = "COMPLETED"
)

// Valid reports whether s is one of the five lifecycle values. An invalid
// value passed to the ledger is a programmer error and is rejected.
func (s ChallengeStatus) Valid() bool {
	switch s {
	case StatusLocked, StatusAvailable, StatusInProgress, StatusSubmitted, StatusCompleted:
		return true
	}
	return false
}

type DifficultyLevel string

const (
	Easy   DifficultyLevel = "Easy"
	Medium DifficultyLevel = "Medium"
	Hard   DifficultyLevel = "Hard"
)

type ATLSkill string

const (
	Communication  ATLSkill = "Communication"
	Social         ATLSkill = "Social"
	SelfManagement ATLSkill = "Self-Management"
	Research       ATLSkill = "Research"
	Thinking       ATLSkill = "Thinking"
)

// ChallengeKey identifies one curriculum cell. Keys are used as map keys in
// the ledger's status map; they do not imply ordering.
func ChallengeKey(domain SkillDomain, grade GradeLevel) string {
	return string(domain) + "-" + string(grade)
}

// RubricItem is a standards-coded assessment line item. Points is the
// maximum for the criterion and bounds peer-review rating input.
type RubricItem struct {
	Criterion   string `json:"criterion"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

type LibraryStatus string

const (
	ChallengeDraft     LibraryStatus = "DRAFT"
	ChallengePublished LibraryStatus = "PUBLISHED"
	ChallengeArchived  LibraryStatus = "ARCHIVED"
)

// Challenge is either an ephemeral generator result (partial fields allowed)
// or a curated library entry. Generated drafts are never persisted; library
// entries carry Author/LibraryStatus/AssignedStudentIDs.
type Challenge struct {
	UUIDBase
	Domain             SkillDomain   `gorm:"size:50;index" json:"domain"`
	Grade              GradeLevel    `gorm:"size:10;index" json:"grade"`
	Title              string        `gorm:"size:255" json:"title"`
	Description        string        `gorm:"type:text" json:"description"`
	Scenario           string        `gorm:"type:text" json:"scenario"`
	Tools              []string      `gorm:"serializer:json;type:json" json:"tools"`
	TutorialLinks      []string      `gorm:"serializer:json;type:json" json:"tutorialLinks"`
	Rubric             []RubricItem  `gorm:"serializer:json;type:json" json:"rubric"`
	XPReward           int           `gorm:"default:0" json:"xpReward"`
	Author             string        `gorm:"size:100" json:"author"`
	LibraryStatus      LibraryStatus `gorm:"size:20;default:'DRAFT'" json:"status"`
	AssignedStudentIDs []string      `gorm:"serializer:json;type:json" json:"assignedStudentIds"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// OpenToAll reports whether the challenge has no student assignment
// restriction. An empty or absent assignment set means open to everyone in
// the grade.
func (c *Challenge) OpenToAll() bool {
	return len(c.AssignedStudentIDs) == 0
}

// EligibleFor reports whether the given student may start or submit against
// this challenge.
func (c *Challenge) EligibleFor(studentID string) bool {
	if c.OpenToAll() {
		return true
	}
	for _, id := range c.AssignedStudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// CollaborativeProject is a generated team brief. It is ephemeral until a
// team adopts it.
type CollaborativeProject struct {
	Title         string       `json:"title"`
	Theme         string       `json:"theme"`
	Scenario      string       `json:"scenario"`
	Objectives    []string     `json:"objectives"`
	Deliverables  []string     `json:"deliverables"`
	TeamRubric    []RubricItem `json:"teamRubric"`
	TutorialLinks []string     `json:"tutorialLinks,omitempty"`
}
