package model

import "time"

// AwardDefinition describes one end-of-year design award tied to an IB
// learner profile attribute. The set is fixed; nominations reference an
// award by ID.
type AwardDefinition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Profile     string `json:"profile"`
	Description string `json:"description"`
}

var Awards = []AwardDefinition{
	{ID: "human-centered", Title: "The Human-Centered Visionary Award", Profile: "Caring",
		Description: "For a student who designed with empathy and considered the needs and experiences of others."},
	{ID: "thinker", Title: "The Thinker Award", Profile: "Thinker",
		Description: "For outstanding critical thinking, problem-solving, and iteration throughout the design cycle."},
	{ID: "collaborator", Title: "The Collaborator Award", Profile: "Communicator",
		Description: "For a student who uplifted their team, shared ideas openly, and embraced feedback."},
	{ID: "solution-maker", Title: "The Solution Maker Award", Profile: "Principled",
		Description: "For a solution with a strong ethical foundation that meets a real need."},
	{ID: "risk-taker", Title: "The Risk-Taker Award", Profile: "Risk-Taker",
		Description: "For embracing challenge and uncertainty, trying something new, and learning from failures."},
	{ID: "global-impact", Title: "The Global Impact Award", Profile: "Open-Minded",
		Description: "For a project that addressed a local or global issue thoughtfully and with cultural awareness."},
	{ID: "research-master", Title: "The Research Master Award", Profile: "Inquirer",
		Description: "For outstanding inquiry and research into the design context."},
	{ID: "design-excellence", Title: "The Design Excellence Award", Profile: "Balanced",
		Description: "For excelling across all stages of the design cycle throughout the year."},
	{ID: "iterative-learner", Title: "The Iterative Learner Award", Profile: "Reflective",
		Description: "For deep reflection, consistent improvement, and a growth mindset across projects."},
	{ID: "ux-storyteller", Title: "The UX Storyteller Award", Profile: "Knowledgeable",
		Description: "For communicating design intent with clarity through visuals, presentations, or portfolios."},
}

// Nomination is a side annotation raised when a reviewer accepts a peer's
// work as award-worthy, or created directly by a teacher.
type Nomination struct {
	UUIDBase
	StudentName   string    `gorm:"size:100" json:"studentName"`
	AwardID       string    `gorm:"size:50" json:"award"`
	Justification string    `gorm:"type:text" json:"justification"`
	NominatedBy   string    `gorm:"size:100" json:"nominatedBy"`
	Timestamp     time.Time `json:"timestamp"`
}

func (Nomination) TableName() string {
	return "nominations"
}
