package model

import "time"

type TeamRole string

const (
	ProjectManager    TeamRole = "Project Manager"
	LeadResearcher    TeamRole = "Lead Researcher"
	Prototyper        TeamRole = "Prototyper"
	DocumentationLead TeamRole = "Documentation Lead"
)

type TeamMember struct {
	Name        string   `json:"name"`
	Role        TeamRole `json:"role"`
	AvatarColor string   `json:"avatarColor"`
}

type Team struct {
	UUIDBase
	Name     string                `gorm:"size:100;not null" json:"name"`
	Members  []TeamMember          `gorm:"serializer:json;type:json" json:"members"`
	Project  *CollaborativeProject `gorm:"serializer:json;type:json" json:"project,omitempty"`
	Progress int                   `gorm:"default:0" json:"progress"` // 0-100
}

func (Team) TableName() string {
	return "teams"
}

// TeamLog is one process-journal entry. Logs feed the AI team assessment on
// the teacher dashboard.
type TeamLog struct {
	UUIDBase
	TeamID    string    `gorm:"size:36;index" json:"teamId"`
	Author    string    `gorm:"size:100" json:"author"`
	Role      string    `gorm:"size:50" json:"role"`
	Message   string    `gorm:"type:text" json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (TeamLog) TableName() string {
	return "team_logs"
}
