package model

import "time"

type IncidentType string

const (
	IncidentPositive      IncidentType = "Positive Contribution"
	IncidentSafety        IncidentType = "Safety Violation"
	IncidentDisruption    IncidentType = "Disruption"
	IncidentPreparedness  IncidentType = "Unprepared"
	IncidentCollaboration IncidentType = "Team Conflict"
)

// BehaviorLog records a workshop incident against a student. Teacher-only.
type BehaviorLog struct {
	UUIDBase
	StudentID   uint         `gorm:"index;type:bigint unsigned" json:"studentId"`
	Type        IncidentType `gorm:"size:50" json:"type"`
	Description string       `gorm:"type:text" json:"description"`
	LoggedBy    string       `gorm:"size:100" json:"loggedBy"`
	Timestamp   time.Time    `json:"timestamp"`
}

func (BehaviorLog) TableName() string {
	return "behavior_logs"
}
