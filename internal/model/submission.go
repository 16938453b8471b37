package model

import "time"

// Submission is created exactly once per successful submit. The rubric is a
// snapshot taken from the challenge at submit time; later library edits do
// not alter it. Score stays 0 until a human assigns one.
type Submission struct {
	UUIDBase
	ChallengeID string       `gorm:"size:36;index" json:"challengeId"`
	UserID      uint         `gorm:"index;type:bigint unsigned" json:"userId"`
	Domain      SkillDomain  `gorm:"size:50;index" json:"domain"`
	Grade       GradeLevel   `gorm:"size:10;index" json:"grade"`
	Title       string       `gorm:"size:255" json:"title"`
	StudentName string       `gorm:"size:100" json:"studentName"`
	Content     string       `gorm:"type:text" json:"content"`
	FileURLs    []string     `gorm:"serializer:json;type:json" json:"fileUrls"`
	Rubric      []RubricItem `gorm:"serializer:json;type:json" json:"rubric"`
	Feedback    string       `gorm:"type:text" json:"feedback"`
	ATLSkills   []ATLSkill   `gorm:"serializer:json;type:json" json:"atlSkills"`
	Score       float64      `gorm:"default:0" json:"score"`

	PeerReviews []PeerReview `gorm:"foreignKey:SubmissionID" json:"peerReviews,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// RubricRating is one criterion score inside a peer review. Score is always
// within [0, criterion points] by the time it is stored.
type RubricRating struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
	Comment   string `json:"comment"`
}

// PeerReview is created only after the tone gate passes. A submission may
// accumulate any number of reviews; a reviewer is not blocked from
// reviewing the same submission twice.
type PeerReview struct {
	UUIDBase
	ReviewerID           uint           `gorm:"index;type:bigint unsigned" json:"reviewerId"`
	SubmissionID         string         `gorm:"size:36;index" json:"submissionId"`
	Ratings              []RubricRating `gorm:"serializer:json;type:json" json:"ratings"`
	ConstructiveFeedback string         `gorm:"type:text" json:"constructiveFeedback"`
	Timestamp            time.Time      `json:"timestamp"`
}

func (PeerReview) TableName() string {
	return "peer_reviews"
}
