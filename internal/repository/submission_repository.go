package repository

import (
	"design_hub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Preload("PeerReviews").Where("id = ?", id).First(&submission).Error
	return &submission, err
}

// ListRecent returns the shared submission feed, most recent first.
func (r *SubmissionRepository) ListRecent(limit int) ([]model.Submission, error) {
	var submissions []model.Submission
	q := r.DB.Preload("PeerReviews").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) ListByUser(userID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Preload("PeerReviews").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) ListByGrade(grade model.GradeLevel) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Preload("PeerReviews").
		Where("grade = ?", grade).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// AttachReview inserts a review tied to a submission. The row lock on the
// submission makes concurrent attachments for the same submission serialize
// instead of racing.
func (r *SubmissionRepository) AttachReview(submissionID string, review *model.PeerReview) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var submission model.Submission
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", submissionID).
			First(&submission).Error; err != nil {
			return err
		}
		review.SubmissionID = submissionID
		return tx.Create(review).Error
	})
}

func (r *SubmissionRepository) UpdateScore(submissionID string, score float64) error {
	return r.DB.Model(&model.Submission{}).
		Where("id = ?", submissionID).
		Update("score", score).
		Error
}
