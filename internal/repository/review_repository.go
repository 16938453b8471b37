package repository

import (
	"design_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) ListBySubmission(submissionID string) ([]model.PeerReview, error) {
	var reviews []model.PeerReview
	err := r.DB.Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ListByReviewer(reviewerID uint) ([]model.PeerReview, error) {
	var reviews []model.PeerReview
	err := r.DB.Where("reviewer_id = ?", reviewerID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) CountBySubmission(submissionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PeerReview{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	return count, err
}
