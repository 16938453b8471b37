package repository

import (
	"design_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) FindByID(id string) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.Where("id = ?", id).First(&challenge).Error
	return &challenge, err
}

func (r *ChallengeRepository) Update(challenge *model.Challenge) error {
	return r.DB.Save(challenge).Error
}

func (r *ChallengeRepository) UpdateLibraryStatus(id string, status model.LibraryStatus) error {
	return r.DB.Model(&model.Challenge{}).
		Where("id = ?", id).
		Update("library_status", status).
		Error
}

func (r *ChallengeRepository) ListByAuthor(author string) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.Where("author = ?", author).Order("created_at DESC").Find(&challenges).Error
	return challenges, err
}

// ListPublishedForGrade returns library challenges visible to a grade.
// Assignment filtering happens in the service, since assignment sets are
// stored as JSON.
func (r *ChallengeRepository) ListPublishedForGrade(grade model.GradeLevel) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.
		Where("grade = ? AND library_status = ?", grade, model.ChallengePublished).
		Order("created_at DESC").
		Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) ListAll() ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.Order("created_at DESC").Find(&challenges).Error
	return challenges, err
}
