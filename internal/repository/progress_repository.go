package repository

import (
	"design_hub_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Load returns the student's progress row, creating it on first access.
// New rows start with an empty status map, zero XP, level 1.
func (r *ProgressRepository) Load(userID uint) (*model.StudentProgress, error) {
	var progress model.StudentProgress
	err := r.DB.Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = model.StudentProgress{
			UserID:              userID,
			XP:                  0,
			Level:               1,
			StatusMap:           map[string]model.ChallengeStatus{},
			CompletedChallenges: []string{},
			Badges:              []string{},
		}
		if err := r.DB.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}
	if progress.StatusMap == nil {
		progress.StatusMap = map[string]model.ChallengeStatus{}
	}
	return &progress, nil
}

func (r *ProgressRepository) Save(progress *model.StudentProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) ListAll() ([]model.StudentProgress, error) {
	var all []model.StudentProgress
	err := r.DB.Find(&all).Error
	return all, err
}
