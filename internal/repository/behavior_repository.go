package repository

import (
	"design_hub_backend/internal/model"

	"gorm.io/gorm"
)

type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{DB: db}
}

func (r *BehaviorRepository) Create(log *model.BehaviorLog) error {
	return r.DB.Create(log).Error
}

func (r *BehaviorRepository) ListByStudent(studentID uint) ([]model.BehaviorLog, error) {
	var logs []model.BehaviorLog
	err := r.DB.Where("student_id = ?", studentID).
		Order("timestamp DESC").
		Find(&logs).Error
	return logs, err
}

func (r *BehaviorRepository) ListRecent(limit int) ([]model.BehaviorLog, error) {
	var logs []model.BehaviorLog
	q := r.DB.Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}
