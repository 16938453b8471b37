package repository

import (
	"design_hub_backend/internal/model"

	"gorm.io/gorm"
)

type NominationRepository struct {
	DB *gorm.DB
}

func NewNominationRepository(db *gorm.DB) *NominationRepository {
	return &NominationRepository{DB: db}
}

func (r *NominationRepository) Create(nomination *model.Nomination) error {
	return r.DB.Create(nomination).Error
}

func (r *NominationRepository) ListAll() ([]model.Nomination, error) {
	var nominations []model.Nomination
	err := r.DB.Order("timestamp DESC").Find(&nominations).Error
	return nominations, err
}

func (r *NominationRepository) ListByStudent(studentName string) ([]model.Nomination, error) {
	var nominations []model.Nomination
	err := r.DB.Where("student_name = ?", studentName).
		Order("timestamp DESC").
		Find(&nominations).Error
	return nominations, err
}
