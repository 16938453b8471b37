package repository

import (
	"design_hub_backend/internal/model"

	"gorm.io/gorm"
)

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) Create(team *model.Team) error {
	return r.DB.Create(team).Error
}

func (r *TeamRepository) FindByID(id string) (*model.Team, error) {
	var team model.Team
	err := r.DB.Where("id = ?", id).First(&team).Error
	return &team, err
}

func (r *TeamRepository) Update(team *model.Team) error {
	return r.DB.Save(team).Error
}

func (r *TeamRepository) ListAll() ([]model.Team, error) {
	var teams []model.Team
	err := r.DB.Order("created_at ASC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) AddLog(log *model.TeamLog) error {
	return r.DB.Create(log).Error
}

func (r *TeamRepository) ListLogs(teamID string) ([]model.TeamLog, error) {
	var logs []model.TeamLog
	err := r.DB.Where("team_id = ?", teamID).
		Order("timestamp ASC").
		Find(&logs).Error
	return logs, err
}
