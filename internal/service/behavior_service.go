package service

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/repository"
	"design_hub_backend/internal/util"
	"strings"
	"time"
)

type BehaviorService struct {
	BehaviorRepo *repository.BehaviorRepository
	UserRepo     *repository.UserRepository
}

func NewBehaviorService(behaviorRepo *repository.BehaviorRepository, userRepo *repository.UserRepository) *BehaviorService {
	return &BehaviorService{
		BehaviorRepo: behaviorRepo,
		UserRepo:     userRepo,
	}
}

func (s *BehaviorService) LogIncident(studentID uint, incidentType model.IncidentType, description, loggedBy string) (*model.BehaviorLog, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, util.ErrEmptyDescription
	}
	if _, err := s.UserRepo.FindByID(studentID); err != nil {
		return nil, util.ErrUserNotFound
	}
	log := &model.BehaviorLog{
		StudentID:   studentID,
		Type:        incidentType,
		Description: description,
		LoggedBy:    loggedBy,
		Timestamp:   time.Now(),
	}
	if err := s.BehaviorRepo.Create(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *BehaviorService) ListByStudent(studentID uint) ([]model.BehaviorLog, error) {
	return s.BehaviorRepo.ListByStudent(studentID)
}

func (s *BehaviorService) ListRecent(limit int) ([]model.BehaviorLog, error) {
	return s.BehaviorRepo.ListRecent(limit)
}
