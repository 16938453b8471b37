package service

import (
	"context"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/repository"
	"design_hub_backend/internal/util"
	"fmt"
	"strings"
	"time"
)

type TeamService struct {
	TeamRepo  *repository.TeamRepository
	Generator *GeneratorService
	AI        *AIClient
}

func NewTeamService(teamRepo *repository.TeamRepository, generator *GeneratorService, ai *AIClient) *TeamService {
	return &TeamService{
		TeamRepo:  teamRepo,
		Generator: generator,
		AI:        ai,
	}
}

func (s *TeamService) CreateTeam(name string, members []model.TeamMember) (*model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.ErrEmptyTeamName
	}
	team := &model.Team{
		Name:    name,
		Members: members,
	}
	if err := s.TeamRepo.Create(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) GetTeam(id string) (*model.Team, error) {
	return s.TeamRepo.FindByID(id)
}

func (s *TeamService) ListTeams() ([]model.Team, error) {
	return s.TeamRepo.ListAll()
}

// AdoptProject generates a collaborative brief for the team and persists it
// on the team row. The generator never fails, so neither does this unless the
// save does.
func (s *TeamService) AdoptProject(ctx context.Context, teamID, theme string) (*model.Team, error) {
	team, err := s.TeamRepo.FindByID(teamID)
	if err != nil {
		return nil, err
	}
	project := s.Generator.GenerateTeamChallenge(ctx, theme)
	team.Project = project
	team.Progress = 0
	if err := s.TeamRepo.Update(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) UpdateProgress(teamID string, progress int) (*model.Team, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	team, err := s.TeamRepo.FindByID(teamID)
	if err != nil {
		return nil, err
	}
	team.Progress = progress
	if err := s.TeamRepo.Update(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) AddLog(teamID, author, role, message string) (*model.TeamLog, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, util.ErrEmptyLogMessage
	}
	if _, err := s.TeamRepo.FindByID(teamID); err != nil {
		return nil, err
	}
	log := &model.TeamLog{
		TeamID:    teamID,
		Author:    author,
		Role:      role,
		Message:   message,
		Timestamp: time.Now(),
	}
	if err := s.TeamRepo.AddLog(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *TeamService) ListLogs(teamID string) ([]model.TeamLog, error) {
	return s.TeamRepo.ListLogs(teamID)
}

// AssessTeam summarizes a team's process journal for the teacher dashboard.
// Falls back to a canned notice when the model is unreachable.
func (s *TeamService) AssessTeam(ctx context.Context, teamID string) (string, error) {
	team, err := s.TeamRepo.FindByID(teamID)
	if err != nil {
		return "", err
	}
	logs, err := s.TeamRepo.ListLogs(teamID)
	if err != nil {
		return "", err
	}
	if len(logs) == 0 {
		return "No process journal entries yet. Ask the team to log their work before requesting an assessment.", nil
	}

	var sb strings.Builder
	for _, log := range logs {
		fmt.Fprintf(&sb, "[%s] %s (%s): %s\n", log.Timestamp.Format("2006-01-02"), log.Author, log.Role, log.Message)
	}

	prompt := fmt.Sprintf(
		"Team %q is working on a collaborative design project. Here is their process journal:\n\n%s\nAssess the team's collaboration, noting role balance and any members who may need support. Keep it under 150 words for a teacher's quick review.",
		team.Name, sb.String(),
	)
	assessment, err := s.AI.Complete(ctx, personaPrompt, prompt)
	if err != nil {
		return "Team assessment is unavailable right now. Review the process journal entries directly.", nil
	}
	return assessment, nil
}
