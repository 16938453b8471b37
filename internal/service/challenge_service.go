package service

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/repository"
	"design_hub_backend/internal/util"
	"strings"
)

// ChallengeService owns the curated challenge library and the structural
// validation applied to any challenge, generated or curated, before a
// student may start or submit against it. Previews stay permissive; the
// commit path is strict.
type ChallengeService struct {
	ChallengeRepo *repository.ChallengeRepository
}

func NewChallengeService(challengeRepo *repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{ChallengeRepo: challengeRepo}
}

// ValidateForSubmission enforces the strict-commit contract: title and
// description present, rubric point maxima non-negative. Generated drafts
// may fail this and still be previewed.
func ValidateForSubmission(challenge *model.Challenge) error {
	if strings.TrimSpace(challenge.Title) == "" || strings.TrimSpace(challenge.Description) == "" {
		return util.ErrChallengeNotReady
	}
	for _, item := range challenge.Rubric {
		if item.Points < 0 {
			return util.ErrChallengeNotReady
		}
	}
	return nil
}

type ChallengeRequest struct {
	Domain        model.SkillDomain  `json:"domain" binding:"required"`
	Grade         model.GradeLevel   `json:"grade" binding:"required"`
	Title         string             `json:"title" binding:"required"`
	Description   string             `json:"description" binding:"required"`
	Scenario      string             `json:"scenario"`
	Tools         []string           `json:"tools"`
	TutorialLinks []string           `json:"tutorialLinks"`
	Rubric        []model.RubricItem `json:"rubric"`
	XPReward      int                `json:"xpReward"`
}

// CreateLibraryChallenge stores a teacher-authored challenge as a draft.
func (s *ChallengeService) CreateLibraryChallenge(author string, req ChallengeRequest) (*model.Challenge, error) {
	challenge := &model.Challenge{
		Domain:        req.Domain,
		Grade:         req.Grade,
		Title:         req.Title,
		Description:   req.Description,
		Scenario:      req.Scenario,
		Tools:         req.Tools,
		TutorialLinks: req.TutorialLinks,
		Rubric:        req.Rubric,
		XPReward:      req.XPReward,
		Author:        author,
		LibraryStatus: model.ChallengeDraft,
	}
	if err := ValidateForSubmission(challenge); err != nil {
		return nil, err
	}
	if err := s.ChallengeRepo.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// UpdateLibraryChallenge edits a library entry. Past submissions keep their
// rubric snapshot, so edits never reach back.
func (s *ChallengeService) UpdateLibraryChallenge(id, author string, req ChallengeRequest) (*model.Challenge, error) {
	challenge, err := s.ChallengeRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrChallengeNotFound
	}
	if challenge.Author != author {
		return nil, util.ErrPermissionDenied
	}

	challenge.Domain = req.Domain
	challenge.Grade = req.Grade
	challenge.Title = req.Title
	challenge.Description = req.Description
	challenge.Scenario = req.Scenario
	challenge.Tools = req.Tools
	challenge.TutorialLinks = req.TutorialLinks
	challenge.Rubric = req.Rubric
	challenge.XPReward = req.XPReward

	if err := ValidateForSubmission(challenge); err != nil {
		return nil, err
	}
	if err := s.ChallengeRepo.Update(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) Publish(id string) error {
	return s.ChallengeRepo.UpdateLibraryStatus(id, model.ChallengePublished)
}

func (s *ChallengeService) Archive(id string) error {
	return s.ChallengeRepo.UpdateLibraryStatus(id, model.ChallengeArchived)
}

// Assign restricts a challenge to the given students. An empty list opens
// it back up to the whole grade.
func (s *ChallengeService) Assign(id string, studentIDs []string) error {
	challenge, err := s.ChallengeRepo.FindByID(id)
	if err != nil {
		return util.ErrChallengeNotFound
	}
	challenge.AssignedStudentIDs = studentIDs
	return s.ChallengeRepo.Update(challenge)
}

// ListVisible returns published library challenges the student may work on:
// everything unassigned in their grade plus anything assigned to them.
func (s *ChallengeService) ListVisible(grade model.GradeLevel, studentID string) ([]model.Challenge, error) {
	challenges, err := s.ChallengeRepo.ListPublishedForGrade(grade)
	if err != nil {
		return nil, err
	}

	visible := make([]model.Challenge, 0, len(challenges))
	for _, c := range challenges {
		if c.EligibleFor(studentID) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (s *ChallengeService) Get(id string) (*model.Challenge, error) {
	challenge, err := s.ChallengeRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *ChallengeService) ListByAuthor(author string) ([]model.Challenge, error) {
	return s.ChallengeRepo.ListByAuthor(author)
}
