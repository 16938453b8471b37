package service

import (
	"context"
	"design_hub_backend/internal/model"
	"design_hub_backend/pkg/logger"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

const personaPrompt = `You are the engine behind a school Design Pathway Hub.
Support learning in a way that is safe, personalized, and aligned with IB MYP Design expectations.
Tone: supportive, student-friendly, clear and step-by-step.
Reply with JSON only, no prose around it.`

// criterionCStandards holds the Criterion C (Creating the Solution)
// assessment language per grade. Generated rubrics must use these codes.
var criterionCStandards = map[model.GradeLevel]string{
	model.G6: `MYP 1 Criterion C: C.1 Outline a plan with resources. C.2 Demonstrate technical skills: use tools safely with guidance. C.3 Follow the plan to create the solution. C.4 List changes made to the chosen design.`,
	model.G7: `MYP 2 Criterion C: C.1 Outline a plan considering time and resources. C.2 Apply intermediate techniques with accuracy and precision. C.3 Follow the plan to create the solution. C.4 List changes made to the design and plan.`,
	model.G8: `MYP 3 Criterion C: C.1 Construct a logical plan. C.2 Advanced technical proficiency with digital fabrication tools; justify tool selection. C.3 Follow the plan precisely. C.4 Explain changes made.`,
	model.G9: `MYP 4 Criterion C: C.1 Construct a logical plan. C.2 Professional-level craftsmanship; integrate emerging technologies; solve technical issues independently. C.3 Follow the plan. C.4 Fully justify changes made.`,
	model.G10: `MYP 5 Criterion C: C.1 Construct a logical plan. C.2 Professional-level craftsmanship; integrate emerging technologies; solve technical issues independently. C.3 Follow the plan. C.4 Fully justify changes made.`,
}

// GeneratorService is the gateway to the external content generator. Every
// method returns a usable fallback value instead of an error, so a down
// generator never blocks a student from opening a cell.
type GeneratorService struct {
	AI *AIClient
}

func NewGeneratorService(ai *AIClient) *GeneratorService {
	return &GeneratorService{AI: ai}
}

// challengePayload mirrors the JSON schema the generator is prompted to
// produce.
type challengePayload struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Scenario      string             `json:"scenario"`
	Tools         []string           `json:"tools"`
	TutorialLinks []string           `json:"tutorialLinks"`
	Rubric        []model.RubricItem `json:"rubric"`
}

// GenerateChallenge produces an ephemeral challenge draft for one matrix
// cell. The draft is permissive: missing fields are allowed until the
// student commits to start or submit.
func (s *GeneratorService) GenerateChallenge(ctx context.Context, domain model.SkillDomain, grade model.GradeLevel, difficulty model.DifficultyLevel) *model.Challenge {
	if difficulty == "" {
		difficulty = model.Medium
	}

	standards := criterionCStandards[grade]
	prompt := fmt.Sprintf(`Create a practical IB MYP Design challenge for grade %s in the skill domain %q at difficulty %s.
Align the rubric EXCLUSIVELY with Criterion C (Creating the Solution): %s
The rubric entries must use the criterion codes above (e.g. "C.2") with integer point maxima.
Include 2-3 tutorial search terms, at least one safety-focused.
Respond with a JSON object: {"title","description","scenario","tools":[],"tutorialLinks":[],"rubric":[{"criterion","points","description"}]}`,
		grade, domain, difficulty, standards)

	payload, err := s.completeChallenge(ctx, prompt)
	if err != nil {
		logger.Log.Warn("challenge generation failed, using fallback",
			zap.String("domain", string(domain)), zap.String("grade", string(grade)), zap.Error(err))
		return fallbackChallenge(domain, grade)
	}

	return &model.Challenge{
		Domain:        domain,
		Grade:         grade,
		Title:         payload.Title,
		Description:   payload.Description,
		Scenario:      payload.Scenario,
		Tools:         payload.Tools,
		TutorialLinks: payload.TutorialLinks,
		Rubric:        payload.Rubric,
		XPReward:      SubmissionBonusXP,
		Author:        "System",
	}
}

// GeneratePracticeChallenge produces a short low-stakes skill drill with a
// pass/fail style rubric.
func (s *GeneratorService) GeneratePracticeChallenge(ctx context.Context, domain model.SkillDomain, grade model.GradeLevel) *model.Challenge {
	prompt := fmt.Sprintf(`Create a SHORT 20-minute practice drill for a grade %s student to improve their %q skills.
This is a low-stakes drill, not a full design cycle project. Keep the scenario simple, give step-by-step
drill instructions, a simple pass/fail checklist rubric, and minimal tools.
Respond with a JSON object: {"title","description","scenario","tools":[],"tutorialLinks":[],"rubric":[{"criterion","points","description"}]}`,
		grade, domain)

	payload, err := s.completeChallenge(ctx, prompt)
	if err != nil {
		logger.Log.Warn("practice drill generation failed, using fallback",
			zap.String("domain", string(domain)), zap.Error(err))
		return &model.Challenge{
			Domain:        domain,
			Grade:         grade,
			Title:         fmt.Sprintf("Quick Drill: %s", domain),
			Description:   "Practice your basics. 1. Set up tools. 2. Perform the basic operation. 3. Clean up.",
			Scenario:      "Practice makes perfect.",
			Tools:         []string{},
			TutorialLinks: []string{},
			Rubric:        []model.RubricItem{},
			Author:        "System",
		}
	}

	return &model.Challenge{
		Domain:        domain,
		Grade:         grade,
		Title:         payload.Title,
		Description:   payload.Description,
		Scenario:      payload.Scenario,
		Tools:         payload.Tools,
		TutorialLinks: payload.TutorialLinks,
		Rubric:        payload.Rubric,
		Author:        "System",
	}
}

// GenerateTeamChallenge produces a collaborative project brief for a team
// of 3-4 students around a theme. MYP 4 standards are the rigor benchmark.
func (s *GeneratorService) GenerateTeamChallenge(ctx context.Context, theme string) *model.CollaborativeProject {
	prompt := fmt.Sprintf(`Create a collaborative IB MYP Design project for a team of 3-4 students. Theme: %q.
Use these MYP 4 standards as the rubric quality benchmark: %s
The project should require multiple skills, use the roles Project Manager, Lead Researcher, Prototyper
and Documentation Lead, and have clear deliverables per design-cycle phase. Include 2-3 tutorial search terms.
Respond with a JSON object: {"title","scenario","objectives":[],"deliverables":[],"teamRubric":[{"criterion","points","description"}],"tutorialLinks":[]}`,
		theme, criterionCStandards[model.G9])

	reply, err := s.AI.Complete(ctx, personaPrompt, prompt)
	if err == nil {
		var project model.CollaborativeProject
		if jsonErr := json.Unmarshal([]byte(extractJSON(reply)), &project); jsonErr == nil {
			project.Theme = theme
			return &project
		} else {
			err = jsonErr
		}
	}

	logger.Log.Warn("team challenge generation failed, using fallback",
		zap.String("theme", theme), zap.Error(err))
	return &model.CollaborativeProject{
		Title:        "Team Innovation Challenge",
		Theme:        theme,
		Scenario:     "Work together to solve a community problem.",
		Objectives:   []string{"Identify problem", "Design solution", "Build prototype"},
		Deliverables: []string{"Process Journal", "Prototype"},
		TeamRubric:   []model.RubricItem{},
	}
}

func (s *GeneratorService) completeChallenge(ctx context.Context, prompt string) (*challengePayload, error) {
	reply, err := s.AI.Complete(ctx, personaPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var payload challengePayload
	if err := json.Unmarshal([]byte(extractJSON(reply)), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func fallbackChallenge(domain model.SkillDomain, grade model.GradeLevel) *model.Challenge {
	return &model.Challenge{
		Domain:        domain,
		Grade:         grade,
		Title:         fmt.Sprintf("%s Challenge for %s", domain, grade),
		Description:   "Could not generate content at this time. Please try again.",
		Scenario:      "System offline.",
		Tools:         []string{},
		TutorialLinks: []string{},
		Rubric:        []model.RubricItem{},
		Author:        "System",
	}
}
