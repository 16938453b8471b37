package service

import (
	"context"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"design_hub_backend/pkg/logger"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// AnalysisResult is the feedback analyzer's verdict on one submission.
type AnalysisResult struct {
	Feedback  string           `json:"feedback"`
	ATLSkills []model.ATLSkill `json:"atlSkills"`
}

// ToneResult is the tone validator's verdict on peer feedback text.
type ToneResult struct {
	IsConstructive bool   `json:"isConstructive"`
	Suggestion     string `json:"suggestion,omitempty"`
}

// FeedbackService wraps the two feedback-related external calls. Analyze
// errors are propagated and fatal to the submit pipeline; ValidateTone
// fails open so a down moderator never blocks a review.
type FeedbackService struct {
	AI *AIClient
}

func NewFeedbackService(ai *AIClient) *FeedbackService {
	return &FeedbackService{AI: ai}
}

// Analyze asks for Criterion C feedback plus demonstrated ATL skills. Any
// transport or parse failure is returned to the caller as an AnalyzerError.
func (s *FeedbackService) Analyze(ctx context.Context, challengeTitle, submissionText, rubricSummary string) (*AnalysisResult, error) {
	prompt := fmt.Sprintf(`Challenge: %s
Student submission description: %q
Rubric criteria (Criterion C, technical skills): %s

Task 1: Provide constructive feedback (max 100 words) on the student's technical skills,
referencing criterion codes (e.g. C.2) where applicable. Start with positive reinforcement,
then suggest one improvement on safety or accuracy.
Task 2: Identify which ATL skills the submission demonstrates. Options:
"Communication", "Social", "Self-Management", "Research", "Thinking". Select 1-3.
Respond with a JSON object: {"feedback":"...","atlSkills":["..."]}`,
		challengeTitle, submissionText, rubricSummary)

	reply, err := s.AI.Complete(ctx, personaPrompt, prompt)
	if err != nil {
		return nil, &util.AnalyzerError{Err: err}
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(reply)), &result); err != nil {
		return nil, &util.AnalyzerError{Err: err}
	}
	return &result, nil
}

// ValidateTone checks whether peer feedback is constructive. When the
// service is unreachable or returns garbage the text is treated as
// constructive: moderation unavailability must not block students.
func (s *FeedbackService) ValidateTone(ctx context.Context, feedback string) ToneResult {
	prompt := fmt.Sprintf(`Analyze the following peer review feedback written by a student for another student:
%q
Is this feedback constructive, kind, and specific? If it is rude, too vague (e.g. "it's bad"),
or unhelpful, return false and suggest a better way to phrase it.
Respond with a JSON object: {"isConstructive":true|false,"suggestion":"..."}`,
		feedback)

	reply, err := s.AI.Complete(ctx, personaPrompt, prompt)
	if err != nil {
		logger.Log.Warn("tone validator unreachable, failing open", zap.Error(err))
		return ToneResult{IsConstructive: true}
	}

	var result ToneResult
	if err := json.Unmarshal([]byte(extractJSON(reply)), &result); err != nil {
		logger.Log.Warn("tone validator returned malformed response, failing open", zap.Error(err))
		return ToneResult{IsConstructive: true}
	}
	return result
}

// RubricSummary flattens a rubric into the single line the analyzer prompt
// expects.
func RubricSummary(rubric []model.RubricItem) string {
	summary := ""
	for i, item := range rubric {
		if i > 0 {
			summary += "; "
		}
		summary += fmt.Sprintf("%s (%d pts): %s", item.Criterion, item.Points, item.Description)
	}
	return summary
}
