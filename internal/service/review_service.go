package service

import (
	"context"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"design_hub_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ToneValidator gates review acceptance. The production implementation
// fails open; the boundary exists so tests can script verdicts.
type ToneValidator interface {
	ValidateTone(ctx context.Context, feedback string) ToneResult
}

// ReviewStore is the persistence boundary for accepting a review.
type ReviewStore interface {
	FindByID(id string) (*model.Submission, error)
	AttachReview(submissionID string, review *model.PeerReview) error
}

type NominationStore interface {
	Create(nomination *model.Nomination) error
}

// ReviewState is the authoring state reported back to the reviewer.
type ReviewState string

const (
	ReviewAccepted      ReviewState = "ACCEPTED"
	ReviewRejectedRetry ReviewState = "REJECTED_RETRY"
)

// ReviewOutcome is the result of one submitReview attempt. A rejected
// outcome carries the validator's suggestion and loops the reviewer back
// to drafting; they may resubmit indefinitely.
type ReviewOutcome struct {
	State      ReviewState       `json:"state"`
	Suggestion string            `json:"suggestion,omitempty"`
	Review     *model.PeerReview `json:"review,omitempty"`
}

// ReviewRequest is one rating pass over a submission. Ratings may skip
// criteria; completeness across the rubric is not required.
type ReviewRequest struct {
	SubmissionID    string               `json:"submissionId" binding:"required"`
	Ratings         []model.RubricRating `json:"ratings"`
	GeneralFeedback string               `json:"generalFeedback"`
	Nominate        bool                 `json:"nominate"`
	AwardID         string               `json:"awardId"`
}

// ReviewService runs the review-authoring flow: tone gate first, then
// clamped ratings, then durable attachment to the submission.
type ReviewService struct {
	Submissions ReviewStore
	Nominations NominationStore
	Tone        ToneValidator
}

func NewReviewService(submissions ReviewStore, nominations NominationStore, tone ToneValidator) *ReviewService {
	return &ReviewService{
		Submissions: submissions,
		Nominations: nominations,
		Tone:        tone,
	}
}

// SubmitReview validates tone and, when constructive, persists the review.
// A non-constructive verdict creates nothing and mutates nothing.
func (s *ReviewService) SubmitReview(ctx context.Context, reviewer *model.User, req ReviewRequest) (*ReviewOutcome, error) {
	feedback := strings.TrimSpace(req.GeneralFeedback)
	if feedback == "" {
		return nil, util.ErrEmptyFeedback
	}

	submission, err := s.Submissions.FindByID(req.SubmissionID)
	if err != nil {
		return nil, util.ErrSubmissionNotFound
	}

	verdict := s.Tone.ValidateTone(ctx, feedback)

	// Gate all side effects on completion: an abandoned validation call
	// must not leave a review behind.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if !verdict.IsConstructive {
		return &ReviewOutcome{
			State:      ReviewRejectedRetry,
			Suggestion: verdict.Suggestion,
		}, nil
	}

	review := &model.PeerReview{
		ReviewerID:           reviewer.ID,
		SubmissionID:         submission.ID,
		Ratings:              ClampRatings(req.Ratings, submission.Rubric),
		ConstructiveFeedback: feedback,
		Timestamp:            time.Now(),
	}

	if err := s.Submissions.AttachReview(submission.ID, review); err != nil {
		return nil, err
	}

	if req.Nominate {
		if err := s.nominate(submission, reviewer, feedback, req.AwardID); err != nil {
			// The acceptance stands; the annotation is best-effort.
			logger.Log.Warn("nomination not recorded", zap.Error(err))
		}
	}

	return &ReviewOutcome{State: ReviewAccepted, Review: review}, nil
}

func (s *ReviewService) nominate(submission *model.Submission, reviewer *model.User, justification, awardID string) error {
	if awardID == "" {
		awardID = "design-excellence"
	}
	known := false
	for _, award := range model.Awards {
		if award.ID == awardID {
			known = true
			break
		}
	}
	if !known {
		return util.ErrUnknownAward
	}

	return s.Nominations.Create(&model.Nomination{
		StudentName:   submission.StudentName,
		AwardID:       awardID,
		Justification: justification,
		NominatedBy:   reviewer.Name,
		Timestamp:     time.Now(),
	})
}

// ClampRatings forces every score into [0, criterion points] against the
// submission's rubric snapshot. Ratings for unknown criteria are dropped;
// nothing out of range is ever stored.
func ClampRatings(ratings []model.RubricRating, rubric []model.RubricItem) []model.RubricRating {
	maxima := make(map[string]int, len(rubric))
	for _, item := range rubric {
		maxima[item.Criterion] = item.Points
	}

	clamped := make([]model.RubricRating, 0, len(ratings))
	for _, rating := range ratings {
		max, ok := maxima[rating.Criterion]
		if !ok {
			continue
		}
		if rating.Score < 0 {
			rating.Score = 0
		}
		if rating.Score > max {
			rating.Score = max
		}
		clamped = append(clamped, rating)
	}
	return clamped
}
