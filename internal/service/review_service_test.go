package service

import (
	"context"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTone struct {
	verdicts []ToneResult
	calls    int
}

func (s *scriptedTone) ValidateTone(ctx context.Context, feedback string) ToneResult {
	verdict := s.verdicts[s.calls%len(s.verdicts)]
	s.calls++
	return verdict
}

type fakeReviewStore struct {
	submission *model.Submission
	attached   []*model.PeerReview
	findErr    error
	attachErr  error
}

func (f *fakeReviewStore) FindByID(id string) (*model.Submission, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.submission, nil
}

func (f *fakeReviewStore) AttachReview(submissionID string, review *model.PeerReview) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached = append(f.attached, review)
	return nil
}

type fakeNominationStore struct {
	created []*model.Nomination
}

func (f *fakeNominationStore) Create(nomination *model.Nomination) error {
	f.created = append(f.created, nomination)
	return nil
}

func reviewedSubmission() *model.Submission {
	sub := &model.Submission{
		StudentName: "Ben",
		Rubric: []model.RubricItem{
			{Criterion: "C.1", Points: 8},
			{Criterion: "C.2", Points: 6},
		},
	}
	sub.ID = "sub-1"
	return sub
}

func reviewer() *model.User {
	u := &model.User{Name: "Ada", Role: model.Student}
	u.ID = 42
	return u
}

func TestReviewRejectsEmptyFeedback(t *testing.T) {
	store := &fakeReviewStore{submission: reviewedSubmission()}
	svc := NewReviewService(store, &fakeNominationStore{}, &scriptedTone{verdicts: []ToneResult{{IsConstructive: true}}})

	_, err := svc.SubmitReview(context.Background(), reviewer(), ReviewRequest{
		SubmissionID:    "sub-1",
		GeneralFeedback: "  \t ",
	})

	assert.ErrorIs(t, err, util.ErrEmptyFeedback)
	assert.Empty(t, store.attached)
}

func TestReviewUnknownSubmission(t *testing.T) {
	store := &fakeReviewStore{findErr: util.ErrSubmissionNotFound}
	svc := NewReviewService(store, &fakeNominationStore{}, &scriptedTone{verdicts: []ToneResult{{IsConstructive: true}}})

	_, err := svc.SubmitReview(context.Background(), reviewer(), ReviewRequest{
		SubmissionID:    "missing",
		GeneralFeedback: "Nice work on the joints!",
	})

	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

func TestReviewToneGateRejectsWithoutSaving(t *testing.T) {
	store := &fakeReviewStore{submission: reviewedSubmission()}
	tone := &scriptedTone{verdicts: []ToneResult{
		{IsConstructive: false, Suggestion: "Say what specifically could improve."},
	}}
	svc := NewReviewService(store, &fakeNominationStore{}, tone)

	outcome, err := svc.SubmitReview(context.Background(), reviewer(), ReviewRequest{
		SubmissionID:    "sub-1",
		GeneralFeedback: "this is bad",
	})

	require.NoError(t, err)
	assert.Equal(t, ReviewRejectedRetry, outcome.State)
	assert.Equal(t, "Say what specifically could improve.", outcome.Suggestion)
	assert.Nil(t, outcome.Review)
	assert.Empty(t, store.attached)
}

func TestReviewRetryAfterRejectionSucceeds(t *testing.T) {
	store := &fakeReviewStore{submission: reviewedSubmission()}
	tone := &scriptedTone{verdicts: []ToneResult{
		{IsConstructive: false, Suggestion: "Be specific."},
		{IsConstructive: true},
	}}
	svc := NewReviewService(store, &fakeNominationStore{}, tone)

	first, err := svc.SubmitReview(context.Background(), reviewer(), ReviewRequest{
		SubmissionID:    "sub-1",
		GeneralFeedback: "meh",
	})
	require.NoError(t, err)
	assert.Equal(t, ReviewRejectedRetry, first.State)

	second, err := svc.SubmitReview(context.Background(), reviewer(), ReviewRequest{
		SubmissionID:    "sub-1",
		GeneralFeedback: "The sanding on the edges is very even; the hinge could sit flusher.",
	})
	require.NoError(t, err)
	assert.Equal(t, ReviewAccepted, second.State)
	require.Len(t, store.attached, 1)
}

func TestReviewClampsRatingsToRubric(t *testing.T) {
	store := &fakeReviewStore{submission: reviewedSubmission()}
	svc := NewReviewService(store, &fakeNominationStore{}, &scriptedTone{verdicts: []ToneResult{{IsConstructive: true}}})

	outcome, err := svc.SubmitReview(context.Background(), reviewer(), ReviewRequest{
		SubmissionID: "sub-1",
		Ratings: []model.RubricRating{
			{Criterion: "C.1", Score: 11},       // above the 8-point maximum
			{Criterion: "C.2", Score: -3},       // below zero
			{Criterion: "C.9", Score: 5},        // not in the rubric snapshot
			{Criterion: "C.2", Score: 6, Comment: "solid"},
		},
		GeneralFeedback: "Great proportions, maybe round the corners next time.",
	})

	require.NoError(t, err)
	require.Len(t, outcome.Review.Ratings, 3)
	assert.Equal(t, model.RubricRating{Criterion: "C.1", Score: 8}, outcome.Review.Ratings[0])
	assert.Equal(t, model.RubricRating{Criterion: "C.2", Score: 0}, outcome.Review.Ratings[1])
	assert.Equal(t, model.RubricRating{Criterion: "C.2", Score: 6, Comment: "solid"}, outcome.Review.Ratings[2])
}

func TestReviewNominationBestEffort(t *testing.T) {
	store := &fakeReviewStore{submission: reviewedSubmission()}
	nominations := &fakeNominationStore{}
	svc := NewReviewService(store, nominations, &scriptedTone{verdicts: []ToneResult{{IsConstructive: true}}})

	outcome, err := svc.SubmitReview(context.Background(), reviewer(), ReviewRequest{
		SubmissionID:    "sub-1",
		GeneralFeedback: "The finish is beautiful and the joints are tight.",
		Nominate:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, ReviewAccepted, outcome.State)
	require.Len(t, nominations.created, 1)
	assert.Equal(t, "Ben", nominations.created[0].StudentName)
	assert.Equal(t, "design-excellence", nominations.created[0].AwardID)
	assert.Equal(t, "Ada", nominations.created[0].NominatedBy)
}

func TestReviewUnknownAwardDoesNotBlockAcceptance(t *testing.T) {
	store := &fakeReviewStore{submission: reviewedSubmission()}
	nominations := &fakeNominationStore{}
	svc := NewReviewService(store, nominations, &scriptedTone{verdicts: []ToneResult{{IsConstructive: true}}})

	outcome, err := svc.SubmitReview(context.Background(), reviewer(), ReviewRequest{
		SubmissionID:    "sub-1",
		GeneralFeedback: "Thoughtful material choice, well documented.",
		Nominate:        true,
		AwardID:         "no-such-award",
	})

	require.NoError(t, err)
	assert.Equal(t, ReviewAccepted, outcome.State)
	assert.Empty(t, nominations.created)
	require.Len(t, store.attached, 1)
}

func TestReviewCancelledContextSavesNothing(t *testing.T) {
	store := &fakeReviewStore{submission: reviewedSubmission()}
	svc := NewReviewService(store, &fakeNominationStore{}, &scriptedTone{verdicts: []ToneResult{{IsConstructive: true}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SubmitReview(ctx, reviewer(), ReviewRequest{
		SubmissionID:    "sub-1",
		GeneralFeedback: "Good work overall.",
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.attached)
}
