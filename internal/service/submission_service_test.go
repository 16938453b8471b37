package service

import (
	"context"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	result *AnalysisResult
	err    error
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, title, text, rubric string) (*AnalysisResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeArchiver struct {
	result *ArchiveResult
	err    error
	calls  int
}

func (f *fakeArchiver) Archive(ctx context.Context, payload ArchivePayload) (*ArchiveResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeLedger struct {
	statuses map[string]model.ChallengeStatus
	setCalls int
	err      error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{statuses: map[string]model.ChallengeStatus{}}
}

func (f *fakeLedger) GetStatus(userID uint, key string) (model.ChallengeStatus, error) {
	if status, ok := f.statuses[key]; ok {
		return status, nil
	}
	return model.StatusLocked, nil
}

func (f *fakeLedger) SetStatus(userID uint, key string, status model.ChallengeStatus) error {
	f.setCalls++
	if f.err != nil {
		return f.err
	}
	f.statuses[key] = status
	return nil
}

type fakeSubmissionStore struct {
	created []*model.Submission
	err     error
}

func (f *fakeSubmissionStore) Create(submission *model.Submission) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, submission)
	return nil
}

func testChallenge() *model.Challenge {
	return &model.Challenge{
		Domain:      model.Woodwork,
		Grade:       model.G7,
		Title:       "Build a birdhouse",
		Description: "Design and assemble a small birdhouse.",
		Rubric: []model.RubricItem{
			{Criterion: "C.1", Description: "Plan quality", Points: 8},
			{Criterion: "C.2", Description: "Craftsmanship", Points: 8},
		},
	}
}

func testStudent() *model.User {
	u := &model.User{Name: "Ada", Email: "ada@franklin.edu", Role: model.Student, Grade: model.G7}
	u.ID = 42
	return u
}

func newSubmitFixture() (*SubmissionService, *fakeSubmissionStore, *fakeLedger, *fakeAnalyzer, *fakeArchiver) {
	store := &fakeSubmissionStore{}
	ledger := newFakeLedger()
	analyzer := &fakeAnalyzer{result: &AnalysisResult{
		Feedback:  "Solid joinery. Mind the saw guard next time (C.2).",
		ATLSkills: []model.ATLSkill{"Self-Management"},
	}}
	archiver := &fakeArchiver{result: &ArchiveResult{Success: true}}
	return NewSubmissionService(store, ledger, analyzer, archiver), store, ledger, analyzer, archiver
}

func TestSubmitRejectsEmptyContent(t *testing.T) {
	svc, store, ledger, analyzer, _ := newSubmitFixture()

	_, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: testChallenge(),
		Content:   "   \n\t ",
	})

	assert.ErrorIs(t, err, util.ErrEmptySubmission)
	assert.Zero(t, analyzer.calls)
	assert.Zero(t, ledger.setCalls)
	assert.Empty(t, store.created)
}

func TestSubmitAcceptsFilesOnly(t *testing.T) {
	svc, store, _, _, _ := newSubmitFixture()

	outcome, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: testChallenge(),
		FileURLs:  []string{"/uploads/plan.pdf"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/plan.pdf"}, outcome.Submission.FileURLs)
	require.Len(t, store.created, 1)
}

func TestSubmitRejectsUnreadyChallenge(t *testing.T) {
	svc, store, ledger, _, _ := newSubmitFixture()
	challenge := testChallenge()
	challenge.Description = "  "

	_, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: challenge,
		Content:   "my work",
	})

	assert.ErrorIs(t, err, util.ErrChallengeNotReady)
	assert.Zero(t, ledger.setCalls)
	assert.Empty(t, store.created)
}

func TestSubmitRejectsUnassignedStudent(t *testing.T) {
	svc, store, ledger, _, _ := newSubmitFixture()
	challenge := testChallenge()
	challenge.AssignedStudentIDs = []string{"7", "9"} // not student 42

	_, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: challenge,
		Content:   "my work",
	})

	assert.ErrorIs(t, err, util.ErrNotAssigned)
	assert.Zero(t, ledger.setCalls)
	assert.Empty(t, store.created)
}

func TestSubmitAnalyzerFailureMutatesNothing(t *testing.T) {
	svc, store, ledger, analyzer, archiver := newSubmitFixture()
	analyzer.err = &util.AnalyzerError{Err: errors.New("connection refused")}

	_, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: testChallenge(),
		Content:   "my work",
	})

	var analyzerErr *util.AnalyzerError
	require.ErrorAs(t, err, &analyzerErr)
	assert.Zero(t, archiver.calls)
	assert.Zero(t, ledger.setCalls)
	assert.Empty(t, store.created)
}

func TestSubmitArchiveFailureIsNonFatal(t *testing.T) {
	svc, store, ledger, _, archiver := newSubmitFixture()
	archiver.result = nil
	archiver.err = &util.ArchiveError{Err: errors.New("gateway timeout")}

	outcome, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: testChallenge(),
		Content:   "my work",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, outcome.ArchiveWarning)
	assert.Equal(t, 1, ledger.setCalls)
	require.Len(t, store.created, 1)
	assert.Equal(t, model.StatusSubmitted, ledger.statuses[model.ChallengeKey(model.Woodwork, model.G7)])
}

func TestSubmitHappyPath(t *testing.T) {
	svc, store, ledger, _, archiver := newSubmitFixture()
	archiver.result = &ArchiveResult{Success: true, FileURLs: []string{"https://archive.school/f/1"}}

	outcome, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: testChallenge(),
		Content:   "my work",
		FileURLs:  []string{"/uploads/photo.jpg"},
	})

	require.NoError(t, err)
	require.Len(t, store.created, 1)
	sub := store.created[0]

	assert.Equal(t, uint(42), sub.UserID)
	assert.Equal(t, "Ada", sub.StudentName)
	assert.Equal(t, "Solid joinery. Mind the saw guard next time (C.2).", sub.Feedback)
	assert.Equal(t, []model.ATLSkill{"Self-Management"}, sub.ATLSkills)
	assert.Equal(t, []string{"/uploads/photo.jpg", "https://archive.school/f/1"}, sub.FileURLs)
	assert.Zero(t, sub.Score)

	// Exactly one ledger write, into SUBMITTED.
	assert.Equal(t, 1, ledger.setCalls)
	assert.Equal(t, model.StatusSubmitted, ledger.statuses[model.ChallengeKey(model.Woodwork, model.G7)])

	assert.Same(t, sub, outcome.Submission)
	assert.Empty(t, outcome.ArchiveWarning)
}

func TestSubmitRubricIsSnapshot(t *testing.T) {
	svc, store, _, _, _ := newSubmitFixture()
	challenge := testChallenge()

	_, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: challenge,
		Content:   "my work",
	})
	require.NoError(t, err)

	// A later library edit must not reach into the stored record.
	challenge.Rubric[0].Points = 99
	assert.Equal(t, 8, store.created[0].Rubric[0].Points)
}

func TestSubmitLedgerFailureSkipsRecord(t *testing.T) {
	svc, store, ledger, _, _ := newSubmitFixture()
	ledger.err = errors.New("deadlock")

	_, err := svc.Submit(context.Background(), SubmitRequest{
		User:      testStudent(),
		Challenge: testChallenge(),
		Content:   "my work",
	})

	require.Error(t, err)
	assert.Empty(t, store.created)
}

func TestSubmitCancelledContextStopsBeforeSideEffects(t *testing.T) {
	svc, store, ledger, _, archiver := newSubmitFixture()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Submit(ctx, SubmitRequest{
		User:      testStudent(),
		Challenge: testChallenge(),
		Content:   "my work",
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, archiver.calls)
	assert.Zero(t, ledger.setCalls)
	assert.Empty(t, store.created)
}
