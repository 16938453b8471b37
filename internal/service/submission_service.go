package service

import (
	"context"
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"design_hub_backend/pkg/logger"
	"design_hub_backend/pkg/monitoring"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

func userIDString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// Collaborator boundaries of the pipeline. Production wiring passes the
// concrete services; tests pass fakes.

type FeedbackAnalyzer interface {
	Analyze(ctx context.Context, challengeTitle, submissionText, rubricSummary string) (*AnalysisResult, error)
}

type SubmissionArchiver interface {
	Archive(ctx context.Context, payload ArchivePayload) (*ArchiveResult, error)
}

type StatusLedger interface {
	GetStatus(userID uint, key string) (model.ChallengeStatus, error)
	SetStatus(userID uint, key string, status model.ChallengeStatus) error
}

type SubmissionStore interface {
	Create(submission *model.Submission) error
}

// SubmissionService orchestrates the submit action end to end. Ordering is
// load-bearing: validation, then analysis (fatal on failure, nothing
// mutated), then best-effort archival, then exactly one ledger write, then
// the Submission record.
type SubmissionService struct {
	Store    SubmissionStore
	Ledger   StatusLedger
	Analyzer FeedbackAnalyzer
	Archiver SubmissionArchiver
}

func NewSubmissionService(store SubmissionStore, ledger StatusLedger, analyzer FeedbackAnalyzer, archiver SubmissionArchiver) *SubmissionService {
	return &SubmissionService{
		Store:    store,
		Ledger:   ledger,
		Analyzer: analyzer,
		Archiver: archiver,
	}
}

// SubmitRequest carries everything the pipeline needs for one submit.
type SubmitRequest struct {
	User      *model.User
	Challenge *model.Challenge
	Content   string
	FileURLs  []string
	Files     []ArchiveFile
}

// SubmitOutcome reports the created submission plus a non-fatal archive
// warning when archival failed.
type SubmitOutcome struct {
	Submission     *model.Submission `json:"submission"`
	ArchiveWarning string            `json:"archiveWarning,omitempty"`
}

// Submit runs the pipeline. On analyzer failure nothing is mutated; the
// student's XP, status map, and submission history look exactly as before
// the attempt.
func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (*SubmitOutcome, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" && len(req.FileURLs) == 0 && len(req.Files) == 0 {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, util.ErrEmptySubmission
	}

	if err := ValidateForSubmission(req.Challenge); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if !req.Challenge.EligibleFor(userIDString(req.User.ID)) {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, util.ErrNotAssigned
	}

	analysis, err := s.Analyzer.Analyze(ctx, req.Challenge.Title, content, RubricSummary(req.Challenge.Rubric))
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("analyzer_failed").Inc()
		return nil, err
	}

	// The analyzer gates everything. If the caller walked away while it
	// was in flight, stop before any side effect.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	outcome := &SubmitOutcome{}
	fileURLs := req.FileURLs
	archiveResult, archiveErr := s.Archiver.Archive(ctx, ArchivePayload{
		StudentName:    req.User.Name,
		StudentID:      userIDString(req.User.ID),
		Grade:          req.Challenge.Grade,
		Domain:         req.Challenge.Domain,
		ChallengeTitle: req.Challenge.Title,
		SubmissionText: content,
		AIFeedback:     analysis.Feedback,
		ATLSkills:      analysis.ATLSkills,
		Files:          req.Files,
	})
	if archiveErr != nil {
		logger.Log.Warn("submission archive failed, continuing",
			zap.Uint("userId", req.User.ID), zap.Error(archiveErr))
		outcome.ArchiveWarning = archiveErr.Error()
	} else if archiveResult != nil && len(archiveResult.FileURLs) > 0 {
		fileURLs = append(fileURLs, archiveResult.FileURLs...)
	}

	key := model.ChallengeKey(req.Challenge.Domain, req.Challenge.Grade)
	if err := s.Ledger.SetStatus(req.User.ID, key, model.StatusSubmitted); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("ledger_failed").Inc()
		return nil, err
	}

	submission := &model.Submission{
		ChallengeID: req.Challenge.ID,
		UserID:      req.User.ID,
		Domain:      req.Challenge.Domain,
		Grade:       req.Challenge.Grade,
		Title:       req.Challenge.Title,
		StudentName: req.User.Name,
		Content:     content,
		FileURLs:    fileURLs,
		Rubric:      append([]model.RubricItem(nil), req.Challenge.Rubric...),
		Feedback:    analysis.Feedback,
		ATLSkills:   analysis.ATLSkills,
		Score:       0,
	}
	if err := s.Store.Create(submission); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("store_failed").Inc()
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("accepted").Inc()
	outcome.Submission = submission
	return outcome, nil
}
