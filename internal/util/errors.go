package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrEmailNotAllowed    = errors.New("email domain not on the school allow-list")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrChallengeNotReady  = errors.New("challenge is missing a title or description")
	ErrNotAssigned        = errors.New("challenge not assigned to this student")
	ErrEmptySubmission    = errors.New("submission needs text or at least one file")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrEmptyFeedback      = errors.New("review feedback must not be empty")
	ErrInvalidStatus      = errors.New("invalid challenge status value")
	ErrTeamNotFound       = errors.New("team not found")
	ErrEmptyTeamName      = errors.New("team name must not be empty")
	ErrEmptyLogMessage    = errors.New("log message must not be empty")
	ErrEmptyDescription   = errors.New("description must not be empty")
	ErrUnknownAward       = errors.New("unknown award id")
)

// AnalyzerError wraps a feedback-analyzer failure. It aborts the whole
// submit operation; the student may retry.
type AnalyzerError struct {
	Err error
}

func (e *AnalyzerError) Error() string {
	return "feedback analyzer unavailable: " + e.Err.Error()
}

func (e *AnalyzerError) Unwrap() error { return e.Err }

// ArchiveError wraps an archive failure. Archival is best-effort, so this
// is surfaced as a warning and never rolls anything back.
type ArchiveError struct {
	Err error
}

func (e *ArchiveError) Error() string {
	return "submission archive unreachable: " + e.Err.Error()
}

func (e *ArchiveError) Unwrap() error { return e.Err }
