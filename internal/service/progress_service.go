package service

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"design_hub_backend/pkg/monitoring"
	"sync"
)

// SubmissionBonusXP is awarded once per cell on the first transition into
// SUBMITTED.
const SubmissionBonusXP = 50

// ProgressStore is the persistence boundary of the ledger. The gorm-backed
// repository implements it in production; tests use an in-memory fake.
type ProgressStore interface {
	Load(userID uint) (*model.StudentProgress, error)
	Save(progress *model.StudentProgress) error
}

// LevelUpFunc observes level-up events. The ledger calls it after the new
// level is persisted.
type LevelUpFunc func(userID uint, newLevel int)

// ProgressService is the single writer of XP, level, and per-cell status.
// All read-modify-write cycles for one student are serialized behind a
// per-student mutex so two racing first submissions cannot both award the
// bonus.
type ProgressService struct {
	store     ProgressStore
	onLevelUp LevelUpFunc
	locks     sync.Map // userID -> *sync.Mutex
}

func NewProgressService(store ProgressStore, onLevelUp LevelUpFunc) *ProgressService {
	return &ProgressService{store: store, onLevelUp: onLevelUp}
}

func (s *ProgressService) lock(userID uint) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// load fetches progress and reconciles a stored level that lags the XP
// total. The stored level is only ever raised, so a seed row whose level
// exceeds the formula keeps its level until XP catches up.
func (s *ProgressService) load(userID uint) (*model.StudentProgress, error) {
	progress, err := s.store.Load(userID)
	if err != nil {
		return nil, err
	}
	if lvl := model.LevelForXP(progress.XP); lvl > progress.Level {
		progress.Level = lvl
	}
	return progress, nil
}

// GetStatus returns the stored status for a cell, or LOCKED when the cell
// has no entry. No side effects.
func (s *ProgressService) GetStatus(userID uint, key string) (model.ChallengeStatus, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	progress, err := s.load(userID)
	if err != nil {
		return "", err
	}
	if status, ok := progress.StatusMap[key]; ok {
		return status, nil
	}
	return model.StatusLocked, nil
}

// SetStatus overwrites a cell's status. Transitioning into SUBMITTED from
// anything below SUBMITTED/COMPLETED is a first-submission event and awards
// the fixed bonus exactly once per cell.
func (s *ProgressService) SetStatus(userID uint, key string, newStatus model.ChallengeStatus) error {
	if !newStatus.Valid() {
		return util.ErrInvalidStatus
	}

	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	progress, err := s.load(userID)
	if err != nil {
		return err
	}

	oldStatus := progress.StatusMap[key]
	firstSubmission := newStatus == model.StatusSubmitted &&
		oldStatus != model.StatusSubmitted &&
		oldStatus != model.StatusCompleted

	progress.StatusMap[key] = newStatus
	if firstSubmission {
		s.awardLocked(progress, SubmissionBonusXP)
	}

	return s.store.Save(progress)
}

// AwardXP adds XP and recomputes the level. XP never decreases through this
// path, and the stored level is monotonic.
func (s *ProgressService) AwardXP(userID uint, amount int) error {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	progress, err := s.load(userID)
	if err != nil {
		return err
	}
	s.awardLocked(progress, amount)
	return s.store.Save(progress)
}

// awardLocked mutates xp/level in place. Caller holds the student lock and
// is responsible for persisting.
func (s *ProgressService) awardLocked(progress *model.StudentProgress, amount int) {
	progress.XP += amount
	monitoring.XPAwarded.Add(float64(amount))

	newLevel := model.LevelForXP(progress.XP)
	if newLevel > progress.Level {
		progress.Level = newLevel
		if s.onLevelUp != nil {
			s.onLevelUp(progress.UserID, newLevel)
		}
	}
}

// MarkCompleted records a completed challenge id and flips the cell to
// COMPLETED.
func (s *ProgressService) MarkCompleted(userID uint, key, challengeID string) error {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	progress, err := s.load(userID)
	if err != nil {
		return err
	}

	progress.StatusMap[key] = model.StatusCompleted
	for _, id := range progress.CompletedChallenges {
		if id == challengeID {
			return s.store.Save(progress)
		}
	}
	progress.CompletedChallenges = append(progress.CompletedChallenges, challengeID)
	return s.store.Save(progress)
}

// ProgressSnapshot is the skill-matrix view of one student.
type ProgressSnapshot struct {
	UserID              uint                             `json:"userId"`
	XP                  int                              `json:"xp"`
	Level               int                              `json:"level"`
	NextLevelXP         int                              `json:"nextLevelXp"`
	ProgressFraction    float64                          `json:"progressFraction"`
	StatusMap           map[string]model.ChallengeStatus `json:"statusMap"`
	CompletedChallenges []string                         `json:"completedChallenges"`
	Badges              []string                         `json:"badges"`
}

// Snapshot returns the current progress plus the derived display values.
func (s *ProgressService) Snapshot(userID uint) (*ProgressSnapshot, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	progress, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	return &ProgressSnapshot{
		UserID:              progress.UserID,
		XP:                  progress.XP,
		Level:               progress.Level,
		NextLevelXP:         progress.Level * model.XPPerLevel,
		ProgressFraction:    model.ProgressFraction(progress.XP, progress.Level),
		StatusMap:           progress.StatusMap,
		CompletedChallenges: progress.CompletedChallenges,
		Badges:              progress.Badges,
	}, nil
}
