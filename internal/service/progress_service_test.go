package service

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/util"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgressStore mimics the gorm repository: Load creates a fresh row
// on first access.
type fakeProgressStore struct {
	mu   sync.Mutex
	rows map[uint]*model.StudentProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: map[uint]*model.StudentProgress{}}
}

func (f *fakeProgressStore) Load(userID uint) (*model.StudentProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[userID]; ok {
		clone := *row
		clone.StatusMap = make(map[string]model.ChallengeStatus, len(row.StatusMap))
		for k, v := range row.StatusMap {
			clone.StatusMap[k] = v
		}
		return &clone, nil
	}
	return &model.StudentProgress{
		UserID:    userID,
		XP:        0,
		Level:     1,
		StatusMap: map[string]model.ChallengeStatus{},
	}, nil
}

func (f *fakeProgressStore) Save(progress *model.StudentProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *progress
	f.rows[progress.UserID] = &clone
	return nil
}

func (f *fakeProgressStore) get(userID uint) *model.StudentProgress {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[userID]
}

func TestGetStatusDefaultsToLocked(t *testing.T) {
	svc := NewProgressService(newFakeProgressStore(), nil)

	status, err := svc.GetStatus(1, model.ChallengeKey(model.Woodwork, model.G7))
	require.NoError(t, err)
	assert.Equal(t, model.StatusLocked, status)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	svc := NewProgressService(newFakeProgressStore(), nil)

	err := svc.SetStatus(1, "Woodwork-G7", model.ChallengeStatus("DONE"))
	assert.ErrorIs(t, err, util.ErrInvalidStatus)
}

func TestFirstSubmissionAwardsBonusOnce(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(store, nil)
	key := model.ChallengeKey(model.Sketching, model.G6)

	require.NoError(t, svc.SetStatus(3, key, model.StatusSubmitted))
	assert.Equal(t, SubmissionBonusXP, store.get(3).XP)

	// Resubmitting the same cell never pays again.
	require.NoError(t, svc.SetStatus(3, key, model.StatusSubmitted))
	assert.Equal(t, SubmissionBonusXP, store.get(3).XP)

	// Nor does reopening and submitting again.
	require.NoError(t, svc.SetStatus(3, key, model.StatusInProgress))
	require.NoError(t, svc.SetStatus(3, key, model.StatusSubmitted))
	assert.Equal(t, SubmissionBonusXP, store.get(3).XP)
}

func TestBonusPaidPerCellNotPerStudent(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(store, nil)

	require.NoError(t, svc.SetStatus(3, model.ChallengeKey(model.Robotics, model.G8), model.StatusSubmitted))
	require.NoError(t, svc.SetStatus(3, model.ChallengeKey(model.Textiles, model.G8), model.StatusSubmitted))

	assert.Equal(t, 2*SubmissionBonusXP, store.get(3).XP)
}

func TestNonSubmittedTransitionsNeverAward(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(store, nil)
	key := model.ChallengeKey(model.Microbits, model.G9)

	require.NoError(t, svc.SetStatus(4, key, model.StatusAvailable))
	require.NoError(t, svc.SetStatus(4, key, model.StatusInProgress))
	require.NoError(t, svc.SetStatus(4, key, model.StatusCompleted))

	assert.Zero(t, store.get(4).XP)
}

func TestAwardXPRaisesLevelAndFiresCallback(t *testing.T) {
	store := newFakeProgressStore()
	var events []int
	svc := NewProgressService(store, func(userID uint, newLevel int) {
		events = append(events, newLevel)
	})

	require.NoError(t, svc.AwardXP(5, 499))
	assert.Empty(t, events)

	require.NoError(t, svc.AwardXP(5, 1))
	assert.Equal(t, []int{2}, events)

	row := store.get(5)
	assert.Equal(t, 500, row.XP)
	assert.Equal(t, 2, row.Level)

	// Crossing several bands in one award reports the final level once.
	require.NoError(t, svc.AwardXP(5, 1000))
	assert.Equal(t, []int{2, 4}, events)
}

func TestStoredLevelNeverLowered(t *testing.T) {
	store := newFakeProgressStore()
	require.NoError(t, store.Save(&model.StudentProgress{
		UserID:    7,
		XP:        1250,
		Level:     4,
		StatusMap: map[string]model.ChallengeStatus{},
	}))

	var events []int
	svc := NewProgressService(store, func(userID uint, newLevel int) {
		events = append(events, newLevel)
	})

	// 1250 XP computes to level 3, below the stored 4: the seed level wins
	// and a 50 XP award must not emit a spurious level-up.
	require.NoError(t, svc.AwardXP(7, SubmissionBonusXP))

	row := store.get(7)
	assert.Equal(t, 1300, row.XP)
	assert.Equal(t, 4, row.Level)
	assert.Empty(t, events)

	snapshot, err := svc.Snapshot(7)
	require.NoError(t, err)
	assert.Equal(t, 4, snapshot.Level)
	assert.Equal(t, 2000, snapshot.NextLevelXP)
}

func TestLevelFormula(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{1250, 3},
		{-10, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, model.LevelForXP(tc.xp), "xp=%d", tc.xp)
	}
}

func TestProgressFractionClamped(t *testing.T) {
	assert.InDelta(t, 0.5, model.ProgressFraction(1250, 3), 1e-9)
	// Stored level above the formula pins the fraction at the floor.
	assert.Equal(t, 0.0, model.ProgressFraction(1300, 4))
	// XP past the band top never overflows the bar.
	assert.Equal(t, 1.0, model.ProgressFraction(5000, 2))
}

func TestMarkCompletedIsIdempotent(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(store, nil)
	key := model.ChallengeKey(model.LaserCutter, model.G10)

	require.NoError(t, svc.MarkCompleted(8, key, "ch-1"))
	require.NoError(t, svc.MarkCompleted(8, key, "ch-1"))

	row := store.get(8)
	assert.Equal(t, model.StatusCompleted, row.StatusMap[key])
	assert.Equal(t, []string{"ch-1"}, row.CompletedChallenges)
}

func TestConcurrentFirstSubmissionsAwardExactlyOnce(t *testing.T) {
	store := newFakeProgressStore()
	svc := NewProgressService(store, nil)
	key := model.ChallengeKey(model.ThreeDPrinting, model.G7)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.SetStatus(9, key, model.StatusSubmitted)
		}()
	}
	wg.Wait()

	assert.Equal(t, SubmissionBonusXP, store.get(9).XP)
}
