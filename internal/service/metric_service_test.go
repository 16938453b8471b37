package service

import (
	"context"
	"design_hub_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetricStore struct {
	metrics map[string]model.ActivityMetric
	writes  int
}

func newFakeMetricStore() *fakeMetricStore {
	return &fakeMetricStore{metrics: map[string]model.ActivityMetric{}}
}

func (f *fakeMetricStore) ReadAll(ctx context.Context) (map[string]model.ActivityMetric, error) {
	out := make(map[string]model.ActivityMetric, len(f.metrics))
	for k, v := range f.metrics {
		out[k] = v
	}
	return out, nil
}

func (f *fakeMetricStore) WriteAll(ctx context.Context, metrics map[string]model.ActivityMetric) error {
	f.writes++
	f.metrics = metrics
	return nil
}

func TestOnLoginCreatesAndIncrements(t *testing.T) {
	store := newFakeMetricStore()
	svc := NewMetricService(store)

	start, err := svc.OnLogin(context.Background(), "ada@franklin.edu")
	require.NoError(t, err)
	assert.False(t, start.IsZero())

	_, err = svc.OnLogin(context.Background(), "ada@franklin.edu")
	require.NoError(t, err)

	metric := store.metrics["ada@franklin.edu"]
	assert.Equal(t, "ada@franklin.edu", metric.Email)
	assert.Equal(t, 2, metric.LoginCount)
	assert.WithinDuration(t, time.Now(), metric.LastLogin, time.Second)
}

func TestOnLogoutAccumulatesMinutes(t *testing.T) {
	store := newFakeMetricStore()
	store.metrics["ada@franklin.edu"] = model.ActivityMetric{
		Email: "ada@franklin.edu", LoginCount: 1, TotalMinutes: 10,
	}
	svc := NewMetricService(store)

	sessionStart := time.Now().Add(-30 * time.Minute)
	require.NoError(t, svc.OnLogout(context.Background(), "ada@franklin.edu", sessionStart))

	assert.InDelta(t, 40, store.metrics["ada@franklin.edu"].TotalMinutes, 0.1)
}

func TestOnLogoutWithoutLoginIsNoOp(t *testing.T) {
	store := newFakeMetricStore()
	svc := NewMetricService(store)

	require.NoError(t, svc.OnLogout(context.Background(), "ada@franklin.edu", time.Time{}))
	assert.Zero(t, store.writes)
}

func TestOnLogoutUnknownEmailIsNoOp(t *testing.T) {
	store := newFakeMetricStore()
	svc := NewMetricService(store)

	require.NoError(t, svc.OnLogout(context.Background(), "ghost@franklin.edu", time.Now().Add(-time.Minute)))
	assert.Zero(t, store.writes)
}

func TestOnLogoutClampsClockSkew(t *testing.T) {
	store := newFakeMetricStore()
	store.metrics["ada@franklin.edu"] = model.ActivityMetric{
		Email: "ada@franklin.edu", TotalMinutes: 25,
	}
	svc := NewMetricService(store)

	// A session start in the future must never subtract minutes.
	require.NoError(t, svc.OnLogout(context.Background(), "ada@franklin.edu", time.Now().Add(10*time.Minute)))
	assert.Equal(t, 25.0, store.metrics["ada@franklin.edu"].TotalMinutes)
}

func TestEngagementOnlineFlag(t *testing.T) {
	store := newFakeMetricStore()
	store.metrics["online@franklin.edu"] = model.ActivityMetric{
		Email: "online@franklin.edu", LastLogin: time.Now().Add(-5 * time.Minute),
	}
	store.metrics["offline@franklin.edu"] = model.ActivityMetric{
		Email: "offline@franklin.edu", LastLogin: time.Now().Add(-20 * time.Minute),
	}
	svc := NewMetricService(store)

	entries, err := svc.Engagement(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byEmail := map[string]bool{}
	for _, e := range entries {
		byEmail[e.Email] = e.Online
	}
	assert.True(t, byEmail["online@franklin.edu"])
	assert.False(t, byEmail["offline@franklin.edu"])
}
