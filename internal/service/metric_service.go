package service

import (
	"context"
	"design_hub_backend/internal/model"
	"time"
)

// MetricStore reads and writes the engagement metrics map as one blob.
type MetricStore interface {
	ReadAll(ctx context.Context) (map[string]model.ActivityMetric, error)
	WriteAll(ctx context.Context, metrics map[string]model.ActivityMetric) error
}

// MetricService records login counts and session minutes per user email.
// It is independent of the progress ledger; teacher views read it for the
// engagement table.
type MetricService struct {
	Store MetricStore
}

func NewMetricService(store MetricStore) *MetricService {
	return &MetricService{Store: store}
}

// OnLogin bumps the login count and stamps lastLogin. It returns the
// session start the caller holds on to until logout; the start time is not
// part of the stored metric.
func (s *MetricService) OnLogin(ctx context.Context, email string) (time.Time, error) {
	now := time.Now()

	metrics, err := s.Store.ReadAll(ctx)
	if err != nil {
		return time.Time{}, err
	}

	metric := metrics[email]
	metric.Email = email
	metric.LoginCount++
	metric.LastLogin = now
	metrics[email] = metric

	if err := s.Store.WriteAll(ctx, metrics); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// OnLogout adds the session duration to the user's total. A zero session
// start (no preceding login this session) is a no-op, and clock skew that
// produces a negative duration is clamped to zero rather than subtracted.
func (s *MetricService) OnLogout(ctx context.Context, email string, sessionStart time.Time) error {
	if sessionStart.IsZero() {
		return nil
	}

	minutes := time.Since(sessionStart).Minutes()
	if minutes < 0 {
		minutes = 0
	}

	metrics, err := s.Store.ReadAll(ctx)
	if err != nil {
		return err
	}

	metric, ok := metrics[email]
	if !ok {
		return nil
	}
	metric.TotalMinutes += minutes
	metrics[email] = metric

	return s.Store.WriteAll(ctx, metrics)
}

// EngagementEntry is one row of the teacher engagement table.
type EngagementEntry struct {
	model.ActivityMetric
	Online bool `json:"online"`
}

// Engagement lists every known metric with the derived online flag.
func (s *MetricService) Engagement(ctx context.Context) ([]EngagementEntry, error) {
	metrics, err := s.Store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]EngagementEntry, 0, len(metrics))
	for _, metric := range metrics {
		entries = append(entries, EngagementEntry{
			ActivityMetric: metric,
			Online:         metric.Online(now),
		})
	}
	return entries, nil
}
