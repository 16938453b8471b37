package repository

import (
	"context"
	"design_hub_backend/internal/model"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
)

// MetricsKey is the well-known redis key holding the whole engagement
// metrics map. The blob is read and written as one value on every
// login/logout, mirroring the key-value store contract.
const MetricsKey = "design_hub:activity_metrics"

type MetricRepository struct {
	RDB *redis.Client
}

func NewMetricRepository(rdb *redis.Client) *MetricRepository {
	return &MetricRepository{RDB: rdb}
}

func (r *MetricRepository) ReadAll(ctx context.Context) (map[string]model.ActivityMetric, error) {
	raw, err := r.RDB.Get(ctx, MetricsKey).Result()
	if errors.Is(err, redis.Nil) {
		return map[string]model.ActivityMetric{}, nil
	}
	if err != nil {
		return nil, err
	}

	metrics := map[string]model.ActivityMetric{}
	if err := json.Unmarshal([]byte(raw), &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *MetricRepository) WriteAll(ctx context.Context, metrics map[string]model.ActivityMetric) error {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, MetricsKey, raw, 0).Err()
}
