package repository

import (
	"context"
	"design_hub_backend/internal/model"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllMissingKeyReturnsEmptyMap(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(MetricsKey).RedisNil()

	repo := NewMetricRepository(rdb)
	metrics, err := repo.ReadAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, metrics)
	assert.Empty(t, metrics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadAllParsesBlob(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	lastLogin := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	blob, err := json.Marshal(map[string]model.ActivityMetric{
		"ada@franklin.edu": {Email: "ada@franklin.edu", LoginCount: 3, TotalMinutes: 95.5, LastLogin: lastLogin},
	})
	require.NoError(t, err)
	mock.ExpectGet(MetricsKey).SetVal(string(blob))

	repo := NewMetricRepository(rdb)
	metrics, err := repo.ReadAll(context.Background())

	require.NoError(t, err)
	require.Contains(t, metrics, "ada@franklin.edu")
	assert.Equal(t, 3, metrics["ada@franklin.edu"].LoginCount)
	assert.Equal(t, 95.5, metrics["ada@franklin.edu"].TotalMinutes)
	assert.True(t, lastLogin.Equal(metrics["ada@franklin.edu"].LastLogin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteAllStoresWholeBlob(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	metrics := map[string]model.ActivityMetric{
		"ben@franklin.edu": {Email: "ben@franklin.edu", LoginCount: 1},
	}
	blob, err := json.Marshal(metrics)
	require.NoError(t, err)
	mock.ExpectSet(MetricsKey, blob, 0).SetVal("OK")

	repo := NewMetricRepository(rdb)
	require.NoError(t, repo.WriteAll(context.Background(), metrics))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadAllRejectsCorruptBlob(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(MetricsKey).SetVal("{not json")

	repo := NewMetricRepository(rdb)
	_, err := repo.ReadAll(context.Background())
	assert.Error(t, err)
}
