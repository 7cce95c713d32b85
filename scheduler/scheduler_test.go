package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile_search/config"
	"profile_search/models"
)

type pruneStore struct {
	mu      sync.Mutex
	cutoffs []time.Time
}

func (p *pruneStore) InsertSearchLog(context.Context, *models.SearchLogEntry) error { return nil }

func (p *pruneStore) ListRecentQueries(context.Context, string, int) ([]string, error) {
	return nil, nil
}

func (p *pruneStore) DeleteSearchLogsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, cutoff)
	return 1, nil
}

func testConfig(t *testing.T, yml string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(yml))
	require.NoError(t, err)
	return cfg
}

func TestGetNextTimePoint(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 16, 10, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 10, 16, 11, 0, 0, 0, loc), getNextTimePoint(now, 11, 0))
	assert.Equal(t, time.Date(2026, 10, 17, 3, 0, 0, 0, loc), getNextTimePoint(now, 3, 0))
	assert.Equal(t, time.Date(2026, 10, 17, 10, 30, 0, 0, loc), getNextTimePoint(now, 10, 30), "exact time rolls to tomorrow")
}

func TestValidateHourMinute(t *testing.T) {
	h, m := validateHourMinute(25, -1)
	assert.Equal(t, 3, h)
	assert.Equal(t, 0, m)

	h, m = validateHourMinute(4, 15)
	assert.Equal(t, 4, h)
	assert.Equal(t, 15, m)
}

func TestCheckTasksRunsDuePrune(t *testing.T) {
	cfg := testConfig(t, "scheduler:\n  prune_hour: 2\n  prune_minute: 0\nsearch:\n  log_retention_days: 7\n")
	store := &pruneStore{}
	s := NewScheduler(cfg, store)

	start := time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC)
	s.initTasks(start)

	status, ok := s.Status(TaskPruneSearchLogs)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 16, 2, 0, 0, 0, time.UTC), status.NextRun)

	// not due yet
	s.checkTasks(context.Background(), start.Add(30*time.Minute))
	s.wg.Wait()
	assert.Empty(t, store.cutoffs)

	due := time.Date(2026, 10, 16, 2, 0, 30, 0, time.UTC)
	s.checkTasks(context.Background(), due)
	s.wg.Wait()

	require.Len(t, store.cutoffs, 1)
	assert.Equal(t, due.AddDate(0, 0, -7), store.cutoffs[0])

	status, _ = s.Status(TaskPruneSearchLogs)
	assert.False(t, status.IsRunning)
	assert.Equal(t, due, status.LastRun)
	assert.Equal(t, time.Date(2026, 10, 17, 2, 0, 0, 0, time.UTC), status.NextRun)
}

func TestDebugModeInterval(t *testing.T) {
	cfg := testConfig(t, "debug:\n  enabled: true\n  prune_freq_sec: 60\n")
	s := NewScheduler(cfg, &pruneStore{})

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s.initTasks(now)

	status, ok := s.Status(TaskPruneSearchLogs)
	require.True(t, ok)
	assert.Equal(t, now.Add(time.Minute), status.NextRun)
}

func TestStartStopsOnCancel(t *testing.T) {
	cfg := testConfig(t, "scheduler:\n  check_interval_sec: 1\n")
	ctx, cancel := context.WithCancel(context.Background())

	s := Start(ctx, cfg, &pruneStore{})
	require.NotNil(t, s)
	cancel()
}
