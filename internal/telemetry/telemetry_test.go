package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMigratesRunsTable(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.True(t, store.db.Migrator().HasTable(&Run{}))
}

func TestRecordRunAssignsIDWhenEmpty(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	err = store.RecordRun(RunRecord{
		Phase:        PhaseHydration,
		StartedAt:    time.Now(),
		Duration:     250 * time.Millisecond,
		ClassCount:   10,
		FailureCount: 0,
	})
	require.NoError(t, err)

	runs, err := store.RecentRuns(PhaseHydration, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].ID)
	assert.Equal(t, int64(250), runs[0].DurationMS)
	assert.Equal(t, 10, runs[0].ClassCount)
}

func TestRecentRunsFiltersByPhase(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.RecordRun(RunRecord{Phase: PhaseHydration, StartedAt: time.Now()}))
	require.NoError(t, store.RecordRun(RunRecord{Phase: PhaseMappingsCompletion, StartedAt: time.Now()}))

	hydrationRuns, err := store.RecentRuns(PhaseHydration, 10)
	require.NoError(t, err)
	require.Len(t, hydrationRuns, 1)
	assert.Equal(t, string(PhaseHydration), hydrationRuns[0].Phase)

	allRuns, err := store.RecentRuns("", 10)
	require.NoError(t, err)
	assert.Len(t, allRuns, 2)
}

func TestRecordRunEncodesDetail(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	err = store.RecordRun(RunRecord{
		Phase:     PhaseMappingsCompletion,
		StartedAt: time.Now(),
		Detail:    map[string]any{"mergeFailures": float64(2)},
	})
	require.NoError(t, err)

	runs, err := store.RecentRuns(PhaseMappingsCompletion, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Contains(t, string(runs[0].Detail), "mergeFailures")
}
