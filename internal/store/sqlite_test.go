package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contract-risk/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	counts := model.RunCounts{ContractsIn: 10, ContractsCleaned: 8, Enriched: 8, JoinMisses: 2}
	require.NoError(t, s.CompleteRun(ctx, run.ID, counts))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, counts, got.Counts)
}

func TestFailRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.FailRun(ctx, run.ID, assert.AnError))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.NotEmpty(t, got.Error)
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRun(context.Background(), "no-such-run")
	assert.Error(t, err)

	assert.Error(t, s.CompleteRun(context.Background(), "no-such-run", model.RunCounts{}))
}

func TestListRuns_FilterAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.CreateRun(ctx)
	require.NoError(t, err)
	_, err = s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, a.ID, model.RunCounts{}))

	complete, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, a.ID, complete[0].ID)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSaveAndListScoredContracts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)

	rows := []model.EnrichedContract{
		{
			ContractRecord: model.ContractRecord{
				Presenter: model.StringPtr("Acme"),
				MatchKey:  "acme_hall_2023-06-01",
			},
			FirstTimePresenter: true,
			RiskScore:          9,
		},
		{
			ContractRecord: model.ContractRecord{
				Presenter: model.StringPtr("Beta"),
				MatchKey:  "beta_na_2023-07-04",
			},
			RiskScore: 2,
		},
	}
	require.NoError(t, s.SaveScoredContracts(ctx, run.ID, rows))

	got, err := s.ListScoredContracts(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "acme_hall_2023-06-01", got[0].MatchKey)
	assert.Equal(t, 9, got[0].RiskScore)
	assert.True(t, got[0].FirstTimePresenter)
	assert.Equal(t, "Beta", model.String(got[1].Presenter))
}
