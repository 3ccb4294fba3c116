// Package store persists pipeline runs and their scored output.
package store

import (
	"context"

	"github.com/sells-group/contract-risk/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
}

// Store defines the persistence interface for the scoring pipeline.
type Store interface {
	CreateRun(ctx context.Context) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, counts model.RunCounts) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	SaveScoredContracts(ctx context.Context, runID string, rows []model.EnrichedContract) error
	ListScoredContracts(ctx context.Context, runID string) ([]model.EnrichedContract, error)

	Migrate(ctx context.Context) error
	Close() error
}
