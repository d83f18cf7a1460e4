package store

import (
	"context"

	"github.com/sells-group/mlpipe/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Kind   string          `json:"kind,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the pipeline run registry.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, kind string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunResult(ctx context.Context, runID string, result *model.RunResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Phases
	CreatePhase(ctx context.Context, runID string, name string) (*model.RunPhase, error)
	CompletePhase(ctx context.Context, phaseID string, result *model.PhaseResult) error

	// Artifacts
	AddArtifact(ctx context.Context, runID string, artifact model.Artifact) error
	ListArtifacts(ctx context.Context, runID string) ([]model.Artifact, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
