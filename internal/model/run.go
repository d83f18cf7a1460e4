package model

import "time"

// RunStatus represents the current state of a pipeline run.
type RunStatus string

const (
	RunStatusQueued        RunStatus = "queued"
	RunStatusPreprocessing RunStatus = "preprocessing"
	RunStatusEvaluating    RunStatus = "evaluating"
	RunStatusComplete      RunStatus = "complete"
	RunStatusFailed        RunStatus = "failed"
)

// Run represents a single pipeline invocation (preprocess, evaluate, or both).
type Run struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the final outcome of a run.
type RunResult struct {
	RowsIn    int           `json:"rows_in"`
	RowsKept  int           `json:"rows_kept"`
	AUC       float64       `json:"auc,omitempty"`
	GatePass  bool          `json:"gate_pass,omitempty"`
	Phases    []PhaseResult `json:"phases"`
	Artifacts []Artifact    `json:"artifacts"`
	Error     string        `json:"error,omitempty"`
}

// RunPhase represents a phase within a run.
type RunPhase struct {
	ID        string       `json:"id"`
	RunID     string       `json:"run_id"`
	Name      string       `json:"name"`
	Status    PhaseStatus  `json:"status"`
	Result    *PhaseResult `json:"result,omitempty"`
	StartedAt time.Time    `json:"started_at"`
}

// PhaseStatus represents the current state of a pipeline phase.
type PhaseStatus string

const (
	PhaseStatusRunning  PhaseStatus = "running"
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// PhaseResult holds the outcome of a single phase.
type PhaseResult struct {
	Name       string      `json:"name"`
	Status     PhaseStatus `json:"status"`
	DurationMS int64       `json:"duration_ms"`
	Error      string      `json:"error,omitempty"`
}

// ArtifactKind classifies a file produced by a pipeline stage.
type ArtifactKind string

const (
	ArtifactTrainSplit      ArtifactKind = "train_split"
	ArtifactValidationSplit ArtifactKind = "validation_split"
	ArtifactTestSplit       ArtifactKind = "test_split"
	ArtifactVocabulary      ArtifactKind = "vocabulary"
	ArtifactEvaluation      ArtifactKind = "evaluation"
)

// Artifact records a file written by a run: where it is, what it holds, and a
// checksum so a later stage can detect it was swapped out from under it.
type Artifact struct {
	Path   string       `json:"path"`
	Kind   ArtifactKind `json:"kind"`
	Rows   int          `json:"rows,omitempty"`
	SHA256 string       `json:"sha256"`
}
