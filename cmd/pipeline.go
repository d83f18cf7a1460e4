package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mlpipe/internal/model"
	"github.com/sells-group/mlpipe/internal/store"
	"github.com/sells-group/mlpipe/internal/tabular"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run preprocess and evaluate as one recorded run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, "pipeline")
		if err != nil {
			return err
		}

		result := &model.RunResult{}

		// Phase 1: preprocess.
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusPreprocessing); err != nil {
			return err
		}
		res, artifacts, phaseRes, err := runRecordedPreprocess(ctx, st, run.ID)
		result.Phases = append(result.Phases, *phaseRes)
		if err != nil {
			result.Error = err.Error()
			_ = st.UpdateRunResult(ctx, run.ID, result)
			return eris.Wrap(err, "pipeline: preprocess")
		}
		result.RowsIn = res.RowsIn
		result.RowsKept = res.RowsKept
		result.Artifacts = append(result.Artifacts, artifacts...)

		// Phase 2: evaluate.
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusEvaluating); err != nil {
			return err
		}
		out, phaseRes, err := runRecordedEvaluate(ctx, st, run.ID)
		result.Phases = append(result.Phases, *phaseRes)
		if err != nil {
			result.Error = err.Error()
			_ = st.UpdateRunResult(ctx, run.ID, result)
			return eris.Wrap(err, "pipeline: evaluate")
		}
		result.AUC = out.Report.AUC()
		result.GatePass = out.Report.Pass(cfg.Evaluate.AUCThreshold)
		result.Artifacts = append(result.Artifacts, out.Artifact)

		if err := st.UpdateRunResult(ctx, run.ID, result); err != nil {
			return err
		}

		zap.L().Info("pipeline complete",
			zap.String("run_id", run.ID),
			zap.Int("rows_kept", result.RowsKept),
			zap.Float64("auc", result.AUC),
			zap.Bool("gate_pass", result.GatePass),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}

		if !result.GatePass {
			return eris.Errorf("pipeline: auc %.4f did not exceed threshold %.2f",
				result.AUC, cfg.Evaluate.AUCThreshold)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

// runRecordedPreprocess wraps preprocessPhase with phase bookkeeping in the
// run registry.
func runRecordedPreprocess(ctx context.Context, st store.Store, runID string) (res *tabular.Result, artifacts []model.Artifact, phaseRes *model.PhaseResult, err error) {
	phase, err := st.CreatePhase(ctx, runID, "preprocess")
	if err != nil {
		return nil, nil, &model.PhaseResult{Name: "preprocess", Status: model.PhaseStatusFailed, Error: err.Error()}, err
	}

	started := time.Now()
	r, arts, err := preprocessPhase()
	phaseRes = &model.PhaseResult{
		Name:       "preprocess",
		Status:     model.PhaseStatusComplete,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if err != nil {
		phaseRes.Status = model.PhaseStatusFailed
		phaseRes.Error = err.Error()
	}
	_ = st.CompletePhase(ctx, phase.ID, phaseRes)
	if err != nil {
		return nil, nil, phaseRes, err
	}

	for _, a := range arts {
		if aerr := st.AddArtifact(ctx, runID, a); aerr != nil {
			return nil, nil, phaseRes, aerr
		}
	}
	return r, arts, phaseRes, nil
}

// runRecordedEvaluate wraps evaluatePhase with phase bookkeeping in the run
// registry.
func runRecordedEvaluate(ctx context.Context, st store.Store, runID string) (out *evalOutcome, phaseRes *model.PhaseResult, err error) {
	phase, err := st.CreatePhase(ctx, runID, "evaluate")
	if err != nil {
		return nil, &model.PhaseResult{Name: "evaluate", Status: model.PhaseStatusFailed, Error: err.Error()}, err
	}

	started := time.Now()
	o, err := evaluatePhase(ctx)
	phaseRes = &model.PhaseResult{
		Name:       "evaluate",
		Status:     model.PhaseStatusComplete,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if err != nil {
		phaseRes.Status = model.PhaseStatusFailed
		phaseRes.Error = err.Error()
	}
	_ = st.CompletePhase(ctx, phase.ID, phaseRes)
	if err != nil {
		return nil, phaseRes, err
	}

	if aerr := st.AddArtifact(ctx, runID, o.Artifact); aerr != nil {
		return nil, phaseRes, aerr
	}
	return o, phaseRes, nil
}
