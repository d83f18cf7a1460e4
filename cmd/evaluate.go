package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mlpipe/internal/eval"
	"github.com/sells-group/mlpipe/internal/model"
	"github.com/sells-group/mlpipe/internal/scoring"
)

var (
	evaluateTestPath  string
	evaluateModelPath string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score the held-out test split and enforce the AUC gate",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, "evaluate")
		if err != nil {
			return err
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusEvaluating); err != nil {
			return err
		}

		started := time.Now()
		out, err := evaluatePhase(ctx)
		if err != nil {
			_ = st.UpdateRunResult(ctx, run.ID, &model.RunResult{Error: err.Error()})
			return eris.Wrap(err, "evaluate")
		}

		if err := st.AddArtifact(ctx, run.ID, out.Artifact); err != nil {
			return err
		}

		pass := out.Report.Pass(cfg.Evaluate.AUCThreshold)
		result := &model.RunResult{
			RowsIn:   out.Rows,
			RowsKept: out.Rows,
			AUC:      out.Report.AUC(),
			GatePass: pass,
			Phases: []model.PhaseResult{{
				Name:       "evaluate",
				Status:     model.PhaseStatusComplete,
				DurationMS: time.Since(started).Milliseconds(),
			}},
			Artifacts: []model.Artifact{out.Artifact},
		}
		if err := st.UpdateRunResult(ctx, run.ID, result); err != nil {
			return err
		}

		zap.L().Info("evaluation complete",
			zap.String("run_id", run.ID),
			zap.Int("rows", out.Rows),
			zap.Float64("auc", out.Report.AUC()),
			zap.Bool("gate_pass", pass),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}

		if !pass {
			return eris.Errorf("evaluate: auc %.4f did not exceed threshold %.2f",
				out.Report.AUC(), cfg.Evaluate.AUCThreshold)
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateTestPath, "test", "", "test split CSV path (default from config)")
	evaluateCmd.Flags().StringVar(&evaluateModelPath, "model", "", "trained model path (default from config)")
	rootCmd.AddCommand(evaluateCmd)
}

// evalOutcome bundles the evaluation report with its written artifact.
type evalOutcome struct {
	Report   *eval.Report
	Rows     int
	Artifact model.Artifact
}

// evaluatePhase scores the test split with the trained model, computes AUC,
// and writes the report JSON. The gate itself is enforced by callers.
func evaluatePhase(ctx context.Context) (*evalOutcome, error) {
	testPath := evaluateTestPath
	if testPath == "" {
		testPath = cfg.Evaluate.TestPath
	}
	modelPath := evaluateModelPath
	if modelPath == "" {
		modelPath = cfg.Model.Path
	}

	ts, err := eval.ReadTestSet(testPath)
	if err != nil {
		return nil, err
	}

	m, err := scoring.LoadXGBModel(modelPath)
	if err != nil {
		return nil, err
	}

	probs, err := eval.Probabilities(ctx, m, ts.Features, cfg.Evaluate.Workers)
	if err != nil {
		return nil, err
	}

	auc, err := eval.AUC(ts.Labels, probs)
	if err != nil {
		return nil, err
	}

	report := eval.NewReport(auc)
	if err := report.Write(cfg.Evaluate.ReportPath); err != nil {
		return nil, err
	}

	a, err := fileArtifact(cfg.Evaluate.ReportPath, model.ArtifactEvaluation, len(ts.Labels))
	if err != nil {
		return nil, err
	}

	return &evalOutcome{Report: report, Rows: len(ts.Labels), Artifact: a}, nil
}
