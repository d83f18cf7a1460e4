package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mlpipe/internal/model"
	"github.com/sells-group/mlpipe/internal/tabular"
)

var (
	preprocessInput string
	preprocessVocab string
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Encode the raw churn CSV into train/validation/test splits",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, "preprocess")
		if err != nil {
			return err
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusPreprocessing); err != nil {
			return err
		}

		started := time.Now()
		res, artifacts, err := preprocessPhase()
		if err != nil {
			_ = st.UpdateRunResult(ctx, run.ID, &model.RunResult{Error: err.Error()})
			return eris.Wrap(err, "preprocess")
		}

		for _, a := range artifacts {
			if err := st.AddArtifact(ctx, run.ID, a); err != nil {
				return err
			}
		}

		result := &model.RunResult{
			RowsIn:   res.RowsIn,
			RowsKept: res.RowsKept,
			Phases: []model.PhaseResult{{
				Name:       "preprocess",
				Status:     model.PhaseStatusComplete,
				DurationMS: time.Since(started).Milliseconds(),
			}},
			Artifacts: artifacts,
		}
		if err := st.UpdateRunResult(ctx, run.ID, result); err != nil {
			return err
		}

		zap.L().Info("preprocess complete",
			zap.String("run_id", run.ID),
			zap.Int("rows_in", res.RowsIn),
			zap.Int("rows_kept", res.RowsKept),
			zap.Int("dropped_missing", res.DroppedMissing),
			zap.Int("dropped_malformed", res.DroppedMalformed),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	preprocessCmd.Flags().StringVar(&preprocessInput, "input", "", "raw CSV path (default from config)")
	preprocessCmd.Flags().StringVar(&preprocessVocab, "vocab", "", "encode against an existing vocabulary instead of discovering one")
	rootCmd.AddCommand(preprocessCmd)
}

// preprocessPhase runs the tabular stage end to end: read, encode, write
// splits, persist the vocabulary. Returns the encode result and artifact
// records for everything written.
func preprocessPhase() (*tabular.Result, []model.Artifact, error) {
	input := preprocessInput
	if input == "" {
		input = cfg.Data.InputPath
	}

	batch, err := tabular.ReadFile(input)
	if err != nil {
		return nil, nil, err
	}

	opts := tabular.Options{
		Seed:          cfg.Data.Seed,
		TrainFraction: cfg.Data.TrainFraction,
		ValFraction:   cfg.Data.ValFraction,
	}
	if preprocessVocab != "" {
		vocab, err := tabular.LoadVocabulary(preprocessVocab)
		if err != nil {
			return nil, nil, err
		}
		opts.Vocab = vocab
	}

	res, err := tabular.Encode(batch, opts)
	if err != nil {
		return nil, nil, err
	}

	paths, err := tabular.WriteSplits(res, cfg.Data.OutputDir)
	if err != nil {
		return nil, nil, err
	}
	if err := tabular.SaveVocabulary(res.Vocab, cfg.Data.VocabPath); err != nil {
		return nil, nil, err
	}

	kinds := []model.ArtifactKind{model.ArtifactTrainSplit, model.ArtifactValidationSplit, model.ArtifactTestSplit}
	counts := []int{len(res.Train), len(res.Validation), len(res.Test)}

	artifacts := make([]model.Artifact, 0, len(paths)+1)
	for i, path := range paths {
		a, err := fileArtifact(path, kinds[i], counts[i])
		if err != nil {
			return nil, nil, err
		}
		artifacts = append(artifacts, a)
	}

	va, err := fileArtifact(cfg.Data.VocabPath, model.ArtifactVocabulary, 0)
	if err != nil {
		return nil, nil, err
	}
	artifacts = append(artifacts, va)

	return res, artifacts, nil
}
