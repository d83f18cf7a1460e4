package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mlpipe/internal/config"
	"github.com/sells-group/mlpipe/internal/model"
)

const testChurnCSV = `custid,created,firstorder,lastorder,favday,city,retained,esent
c1,2017-01-10,2017-01-05,2017-01-17,Monday,BLR,1,20
c2,2017-02-01,2017-01-20,2017-02-10,Tuesday,BOM,0,15
c3,2017-03-05,2017-03-01,2017-03-20,Monday,BLR,1,8
c4,2017-04-02,2017-03-28,2017-04-15,Friday,DEL,0,31
c5,2017-05-11,2017-05-01,2017-05-30,Tuesday,BOM,1,12
c6,2017-06-20,2017-06-15,2017-07-01,Monday,DEL,0,25
c7,2017-07-07,2017-07-01,2017-07-21,Friday,BLR,1,17
c8,2017-08-14,2017-08-10,2017-08-29,Tuesday,BOM,0,9
c9,2017-09-03,2017-09-01,2017-09-18,Monday,DEL,1,22
c10,2017-10-25,2017-10-20,2017-11-05,Friday,BLR,0,14
`

func setupPreprocessCfg(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	input := filepath.Join(dir, "churndata.csv")
	require.NoError(t, os.WriteFile(input, []byte(testChurnCSV), 0o644))

	cfg = &config.Config{}
	cfg.Data.InputPath = input
	cfg.Data.OutputDir = filepath.Join(dir, "processed")
	cfg.Data.VocabPath = filepath.Join(dir, "processed", "vocabulary.yaml")
	cfg.Data.Seed = 42
	cfg.Data.TrainFraction = 0.70
	cfg.Data.ValFraction = 0.15
	t.Cleanup(func() { cfg = nil })

	return dir
}

func TestPreprocessPhase(t *testing.T) {
	dir := setupPreprocessCfg(t)

	res, artifacts, err := preprocessPhase()
	require.NoError(t, err)

	assert.Equal(t, 10, res.RowsIn)
	assert.Equal(t, 10, res.RowsKept)
	assert.Len(t, res.Train, 7)
	assert.Len(t, res.Validation, 1)
	assert.Len(t, res.Test, 2)

	// Splits, plus the persisted vocabulary.
	require.Len(t, artifacts, 4)
	kinds := make(map[model.ArtifactKind]model.Artifact, len(artifacts))
	for _, a := range artifacts {
		kinds[a.Kind] = a
		assert.NotEmpty(t, a.SHA256)
		assert.FileExists(t, a.Path)
	}
	assert.Equal(t, 7, kinds[model.ArtifactTrainSplit].Rows)
	assert.Equal(t, 1, kinds[model.ArtifactValidationSplit].Rows)
	assert.Equal(t, 2, kinds[model.ArtifactTestSplit].Rows)
	assert.Contains(t, kinds, model.ArtifactVocabulary)

	assert.FileExists(t, filepath.Join(dir, "processed", "train.csv"))
}

func TestPreprocessPhase_MissingInput(t *testing.T) {
	setupPreprocessCfg(t)
	cfg.Data.InputPath = filepath.Join(t.TempDir(), "nope.csv")

	_, _, err := preprocessPhase()
	require.Error(t, err)
}

func TestPreprocessPhase_AgainstExistingVocabulary(t *testing.T) {
	setupPreprocessCfg(t)

	// First pass discovers and persists the vocabulary.
	_, _, err := preprocessPhase()
	require.NoError(t, err)

	// Second pass encodes against it.
	preprocessVocab = cfg.Data.VocabPath
	t.Cleanup(func() { preprocessVocab = "" })

	res, _, err := preprocessPhase()
	require.NoError(t, err)
	assert.Equal(t, 10, res.RowsKept)
}
