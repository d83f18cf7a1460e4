package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mlpipe/internal/model"
)

func TestFileArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,12,41.5\n"), 0o644))

	a, err := fileArtifact(path, model.ArtifactTrainSplit, 1)
	require.NoError(t, err)

	assert.Equal(t, path, a.Path)
	assert.Equal(t, model.ArtifactTrainSplit, a.Kind)
	assert.Equal(t, 1, a.Rows)
	assert.Len(t, a.SHA256, 64)

	// Same content, same checksum.
	other := filepath.Join(t.TempDir(), "copy.csv")
	require.NoError(t, os.WriteFile(other, []byte("1,12,41.5\n"), 0o644))
	b, err := fileArtifact(other, model.ArtifactTrainSplit, 1)
	require.NoError(t, err)
	assert.Equal(t, a.SHA256, b.SHA256)
}

func TestFileArtifact_Missing(t *testing.T) {
	_, err := fileArtifact(filepath.Join(t.TempDir(), "nope.csv"), model.ArtifactEvaluation, 0)
	require.Error(t, err)
}
