package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSplits(t *testing.T) {
	res := &Result{
		Train:      [][]float64{{1, 12, 41.5}, {0, 8, -3}},
		Validation: [][]float64{{1, 9, 0}},
		Test:       [][]float64{{0, 7, 2}},
	}

	dir := t.TempDir()
	paths, err := WriteSplits(res, dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	train, err := os.ReadFile(filepath.Join(dir, TrainFile))
	require.NoError(t, err)
	// Headerless, label as integer in column 0.
	assert.Equal(t, "1,12,41.5\n0,8,-3\n", string(train))

	val, err := os.ReadFile(filepath.Join(dir, ValidationFile))
	require.NoError(t, err)
	assert.Equal(t, "1,9,0\n", string(val))

	test, err := os.ReadFile(filepath.Join(dir, TestFile))
	require.NoError(t, err)
	assert.Equal(t, "0,7,2\n", string(test))
}
