package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "evaluation.json")
	require.NoError(t, NewReport(0.875).Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Exact nested key path; the downstream gate reads it with a JSON pointer.
	assert.JSONEq(t, `{"binary_classification_metrics":{"auc":{"value":0.875}}}`, string(data))
}

func TestReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evaluation.json")
	require.NoError(t, NewReport(0.76).Write(path))

	r, err := ReadReport(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.76, r.AUC(), 1e-12)
}

func TestReportGate(t *testing.T) {
	assert.True(t, NewReport(0.76).Pass(0.75))
	assert.False(t, NewReport(0.75).Pass(0.75)) // strict inequality
	assert.False(t, NewReport(0.30).Pass(0.75))
}

func TestReadReportMissing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
