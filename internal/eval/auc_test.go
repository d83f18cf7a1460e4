package eval

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAUCPerfectSeparation(t *testing.T) {
	labels := []int{0, 0, 0, 1, 1, 1}
	probs := []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9}

	auc, err := AUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, auc, 1e-12)
}

func TestAUCInvertedSeparation(t *testing.T) {
	labels := []int{1, 1, 1, 0, 0, 0}
	probs := []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9}

	auc, err := AUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, auc, 1e-12)
}

func TestAUCPartialSeparation(t *testing.T) {
	// Positives {0.2, 0.4} vs negatives {0.1, 0.3}: three of four
	// positive/negative pairs are ranked correctly.
	labels := []int{0, 1, 0, 1}
	probs := []float64{0.1, 0.2, 0.3, 0.4}

	auc, err := AUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, auc, 1e-12)
}

func TestAUCUninformativeScores(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	n := 4000
	labels := make([]int, n)
	probs := make([]float64, n)
	for i := range labels {
		if rng.Float64() < 0.4 {
			labels[i] = 1
		}
		probs[i] = rng.Float64()
	}

	auc, err := AUC(labels, probs)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, auc, 0.05)
}

func TestAUCErrors(t *testing.T) {
	_, err := AUC(nil, nil)
	assert.Error(t, err)

	_, err = AUC([]int{1, 0}, []float64{0.5})
	assert.Error(t, err)

	_, err = AUC([]int{1, 1}, []float64{0.5, 0.6})
	assert.Error(t, err, "single class")

	_, err = AUC([]int{0, 2}, []float64{0.5, 0.6})
	assert.Error(t, err, "non-binary label")
}
