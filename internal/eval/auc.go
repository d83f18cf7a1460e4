// Package eval computes the held-out ranking metric and emits the evaluation
// report consumed by the downstream registration gate.
package eval

import (
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// AUC computes the area under the ROC curve for binary labels and predicted
// positive-class probabilities. Both classes must be present; AUC is
// undefined otherwise.
func AUC(labels []int, probs []float64) (float64, error) {
	if len(labels) == 0 || len(labels) != len(probs) {
		return 0, eris.Errorf("eval: %d labels vs %d probabilities", len(labels), len(probs))
	}

	type pair struct {
		score float64
		pos   bool
	}
	pairs := make([]pair, len(labels))
	var positives int
	for i, l := range labels {
		if l != 0 && l != 1 {
			return 0, eris.Errorf("eval: label %d is not binary", l)
		}
		pairs[i] = pair{score: probs[i], pos: l == 1}
		if l == 1 {
			positives++
		}
	}
	if positives == 0 || positives == len(labels) {
		return 0, eris.New("eval: AUC undefined with a single class")
	}

	// stat.ROC wants scores ascending with classes aligned.
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	scores := make([]float64, len(pairs))
	classes := make([]bool, len(pairs))
	for i, p := range pairs {
		scores[i] = p.score
		classes[i] = p.pos
	}

	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}
