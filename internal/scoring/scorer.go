// Package scoring wraps the trained statement classifier: feature row in,
// human-readable verdict out. All failures cross this boundary as typed
// errors; nothing panics into the serving layer.
package scoring

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/mlpipe/internal/model"
)

// ErrScoring marks any failure between feature row and label.
var ErrScoring = eris.New("scoring: prediction failed")

// classLabels is the fixed 7-way verdict table. Class indexes are assigned at
// training time and must not be reordered.
var classLabels = map[int]string{
	0: "True",
	1: "Mostly True",
	2: "Half True",
	3: "Mostly False",
	4: "False",
	5: "Full Flop",
	6: "Pants on Fire",
}

// Vectorizer converts an engineered feature row into the numeric vector the
// classifier was trained on. The transform itself is learned offline; this
// contract only applies it.
type Vectorizer interface {
	Vectorize(row model.FeatureRow) ([]float64, error)
}

// Predictor is the opaque trained-classifier capability.
type Predictor interface {
	Predict(features []float64) (int, error)
}

// Scorer glues the vectorizer and classifier together.
type Scorer struct {
	vec  Vectorizer
	pred Predictor
}

// NewScorer creates a Scorer from a vectorizer and a trained predictor.
func NewScorer(vec Vectorizer, pred Predictor) *Scorer {
	return &Scorer{vec: vec, pred: pred}
}

// Score predicts the verdict for one encoded statement.
func (s *Scorer) Score(row model.FeatureRow) (model.Prediction, error) {
	features, err := s.vec.Vectorize(row)
	if err != nil {
		return model.Prediction{}, eris.Wrapf(ErrScoring, "vectorize: %v", err)
	}

	idx, err := s.pred.Predict(features)
	if err != nil {
		return model.Prediction{}, eris.Wrapf(ErrScoring, "predict: %v", err)
	}

	label, ok := classLabels[idx]
	if !ok {
		return model.Prediction{}, eris.Wrapf(ErrScoring, "class index %d out of range", idx)
	}

	return model.Prediction{Label: label}, nil
}
