package scoring

import (
	"github.com/dmitryikh/leaves"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// XGBModel wraps a gradient-boosted ensemble loaded from an XGBoost model
// file. Read-only after load; safe for concurrent use.
type XGBModel struct {
	ensemble *leaves.Ensemble
}

// LoadXGBModel reads an XGBoost model file. Output transformations (sigmoid
// for binary objectives) are loaded so probabilities come out calibrated.
func LoadXGBModel(path string) (*XGBModel, error) {
	ensemble, err := leaves.XGEnsembleFromFile(path, true)
	if err != nil {
		return nil, eris.Wrapf(err, "scoring: load model %s", path)
	}

	zap.L().Info("model loaded",
		zap.String("path", path),
		zap.String("name", ensemble.Name()),
		zap.Int("trees", ensemble.NEstimators()),
		zap.Int("output_groups", ensemble.NRawOutputGroups()),
	)

	return &XGBModel{ensemble: ensemble}, nil
}

// NumClasses returns the number of output groups the ensemble produces.
func (m *XGBModel) NumClasses() int {
	return m.ensemble.NRawOutputGroups()
}

// Predict returns the argmax class index for a feature vector. A single
// output group is treated as a binary classifier thresholded at 0.5.
func (m *XGBModel) Predict(features []float64) (int, error) {
	groups := m.ensemble.NRawOutputGroups()

	if groups == 1 {
		p, err := m.PredictProba(features)
		if err != nil {
			return 0, err
		}
		if p > 0.5 {
			return 1, nil
		}
		return 0, nil
	}

	scores := make([]float64, groups)
	if err := m.ensemble.Predict(features, 0, scores); err != nil {
		return 0, eris.Wrap(err, "scoring: predict")
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best, nil
}

// PredictProba returns the positive-class probability of a binary ensemble.
func (m *XGBModel) PredictProba(features []float64) (float64, error) {
	if groups := m.ensemble.NRawOutputGroups(); groups != 1 {
		return 0, eris.Errorf("scoring: probability needs a binary model, have %d output groups", groups)
	}
	return m.ensemble.PredictSingle(features, 0), nil
}
