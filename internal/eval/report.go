package eval

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Report is the evaluation artifact. The nested key path is a contract with
// the downstream registration gate; do not flatten it.
type Report struct {
	BinaryClassificationMetrics Metrics `json:"binary_classification_metrics"`
}

// Metrics holds the per-metric values.
type Metrics struct {
	AUC Metric `json:"auc"`
}

// Metric is a single named metric value.
type Metric struct {
	Value float64 `json:"value"`
}

// NewReport builds a report for an AUC value.
func NewReport(auc float64) *Report {
	return &Report{BinaryClassificationMetrics: Metrics{AUC: Metric{Value: auc}}}
}

// AUC returns the report's AUC value.
func (r *Report) AUC() float64 {
	return r.BinaryClassificationMetrics.AUC.Value
}

// Pass reports whether the model clears the registration gate.
func (r *Report) Pass(threshold float64) bool {
	return r.AUC() > threshold
}

// Write writes the report JSON to path, creating parent directories.
func (r *Report) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "eval: mkdir for %s", path)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "eval: marshal report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "eval: write report %s", path)
	}
	return nil
}

// ReadReport loads a previously written report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "eval: read report %s", path)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrapf(err, "eval: parse report %s", path)
	}
	return &r, nil
}
