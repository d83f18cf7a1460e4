package eval

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// TestSet is a held-out split: binary labels plus the feature vectors the
// model scores.
type TestSet struct {
	Labels   []int
	Features [][]float64
}

// ReadTestSet reads a headerless split CSV with the integer label in column 0.
func ReadTestSet(path string) (*TestSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "eval: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	ts := &TestSet{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "eval: read %s", path)
		}
		if len(record) < 2 {
			return nil, eris.Errorf("eval: row with %d columns in %s", len(record), path)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, eris.Wrapf(err, "eval: label %q in %s", record[0], path)
		}

		features := make([]float64, len(record)-1)
		for i, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "eval: feature %q in %s", field, path)
			}
			features[i] = v
		}

		ts.Labels = append(ts.Labels, label)
		ts.Features = append(ts.Features, features)
	}

	if len(ts.Labels) == 0 {
		return nil, eris.Errorf("eval: empty test split %s", path)
	}
	return ts, nil
}

// Prober produces a positive-class probability for one feature vector.
type Prober interface {
	PredictProba(features []float64) (float64, error)
}

// Probabilities scores every row of the test set with bounded parallelism.
// Row order is preserved.
func Probabilities(ctx context.Context, p Prober, features [][]float64, workers int) ([]float64, error) {
	if workers <= 0 {
		workers = 1
	}

	probs := make([]float64, len(features))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, fv := range features {
		i, fv := i, fv
		g.Go(func() error {
			prob, err := p.PredictProba(fv)
			if err != nil {
				return eris.Wrapf(err, "eval: score row %d", i)
			}
			probs[i] = prob
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return probs, nil
}
