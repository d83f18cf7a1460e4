package scoring

import (
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/mlpipe/internal/model"
)

// TFIDFVectorizer applies the vectorization learned at training time. Nothing
// is fitted here: vocabulary, IDF weights, and layout are all read from the
// artifact exported alongside the model. Vector layout is fixed as
// [source_mapped, category_num, has_date, tfidf terms...].
type TFIDFVectorizer struct {
	Version int                `yaml:"version"`
	Terms   map[string]int     `yaml:"terms"` // term -> tf-idf column offset
	IDF     map[string]float64 `yaml:"idf"`
}

const vectorizerVersion = 1

// metaColumns precede the tf-idf block: source_mapped, category_num, has_date.
const metaColumns = 3

// LoadVectorizer reads the exported vectorizer artifact.
func LoadVectorizer(path string) (*TFIDFVectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scoring: read vectorizer %s", path)
	}
	var v TFIDFVectorizer
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, eris.Wrapf(err, "scoring: parse vectorizer %s", path)
	}
	if v.Version != vectorizerVersion {
		return nil, eris.Errorf("scoring: vectorizer version %d, want %d", v.Version, vectorizerVersion)
	}
	for term := range v.Terms {
		if _, ok := v.IDF[term]; !ok {
			return nil, eris.Errorf("scoring: term %q has no idf weight", term)
		}
	}
	return &v, nil
}

// Width returns the full feature vector width.
func (v *TFIDFVectorizer) Width() int {
	return metaColumns + len(v.Terms)
}

// Vectorize lays out one feature vector for a statement row. Terms outside
// the learned vocabulary are ignored; the tf-idf block is L2-normalized, as
// it was at training time.
func (v *TFIDFVectorizer) Vectorize(row model.FeatureRow) ([]float64, error) {
	out := make([]float64, v.Width())
	out[0] = float64(row.SourceMapped)
	out[1] = float64(row.CategoryNum)
	if row.ExtractedDate != "" {
		out[2] = 1
	}

	var norm float64
	for _, tok := range strings.Fields(row.CleanStatement) {
		col, ok := v.Terms[tok]
		if !ok {
			continue
		}
		if col < 0 || col >= len(v.Terms) {
			return nil, eris.Errorf("scoring: term %q column %d out of range", tok, col)
		}
		out[metaColumns+col] += v.IDF[tok]
	}
	for _, x := range out[metaColumns:] {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := metaColumns; i < len(out); i++ {
			out[i] /= norm
		}
	}

	return out, nil
}
