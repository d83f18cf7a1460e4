package tabular

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Vocabulary pins the full feature layout discovered at training time: the
// passthrough numeric columns in order, and the observed categorical values
// for the two one-hot columns. Encoding against a persisted vocabulary is the
// only way the online path can produce rows the trained model accepts.
type Vocabulary struct {
	Version    int      `yaml:"version"`
	NumericCol []string `yaml:"numeric_columns"`
	FavDay     []string `yaml:"favday"`
	City       []string `yaml:"city"`
}

// vocabVersion is bumped whenever the artifact layout changes.
const vocabVersion = 1

// buildVocabulary discovers the one-hot vocabulary from a filtered batch.
// Values are sorted so the column layout is deterministic for a given batch.
func buildVocabulary(rows []row, extraCols []string) *Vocabulary {
	favSet := make(map[string]struct{})
	citySet := make(map[string]struct{})
	for _, r := range rows {
		favSet[r.favDay] = struct{}{}
		citySet[r.city] = struct{}{}
	}

	v := &Vocabulary{
		Version:    vocabVersion,
		NumericCol: append([]string(nil), extraCols...),
		FavDay:     sortedKeys(favSet),
		City:       sortedKeys(citySet),
	}
	return v
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Columns returns the engineered feature column names in output order, label
// excluded: passthrough numerics, the two derived day diffs, then the one-hot
// indicator columns.
func (v *Vocabulary) Columns() []string {
	cols := append([]string(nil), v.NumericCol...)
	cols = append(cols, "first_last_days_diff", "created_first_days_diff")
	for _, val := range v.FavDay {
		cols = append(cols, "favday_"+val)
	}
	for _, val := range v.City {
		cols = append(cols, "city_"+val)
	}
	return cols
}

// Width returns the feature vector width, label excluded.
func (v *Vocabulary) Width() int {
	return len(v.NumericCol) + 2 + len(v.FavDay) + len(v.City)
}

// SaveVocabulary writes the vocabulary artifact as YAML.
func SaveVocabulary(v *Vocabulary, path string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return eris.Wrap(err, "tabular: marshal vocabulary")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "tabular: write vocabulary %s", path)
	}
	return nil
}

// LoadVocabulary reads a previously persisted vocabulary artifact.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: read vocabulary %s", path)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, eris.Wrapf(err, "tabular: parse vocabulary %s", path)
	}
	if v.Version != vocabVersion {
		return nil, eris.Errorf("tabular: vocabulary version %d, want %d", v.Version, vocabVersion)
	}
	return &v, nil
}
