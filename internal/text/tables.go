package text

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultCategory is assigned to speakers missing from the category table.
const DefaultCategory = "Other"

// Typed lookup failures. Value lookups (name, source string) always default;
// index lookups fail fast when the key (including a sentinel) has no entry.
var (
	ErrUnknownCategory = eris.New("text: category has no index entry")
	ErrUnknownSource   = eris.New("text: source has no index entry")
)

// Tables holds the three static lookup artifacts, loaded once at process
// start. Immutable after load; safe to share across request handlers without
// locking.
type Tables struct {
	nameToCategory map[string]string
	categoryNum    map[string]int
	sourceNum      map[string]int
}

// LoadTables reads the three YAML artifacts. The category artifact is stored
// grouped (category -> names) and flattened here; later names win on
// duplicates, matching the flattening order of the artifact.
func LoadTables(categoryPath, categoryNumPath, sourceNumPath string) (*Tables, error) {
	var grouped map[string][]string
	if err := readYAML(categoryPath, &grouped); err != nil {
		return nil, err
	}

	flat := make(map[string]string)
	for category, names := range grouped {
		for _, name := range names {
			flat[name] = category
		}
	}

	t := &Tables{nameToCategory: flat}
	if err := readYAML(categoryNumPath, &t.categoryNum); err != nil {
		return nil, err
	}
	if err := readYAML(sourceNumPath, &t.sourceNum); err != nil {
		return nil, err
	}

	zap.L().Info("lookup tables loaded",
		zap.Int("names", len(t.nameToCategory)),
		zap.Int("categories", len(t.categoryNum)),
		zap.Int("sources", len(t.sourceNum)),
	)

	return t, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "text: read table %s", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "text: parse table %s", path)
	}
	return nil
}

// Category resolves a speaker name to its category, defaulting to
// DefaultCategory for unmapped names.
func (t *Tables) Category(name string) string {
	if c, ok := t.nameToCategory[name]; ok {
		return c
	}
	return DefaultCategory
}

// CategoryNum maps a category string to its integer code.
func (t *Tables) CategoryNum(category string) (int, error) {
	n, ok := t.categoryNum[category]
	if !ok {
		return 0, eris.Wrapf(ErrUnknownCategory, "category %q", category)
	}
	return n, nil
}

// SourceNum maps a source string to its integer code.
func (t *Tables) SourceNum(source string) (int, error) {
	n, ok := t.sourceNum[source]
	if !ok {
		return 0, eris.Wrapf(ErrUnknownSource, "source %q", source)
	}
	return n, nil
}

// Verify checks that the default sentinels resolve, so that the fail-fast
// index lookups cannot trip on the defaults themselves in production.
func (t *Tables) Verify() error {
	if _, err := t.CategoryNum(DefaultCategory); err != nil {
		return err
	}
	if _, err := t.SourceNum(UnknownSource); err != nil {
		return err
	}
	return nil
}
