package text

import "strings"

// lemmaExceptions covers irregular noun plurals the suffix rules cannot reach.
var lemmaExceptions = map[string]string{
	"men":      "man",
	"women":    "woman",
	"children": "child",
	"feet":     "foot",
	"teeth":    "tooth",
	"geese":    "goose",
	"mice":     "mouse",
	"people":   "person",
	"lives":    "life",
	"wives":    "wife",
	"knives":   "knife",
}

// lemmatize reduces a noun plural to its singular base form. The training-time
// transform lemmatized with a noun-only lemmatizer, so verbs and adjectives
// pass through untouched ("booming" stays "booming"); anything else would
// shift the serving-time features away from the trained model's schema.
func lemmatize(word string) string {
	if base, ok := lemmaExceptions[word]; ok {
		return base
	}
	if len(word) < 3 || !strings.HasSuffix(word, "s") {
		return word
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "zes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ves") && len(word) > 4:
		return word[:len(word)-3] + "f"
	case strings.HasSuffix(word, "ss"), strings.HasSuffix(word, "us"), strings.HasSuffix(word, "is"):
		// mass/glass, bus/status, analysis: not plurals
		return word
	default:
		return word[:len(word)-1]
	}
}
