// Package text implements the single-record statement encoder: cleaning,
// date/source extraction, and category resolution against the static lookup
// tables. Its output must match the training-time feature schema exactly.
package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	digitsRe  = regexp.MustCompile(`\d+`)
	nonWordRe = regexp.MustCompile(`[^\w\s]`)
)

// Clean normalizes a raw statement into the token string the vectorizer was
// trained on: NFC-normalize, lower-case, strip digits and punctuation, drop
// stop-words, lemmatize, rejoin with single spaces. Empty input yields an
// empty string. Clean is idempotent.
func Clean(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	s = digitsRe.ReplaceAllString(s, "")
	s = nonWordRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopWordSet[tok]; stop {
			continue
		}
		lemma := lemmatize(tok)
		// A lemma that lands on a stop-word is dropped too; this keeps
		// Clean idempotent.
		if _, stop := stopWordSet[lemma]; stop {
			continue
		}
		kept = append(kept, lemma)
	}

	return strings.Join(kept, " ")
}
