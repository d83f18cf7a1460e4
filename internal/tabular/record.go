// Package tabular implements the churn feature-engineering stage: raw CSV in,
// shuffled label+feature splits out, with the one-hot vocabulary persisted so
// inference-time encoding binds to the exact training-time schema.
package tabular

import (
	"math"
	"time"

	"github.com/rotisserie/eris"
)

// Record is one raw churn row. Columns beyond the named ones are captured in
// Extra and passed through as numeric features unchanged.
type Record struct {
	CustID     string            `csv:"custid"`
	Created    string            `csv:"created"`
	FirstOrder string            `csv:"firstorder"`
	LastOrder  string            `csv:"lastorder"`
	FavDay     string            `csv:"favday"`
	City       string            `csv:"city"`
	Retained   string            `csv:"retained"`
	Extra      map[string]string `csv:"-"`
}

// dateLayouts are tried in order when parsing the three date columns.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// parseDate parses a raw date string against the known layouts.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("tabular: unparseable date %q", s)
}

// daysBetween returns the signed whole-day difference b - a, floored. Flooring
// matters when a timestamp layout leaves an intraday remainder on a negative
// diff: -5.5 days is -6, not -5.
func daysBetween(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}
