package tabular

import (
	"math/rand"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrDataExhausted is returned when filtering leaves zero usable rows. Empty
// partitions are never written; the stage aborts instead.
var ErrDataExhausted = eris.New("tabular: no usable rows after filtering")

// Options configures an encoding run.
type Options struct {
	Seed          int64   // shuffle seed; required for reproducible splits
	TrainFraction float64 // default 0.70
	ValFraction   float64 // default 0.15
	Vocab         *Vocabulary
	// When Vocab is nil the vocabulary is discovered from this batch and
	// returned in Result.Vocab. When set, the batch is encoded against it:
	// categorical values outside the vocabulary get all-zero indicators.
}

// Result holds the three disjoint row partitions of the engineered feature
// matrix, label in column 0, plus the vocabulary that fixes the layout.
type Result struct {
	Train      [][]float64
	Validation [][]float64
	Test       [][]float64
	Vocab      *Vocabulary

	RowsIn           int
	RowsKept         int
	DroppedMissing   int
	DroppedMalformed int
}

// row is a record that survived parsing and filtering.
type row struct {
	extras       []float64
	firstLast    int
	createdFirst int
	favDay       string
	city         string
	label        int
}

// Encode transforms a raw batch into shuffled train/validation/test partitions.
//
// Per-row failures never abort the batch: rows with a missing field are
// dropped with no imputation, and rows whose created date does not parse are
// dropped as malformed (firstorder/lastorder parse failures coerce to absent
// first, then fall to the missing-value filter). A batch with zero survivors
// is fatal (ErrDataExhausted).
func Encode(batch *Batch, opts Options) (*Result, error) {
	if opts.TrainFraction <= 0 {
		opts.TrainFraction = 0.70
	}
	if opts.ValFraction <= 0 {
		opts.ValFraction = 0.15
	}
	if opts.TrainFraction+opts.ValFraction >= 1 {
		return nil, eris.Errorf("tabular: split fractions %.2f+%.2f leave no test partition",
			opts.TrainFraction, opts.ValFraction)
	}

	res := &Result{RowsIn: len(batch.Records)}

	// A provided vocabulary fixes the passthrough column order; otherwise the
	// CSV header order is authoritative.
	extraCols := batch.ExtraCols
	if opts.Vocab != nil {
		extraCols = opts.Vocab.NumericCol
	}

	rows := make([]row, 0, len(batch.Records))
	for _, rec := range batch.Records {
		r, reason := parseRow(rec, extraCols)
		switch reason {
		case dropNone:
			rows = append(rows, *r)
		case dropMissing:
			res.DroppedMissing++
		case dropMalformed:
			res.DroppedMalformed++
		}
	}
	if len(rows) == 0 {
		return nil, eris.Wrapf(ErrDataExhausted, "%d rows in, %d missing, %d malformed",
			res.RowsIn, res.DroppedMissing, res.DroppedMalformed)
	}
	res.RowsKept = len(rows)

	vocab := opts.Vocab
	if vocab == nil {
		vocab = buildVocabulary(rows, extraCols)
	}
	res.Vocab = vocab

	matrix := make([][]float64, len(rows))
	for i, r := range rows {
		matrix[i] = encodeRow(r, vocab)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(matrix), func(i, j int) {
		matrix[i], matrix[j] = matrix[j], matrix[i]
	})

	n := len(matrix)
	trainEnd := int(opts.TrainFraction * float64(n))
	valEnd := int((opts.TrainFraction + opts.ValFraction) * float64(n))

	res.Train = matrix[:trainEnd]
	res.Validation = matrix[trainEnd:valEnd]
	res.Test = matrix[valEnd:]

	zap.L().Info("tabular: batch encoded",
		zap.Int("rows_in", res.RowsIn),
		zap.Int("rows_kept", res.RowsKept),
		zap.Int("dropped_missing", res.DroppedMissing),
		zap.Int("dropped_malformed", res.DroppedMalformed),
		zap.Int("train", len(res.Train)),
		zap.Int("validation", len(res.Validation)),
		zap.Int("test", len(res.Test)),
		zap.Int("feature_width", vocab.Width()),
	)

	return res, nil
}

type dropReason int

const (
	dropNone dropReason = iota
	dropMissing
	dropMalformed
)

// parseRow validates one raw record and derives the day-diff features.
func parseRow(rec Record, extraCols []string) (*row, dropReason) {
	if rec.CustID == "" || rec.Created == "" || rec.FavDay == "" || rec.City == "" || rec.Retained == "" {
		return nil, dropMissing
	}

	created, err := parseDate(rec.Created)
	if err != nil {
		// created is a required date; an unparseable value is malformed,
		// not merely absent.
		return nil, dropMalformed
	}

	// firstorder/lastorder coerce to absent on parse failure, then the
	// missing-value filter drops the row.
	firstOrder, err := parseDate(rec.FirstOrder)
	if rec.FirstOrder == "" || err != nil {
		return nil, dropMissing
	}
	lastOrder, err := parseDate(rec.LastOrder)
	if rec.LastOrder == "" || err != nil {
		return nil, dropMissing
	}

	label, err := strconv.Atoi(rec.Retained)
	if err != nil {
		return nil, dropMalformed
	}

	r := &row{
		extras:       make([]float64, 0, len(extraCols)),
		firstLast:    daysBetween(firstOrder, lastOrder),
		createdFirst: daysBetween(firstOrder, created),
		favDay:       rec.FavDay,
		city:         rec.City,
		label:        label,
	}

	for _, col := range extraCols {
		raw, ok := rec.Extra[col]
		if !ok || raw == "" {
			return nil, dropMissing
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, dropMalformed
		}
		r.extras = append(r.extras, v)
	}

	return r, dropNone
}

// encodeRow lays out one feature vector: label, passthrough numerics, the two
// derived diffs, then favday and city indicators in vocabulary order.
func encodeRow(r row, vocab *Vocabulary) []float64 {
	out := make([]float64, 0, vocab.Width()+1)
	out = append(out, float64(r.label))
	out = append(out, r.extras...)
	out = append(out, float64(r.firstLast), float64(r.createdFirst))
	for _, val := range vocab.FavDay {
		out = append(out, indicator(r.favDay == val))
	}
	for _, val := range vocab.City {
		out = append(out, indicator(r.city == val))
	}
	return out
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
