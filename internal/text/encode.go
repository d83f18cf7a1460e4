package text

import (
	"github.com/sells-group/mlpipe/internal/model"
)

// Encoder turns one raw statement into the feature row the trained classifier
// expects. Stateless per call; the tables are read-only after load.
type Encoder struct {
	tables *Tables
}

// NewEncoder creates an Encoder bound to pre-loaded lookup tables.
func NewEncoder(tables *Tables) *Encoder {
	return &Encoder{tables: tables}
}

// Encode produces the single feature row for a statement. Field order matches
// the training-time schema: extracted_date, source_mapped, category_num,
// clean_statement.
func (e *Encoder) Encode(stmt model.Statement) (model.FeatureRow, error) {
	source := ExtractSource(stmt.DateSourceText)
	sourceNum, err := e.tables.SourceNum(source)
	if err != nil {
		return model.FeatureRow{}, err
	}

	category := e.tables.Category(stmt.NameText)
	categoryNum, err := e.tables.CategoryNum(category)
	if err != nil {
		return model.FeatureRow{}, err
	}

	return model.FeatureRow{
		ExtractedDate:  ExtractDate(stmt.DateSourceText),
		SourceMapped:   sourceNum,
		CategoryNum:    categoryNum,
		CleanStatement: Clean(stmt.Text),
	}, nil
}
