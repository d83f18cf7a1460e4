package model

// Statement is one raw input record for the statement classifier: the claim
// itself plus the free-text provenance line and the speaker name.
type Statement struct {
	Text           string `json:"text"`
	DateSourceText string `json:"date_source_text"`
	NameText       string `json:"name_text"`
}

// FeatureRow is the engineered single-record output of the text encoder.
// Field order matches the training-time schema and must not change: the
// downstream vectorizer binds columns positionally.
type FeatureRow struct {
	ExtractedDate  string `json:"extracted_date"` // empty when no date matched
	SourceMapped   int    `json:"source_mapped"`
	CategoryNum    int    `json:"category_num"`
	CleanStatement string `json:"clean_statement"`
}

// Prediction is the human-readable classifier verdict for one statement.
type Prediction struct {
	Label string `json:"prediction"`
}
