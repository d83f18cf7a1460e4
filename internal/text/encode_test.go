package text

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mlpipe/internal/model"
)

func TestEncodeEndToEnd(t *testing.T) {
	enc := NewEncoder(defaultTables(t))

	row, err := enc.Encode(model.Statement{
		Text:           "The economy is BOOMING!!",
		DateSourceText: "December 17, 2024 via Facebook",
		NameText:       "Jane Doe", // unmapped: resolves to Other
	})
	require.NoError(t, err)

	assert.Equal(t, "December 17, 2024", row.ExtractedDate)
	assert.Equal(t, 0, row.SourceMapped) // Facebook
	assert.Equal(t, 2, row.CategoryNum)  // Other
	assert.Equal(t, "economy booming", row.CleanStatement)
}

func TestEncodeMappedSpeaker(t *testing.T) {
	enc := NewEncoder(defaultTables(t))

	row, err := enc.Encode(model.Statement{
		Text:           "Taxes went up",
		DateSourceText: "May 3, 2021 on X",
		NameText:       "John Smith",
	})
	require.NoError(t, err)

	assert.Equal(t, "May 3, 2021", row.ExtractedDate)
	assert.Equal(t, 1, row.SourceMapped) // X
	assert.Equal(t, 0, row.CategoryNum)  // Politician
	assert.Equal(t, "tax went", row.CleanStatement)
}

func TestEncodeDefaultsWithoutRaising(t *testing.T) {
	enc := NewEncoder(defaultTables(t))

	row, err := enc.Encode(model.Statement{
		Text:           "",
		DateSourceText: "in a speech",
		NameText:       "",
	})
	require.NoError(t, err)

	assert.Empty(t, row.ExtractedDate)
	assert.Equal(t, 3, row.SourceMapped) // Unknown
	assert.Equal(t, 2, row.CategoryNum)  // Other
	assert.Empty(t, row.CleanStatement)
}

func TestEncodeFailsOnMissingSentinelIndex(t *testing.T) {
	// Source table without the Unknown sentinel: an unmatched provenance
	// line surfaces a typed error rather than a silent wrong code.
	tables := writeTables(t, testCategoryYAML, testCategoryNumYAML, "Facebook: 0\n")
	enc := NewEncoder(tables)

	_, err := enc.Encode(model.Statement{
		Text:           "anything",
		DateSourceText: "in a speech",
		NameText:       "Jane Doe",
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownSource))
}
