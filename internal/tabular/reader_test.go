package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `custid,created,firstorder,lastorder,esent,eopenrate,favday,city,retained
C0001,2017-03-01,2017-01-10,2017-02-20,12,0.5,Monday,BLR,1
C0002,2017-04-02,2017-02-01,2017-03-15,8,0.25,Friday,MLR,0
`

func TestRead(t *testing.T) {
	batch, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, batch.Records, 2)
	assert.Equal(t, []string{"esent", "eopenrate"}, batch.ExtraCols)

	r := batch.Records[0]
	assert.Equal(t, "C0001", r.CustID)
	assert.Equal(t, "2017-03-01", r.Created)
	assert.Equal(t, "Monday", r.FavDay)
	assert.Equal(t, "BLR", r.City)
	assert.Equal(t, "1", r.Retained)
	assert.Equal(t, "12", r.Extra["esent"])
	assert.Equal(t, "0.5", r.Extra["eopenrate"])
}

func TestReadEmptyBody(t *testing.T) {
	batch, err := Read(strings.NewReader("custid,created,firstorder,lastorder,favday,city,retained\n"))
	require.NoError(t, err)
	assert.Empty(t, batch.Records)
}
