package tabular

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// Batch holds a decoded raw churn batch plus the passthrough column names in
// their original CSV order. Column order matters: it fixes the feature layout.
type Batch struct {
	Records   []Record
	ExtraCols []string
}

// ReadFile reads a raw churn CSV with a named-column header.
func ReadFile(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a raw churn batch from r.
func Read(r io.Reader) (*Batch, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, eris.Wrap(err, "tabular: read header")
	}

	var batch Batch
	header := dec.Header()

	for {
		var rec Record
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "tabular: decode row")
		}

		unused := dec.Unused()
		if rec.Extra == nil && len(unused) > 0 {
			rec.Extra = make(map[string]string, len(unused))
		}
		raw := dec.Record()
		for _, i := range unused {
			rec.Extra[header[i]] = raw[i]
		}

		// Capture passthrough column order once, from the header.
		if batch.ExtraCols == nil {
			for _, i := range unused {
				batch.ExtraCols = append(batch.ExtraCols, header[i])
			}
		}

		batch.Records = append(batch.Records, rec)
	}

	return &batch, nil
}
