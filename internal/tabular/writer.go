package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
)

// Split file names under the output directory.
const (
	TrainFile      = "train.csv"
	ValidationFile = "validation.csv"
	TestFile       = "test.csv"
)

// WriteSplits writes the three partitions as headerless CSVs, label formatted
// as an integer in column 0. Returns the paths in train/validation/test order.
func WriteSplits(res *Result, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "tabular: mkdir %s", dir)
	}

	paths := []string{
		filepath.Join(dir, TrainFile),
		filepath.Join(dir, ValidationFile),
		filepath.Join(dir, TestFile),
	}
	parts := [][][]float64{res.Train, res.Validation, res.Test}

	for i, path := range paths {
		if err := writeSplit(parts[i], path); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func writeSplit(rows [][]float64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "tabular: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{}
	for _, r := range rows {
		record = record[:0]
		record = append(record, strconv.Itoa(int(r[0])))
		for _, v := range r[1:] {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return eris.Wrapf(err, "tabular: write %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "tabular: flush %s", path)
	}
	return nil
}
