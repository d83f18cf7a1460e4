package main

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/mlpipe/internal/model"
)

// fileArtifact records a written file: path, kind, row count, and a content
// checksum so a later stage can detect the file was replaced.
func fileArtifact(path string, kind model.ArtifactKind, rows int) (model.Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Artifact{}, eris.Wrapf(err, "artifact: open %s", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return model.Artifact{}, eris.Wrapf(err, "artifact: hash %s", path)
	}

	return model.Artifact{
		Path:   path,
		Kind:   kind,
		Rows:   rows,
		SHA256: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
