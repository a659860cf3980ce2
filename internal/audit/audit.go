// Package audit inspects persisted curve corpora: duplicate coordinate sequences, chunk
// eligibility, and relocation of flagged files into a quarantine directory.
//
// The auditor works only on files. It never deletes anything.
package audit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/cartpath/internal/corpus"
	"github.com/udisondev/cartpath/internal/geom"
)

// ErrDirNotFound is returned when a corpus directory to audit does not exist.
var ErrDirNotFound = errors.New("audit: directory not found")

// Digest hashes an ordered coordinate sequence.
type Digest [blake2b.Size256]byte

// Sum returns the digest of coords.
func Sum(coords []geom.Point) Digest {
	buf := make([]byte, 0, len(coords)*24)
	for _, c := range coords {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(c.X)))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(c.Y)))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(c.Z)))
	}
	return blake2b.Sum256(buf)
}

// Corpus is the parsed content of one directory.
type Corpus struct {
	Dir     string
	Files   []corpus.File
	Skipped []string
}

// Load parses every curve file of dir in name order. Files that cannot be read or hold no
// coordinates are logged and listed in Skipped; they do not abort the scan. Only a missing
// or unlistable directory is an error.
func Load(dir string) (Corpus, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Corpus{}, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}

	paths, err := corpus.List(dir)
	if err != nil {
		return Corpus{}, err
	}

	c := Corpus{Dir: dir}
	for _, path := range paths {
		f, err := corpus.ReadFile(path)
		if errors.Is(err, corpus.ErrNoCoordinates) {
			slog.Warn("no coordinates found", "file", f.Name)
			c.Skipped = append(c.Skipped, path)
			continue
		}
		if err != nil {
			slog.Warn("skipping unreadable file", "file", path, "err", err)
			c.Skipped = append(c.Skipped, path)
			continue
		}
		c.Files = append(c.Files, f)
	}
	return c, nil
}
