package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/udisondev/cartpath/internal/geom"
)

// File is a parsed coordinate file.
type File struct {
	Name   string
	Path   string
	Meta   Meta
	Coords []geom.Point
}

// maxLine bounds one line of a coordinate file. Longer lines can never be a coordinate and
// are dropped whole.
const maxLine = 4096

// Parse reads header metadata and coordinates from r. Overlong lines are skipped.
func Parse(r io.Reader) (Meta, []geom.Point, error) {
	meta := Meta{}
	var coords []geom.Point

	br := bufio.NewReaderSize(r, maxLine)
	for {
		raw, isPrefix, err := br.ReadLine()
		for isPrefix && err == nil {
			raw = nil
			_, isPrefix, err = br.ReadLine()
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("scanning coordinates: %w", err)
		}

		line := strings.TrimSpace(string(raw))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if k, v, ok := parseMeta(line); ok {
				meta[k] = v
			}
			continue
		}
		if p, ok := ParseCoord(line); ok {
			coords = append(coords, p)
		}
	}
	return meta, coords, nil
}

// ReadFile parses the file at path. A file without coordinates yields ErrNoCoordinates
// together with whatever header was read.
func ReadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	meta, coords, err := Parse(f)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	file := File{Name: filepath.Base(path), Path: path, Meta: meta, Coords: coords}
	if len(coords) == 0 {
		return file, fmt.Errorf("reading %s: %w", path, ErrNoCoordinates)
	}
	return file, nil
}

// List returns the curve files of dir sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}
