package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/udisondev/cartpath/internal/curve"
	"github.com/udisondev/cartpath/internal/geom"
	"github.com/udisondev/cartpath/internal/search"
)

const (
	permDir  = 0o755
	permFile = 0o644
)

// Record is everything written for one accepted curve.
type Record struct {
	Result      search.Result
	Orientation curve.Orientation
	Samples     int
	Coords      []geom.Point
}

// Render regenerates the curve of res at samples points and rounds it to the lattice.
func Render(f curve.Frame, res search.Result, samples int) Record {
	p := res.Params
	p.Samples = samples
	return Record{
		Result:      res,
		Orientation: f.Orientation,
		Samples:     samples,
		Coords:      geom.RoundAll(curve.Generate(f, p)),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Encode writes rec in the coordinate file format.
func Encode(w io.Writer, rec Record) error {
	bw := bufio.NewWriter(w)
	p, r := rec.Result.Params, rec.Result.Report
	bulge := rec.Orientation.String()

	fmt.Fprintf(bw, "# Curve Parameters (%s-FIRST)\n", strings.ToUpper(bulge))
	fmt.Fprintf(bw, "# y_end: %d\n", p.YEnd)
	fmt.Fprintf(bw, "# loops: %d\n", p.Loops)
	fmt.Fprintf(bw, "# A (%s bulge): %s\n", bulge, formatFloat(p.A))
	fmt.Fprintf(bw, "# B (lateral wiggle): %s\n", formatFloat(p.B))
	fmt.Fprintf(bw, "# samples: %d\n", rec.Samples)
	fmt.Fprintf(bw, "#\n")
	fmt.Fprintf(bw, "# Analysis Results\n")
	fmt.Fprintf(bw, "# max_grade: %.6f\n", r.MaxGrade)
	fmt.Fprintf(bw, "# length_3d: %.2f\n", r.Length3D)
	fmt.Fprintf(bw, "# length_2d: %.2f\n", r.Length2D)
	fmt.Fprintf(bw, "# min_horiz_step: %.6f\n", r.MinHorizStep)
	fmt.Fprintf(bw, "# min_chunk_z: %d\n", r.MinChunkZ)
	fmt.Fprintf(bw, "# max_chunk_z: %d\n", r.MaxChunkZ)
	fmt.Fprintf(bw, "# status: %s\n", r.Notes)
	fmt.Fprintf(bw, "#\n")
	fmt.Fprintf(bw, "# Coordinates (x, y, z)\n")
	fmt.Fprintf(bw, "#%s\n\n", strings.Repeat("=", 50))

	writeCoords(bw, rec.Coords)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encoding %s: %w", p, err)
	}
	return nil
}

// EncodeCoords writes bare coordinate lines, one "[x, y, z]" per point.
func EncodeCoords(w io.Writer, coords []geom.Point) error {
	bw := bufio.NewWriter(w)
	writeCoords(bw, coords)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encoding coordinates: %w", err)
	}
	return nil
}

func writeCoords(bw *bufio.Writer, coords []geom.Point) {
	for _, c := range coords {
		fmt.Fprintf(bw, "%s\n", c)
	}
}

// WriteFile atomically replaces path with the encoding of rec.
func WriteFile(path string, rec Record) error {
	return writeAtomic(path, func(w io.Writer) error { return Encode(w, rec) })
}

// WriteCoords atomically replaces path with bare coordinate lines, creating its directory
// when needed.
func WriteCoords(path string, coords []geom.Point) error {
	return writeAtomic(path, func(w io.Writer) error { return EncodeCoords(w, coords) })
}

func writeAtomic(path string, encode func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, permDir); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := encode(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, permFile); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting mode of %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Persist regenerates every accepted curve at samples points and writes one file per curve
// into dir, creating dir when needed. Existing files with the same name are replaced.
// It returns the written file names in corpus order.
func Persist(f curve.Frame, accepted []search.Result, dir string, samples int) ([]string, error) {
	if err := os.MkdirAll(dir, permDir); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	names := make([]string, 0, len(accepted))
	for _, res := range accepted {
		name := FileName(res.Params.Key())
		if err := WriteFile(filepath.Join(dir, name), Render(f, res, samples)); err != nil {
			return names, fmt.Errorf("persisting %s: %w", name, err)
		}
		names = append(names, name)
	}
	return names, nil
}
