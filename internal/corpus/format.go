// Package corpus reads and writes curve coordinate files.
//
// A file is a header of "# key: value" comment lines followed by one "[x, y, z]" line per
// lattice waypoint. Blank lines and comments are ignored by the coordinate parser, and lines
// that do not match the triple pattern are skipped rather than rejected.
package corpus

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/udisondev/cartpath/internal/curve"
	"github.com/udisondev/cartpath/internal/geom"
)

// Ext is the extension of curve files.
const Ext = ".txt"

// ErrNoCoordinates is returned when a file holds no coordinate line.
var ErrNoCoordinates = errors.New("corpus: no coordinates found")

var coordLine = regexp.MustCompile(`^\[(-?\d+),\s*(-?\d+),\s*(-?\d+)\]$`)

// FileName derives the file name of a curve from its identity.
// Amplitudes are truncated to integers.
func FileName(k curve.Key) string {
	return fmt.Sprintf("curve_y%d_loops%d_A%d_B%d%s", k.YEnd, k.Loops, int(k.A), int(k.B), Ext)
}

// ParseCoord parses one bracketed triple. ok is false for any other line.
func ParseCoord(line string) (geom.Point, bool) {
	m := coordLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return geom.Point{}, false
	}
	var v [3]int
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return geom.Point{}, false
		}
		v[i] = n
	}
	return geom.Point{X: v[0], Y: v[1], Z: v[2]}, true
}

// Meta holds header values keyed by their name. Parenthesized annotations are dropped from
// keys, so "# A (south bulge): 40" is stored under "A".
type Meta map[string]string

// parseMeta reads a "# key: value" comment. ok is false for plain comments.
func parseMeta(line string) (key, value string, ok bool) {
	body, found := strings.CutPrefix(strings.TrimSpace(line), "#")
	if !found {
		return "", "", false
	}
	key, value, ok = strings.Cut(body, ":")
	if !ok {
		return "", "", false
	}
	if i := strings.Index(key, " ("); i >= 0 {
		key = key[:i]
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// Int returns the integer value stored under key.
func (m Meta) Int(key string) (int, error) {
	s, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("corpus: missing header %q", key)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("corpus: header %q: %w", key, err)
	}
	return n, nil
}

// Float returns the float value stored under key.
func (m Meta) Float(key string) (float64, error) {
	s, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("corpus: missing header %q", key)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("corpus: header %q: %w", key, err)
	}
	return f, nil
}
