package stitch

import (
	"cmp"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/cartpath/internal/analyze"
	"github.com/udisondev/cartpath/internal/geom"
)

// DefaultRadius is the corner radius used when neither the corner nor the layout sets one.
const DefaultRadius = 3

var (
	// ErrEmptyLayout is returned when a layout lacks begin or end waypoints.
	ErrEmptyLayout = errors.New("stitch: layout needs begin and end waypoints")
	// ErrGradeExceeded is returned by Check for the first segment that breaks the grade limit.
	ErrGradeExceeded = errors.New("stitch: grade limit exceeded")
	// ErrBadTurn is returned for a turn with an unknown kind or a U-turn without a target.
	ErrBadTurn = errors.New("stitch: invalid turn")
)

// Turn kinds.
const (
	KindCorner = "corner"
	KindUTurn  = "uturn"
)

// Layout describes a track: fixed waypoint runs at both ends and the corners between them.
//
//	begin: [[-199, 98, 410], [-199, 98, 409]]
//	corners:
//	  - at: [-316, 155, 300]
//	  - at: [-234, 170, 300]
//	    radius: 4
//	  - kind: uturn
//	    at: [-240, 170, 310]
//	    to: [-240, 170, 294]
//	end: [[-324, 214, 318]]
type Layout struct {
	Begin   [][3]int     `yaml:"begin"`
	End     [][3]int     `yaml:"end"`
	Corners []CornerSpec `yaml:"corners"`
	Radius  int          `yaml:"radius"`
}

// CornerSpec is one turn of the track. A corner (the default kind) rounds the bend at At.
// A U-turn enters at At along the incoming ramp and leaves from To heading back.
type CornerSpec struct {
	Kind   string  `yaml:"kind"`
	At     [3]int  `yaml:"at"`
	To     *[3]int `yaml:"to"`
	Radius int     `yaml:"radius"`
}

func (c CornerSpec) validate() error {
	switch c.Kind {
	case "", KindCorner:
		return nil
	case KindUTurn:
		if c.To == nil {
			return fmt.Errorf("%w: uturn at %v has no target", ErrBadTurn, c.At)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown kind %q", ErrBadTurn, c.Kind)
}

func (l Layout) validate() error {
	if len(l.Begin) == 0 || len(l.End) == 0 {
		return ErrEmptyLayout
	}
	for _, c := range l.Corners {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Segment is a named run of lattice points.
type Segment struct {
	Name   string
	Points []geom.Point
}

// ParseLayout decodes a YAML layout.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parsing layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadLayout reads a YAML layout from path.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout %s: %w", path, err)
	}
	l, err := ParseLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// Build expands l into segments: begin, then a ramp and a flat corner or U-turn per turn,
// then the ramp into end, then end.
func Build(l Layout) ([]Segment, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	begin, end := points(l.Begin), points(l.End)

	segs := []Segment{{Name: "begin", Points: begin}}
	cur := begin[len(begin)-1]
	for i, c := range l.Corners {
		at := point(c.At)
		next := end[0]
		if i+1 < len(l.Corners) {
			next = point(l.Corners[i+1].At)
		}

		var arc []geom.Point
		name := fmt.Sprintf("corner %d", i+1)
		if c.Kind == KindUTurn {
			travel := geom.XZ{X: float64(at.X - cur.X), Z: float64(at.Z - cur.Z)}
			arc = UTurn(at, point(*c.To), travel)
			name = fmt.Sprintf("uturn %d", i+1)
		} else {
			arc = Corner(cur, at, next, cmp.Or(c.Radius, l.Radius, DefaultRadius))
		}
		segs = append(segs,
			Segment{Name: fmt.Sprintf("ramp %d", i+1), Points: Ramp(cur, arc[0])},
			Segment{Name: name, Points: arc},
		)
		cur = arc[len(arc)-1]
	}

	segs = append(segs,
		Segment{Name: fmt.Sprintf("ramp %d", len(l.Corners)+1), Points: Ramp(cur, end[0])},
		Segment{Name: "end", Points: end},
	)
	return segs, nil
}

// Path joins segments into one track.
func Path(segs []Segment) []geom.Point {
	parts := make([][]geom.Point, len(segs))
	for i, s := range segs {
		parts[i] = s.Points
	}
	return Chain(parts...)
}

// Check validates every segment, including its joint with the previous one, and returns
// the report for the whole track. Repeated points are ignored.
func Check(segs []Segment) (analyze.Report, error) {
	var prev []geom.Point
	for _, s := range segs {
		pts := append(prev, s.Points...)
		if rep := analyze.Lattice(Dedupe(pts)); !rep.OK {
			return rep, fmt.Errorf("%w: %s: %s", ErrGradeExceeded, s.Name, rep.Notes)
		}
		if len(s.Points) > 0 {
			prev = []geom.Point{s.Points[len(s.Points)-1]}
		}
	}
	return analyze.Lattice(Dedupe(Path(segs))), nil
}

func points(raw [][3]int) []geom.Point {
	out := make([]geom.Point, len(raw))
	for i, r := range raw {
		out[i] = point(r)
	}
	return out
}

func point(r [3]int) geom.Point {
	return geom.P(r[0], r[1], r[2])
}
