// Package analyze validates sampled paths against the 45° grade limit and measures them.
package analyze

import (
	"math"

	"github.com/udisondev/cartpath/internal/geom"
)

// Tolerance absorbs floating-point rounding in the |Δy| ≤ horizontal check.
const Tolerance = 1e-9

// Status notes recorded in Report.Notes.
const (
	NoteOK            = "OK"
	NoteVerticalMove  = "Found zero horizontal step (vertical move)."
	NoteGradeExceeded = "Exceeded 45° grade on at least one segment."
)

// Report summarizes one path. It is computed once and never mutated.
type Report struct {
	OK           bool
	MaxGrade     float64
	Length3D     float64
	Length2D     float64
	MinHorizStep float64
	MinChunkZ    int
	MaxChunkZ    int
	Notes        string
}

// Analyze walks consecutive waypoint pairs and checks |Δy| ≤ horizontal on every segment.
// It stops at the first infeasible segment and reports the metrics accumulated so far.
func Analyze(path []geom.Vec3) Report {
	r := Report{MinHorizStep: math.Inf(1)}
	if len(path) == 0 {
		r.Notes = NoteOK
		r.OK = true
		return r
	}

	minZ, maxZ := path[0].Z, path[0].Z
	fail := func(note string) Report {
		r.MinChunkZ, r.MaxChunkZ = geom.ChunkOf(minZ), geom.ChunkOf(maxZ)
		r.Notes = note
		return r
	}

	for i := 1; i < len(path); i++ {
		d := path[i].Sub(path[i-1])
		horiz := d.Horizontal()
		dy := math.Abs(d.Y)

		r.Length2D += horiz
		r.Length3D += math.Hypot(horiz, d.Y)
		r.MinHorizStep = min(r.MinHorizStep, horiz)
		minZ = min(minZ, path[i].Z)
		maxZ = max(maxZ, path[i].Z)

		if horiz == 0 {
			r.MaxGrade = math.Inf(1)
			return fail(NoteVerticalMove)
		}

		r.MaxGrade = max(r.MaxGrade, dy/horiz)
		if dy > horiz+Tolerance {
			return fail(NoteGradeExceeded)
		}
	}

	r.OK = true
	r.MinChunkZ, r.MaxChunkZ = geom.ChunkOf(minZ), geom.ChunkOf(maxZ)
	r.Notes = NoteOK
	return r
}

// Lattice analyzes a path of rounded lattice points.
func Lattice(path []geom.Point) Report {
	vs := make([]geom.Vec3, len(path))
	for i, p := range path {
		vs[i] = p.Vec()
	}
	return Analyze(vs)
}
