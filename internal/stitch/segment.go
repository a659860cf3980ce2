// Package stitch assembles long tracks from short lattice segments.
//
// Every segment is a pure function of its endpoints. Segments are checked against the
// grade limit on their own and then concatenated with Chain.
package stitch

import (
	"cmp"
	"math"

	"github.com/udisondev/cartpath/internal/geom"
)

// Ramp interpolates from one lattice point to another, one step per block along the
// dominant horizontal axis. Y changes by at most one block per step when the climb fits
// under the grade limit.
func Ramp(from, to geom.Point) []geom.Point {
	n := max(abs(to.X-from.X), abs(to.Z-from.Z))
	if n == 0 {
		if from == to {
			return []geom.Point{from}
		}
		return []geom.Point{from, to}
	}

	a, d := from.Vec(), to.Vec().Sub(from.Vec())
	out := make([]geom.Point, n+1)
	for i := range out {
		out[i] = a.Add(d.Scale(float64(i) / float64(n))).Round()
	}
	return out
}

// Corner rounds the turn at corner with a flat quadratic arc. The arc starts radius blocks
// before corner along the incoming heading and ends radius blocks after it along the
// outgoing heading. Y stays at corner.Y.
func Corner(before, corner, after geom.Point, radius int) []geom.Point {
	if radius <= 0 {
		return []geom.Point{corner}
	}

	c := corner.Vec()
	r := float64(radius)
	p0 := c.Sub(heading(before, corner).Scale(r))
	p2 := c.Add(heading(corner, after).Scale(r))

	n := 4 * radius
	out := make([]geom.Point, 0, n+1)
	for i := range n + 1 {
		t := float64(i) / float64(n)
		u := 1 - t
		p := p0.Scale(u * u).Add(c.Scale(2 * u * t)).Add(p2.Scale(t * t))
		p.Y = c.Y
		out = append(out, p.Round())
	}
	return Dedupe(out)
}

// UTurn is a flat half circle from one point to another. The arc leaves from along
// travel and arrives at to heading the opposite way. Only from.Y is used.
func UTurn(from, to geom.Point, travel geom.XZ) []geom.Point {
	a, b := from.Vec(), to.Vec()
	b.Y = a.Y
	center := a.Add(b).Scale(0.5)
	r := a.Sub(center).Horizontal()
	if r == 0 {
		return []geom.Point{from}
	}

	u := a.Sub(center).Scale(1 / r)
	h := geom.V3(travel.X, 0, travel.Z)
	h = h.Sub(u.Scale(h.X*u.X + h.Z*u.Z))
	if hl := h.Horizontal(); hl > 0 {
		h = h.Scale(1 / hl)
	} else {
		h = geom.V3(-u.Z, 0, u.X)
	}

	n := max(8, int(math.Ceil(2*math.Pi*r)))
	out := make([]geom.Point, 0, n+1)
	for i := range n + 1 {
		phi := math.Pi * float64(i) / float64(n)
		p := center.Add(u.Scale(r * math.Cos(phi))).Add(h.Scale(r * math.Sin(phi)))
		out = append(out, p.Round())
	}
	return Dedupe(out)
}

// Chain concatenates segments, dropping the first point of a segment when it repeats the
// joint already emitted.
func Chain(segments ...[]geom.Point) []geom.Point {
	var out []geom.Point
	for _, s := range segments {
		if len(s) > 0 && len(out) > 0 && out[len(out)-1] == s[0] {
			s = s[1:]
		}
		out = append(out, s...)
	}
	return out
}

// Dedupe removes consecutive repeated points.
func Dedupe(path []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(path))
	for i, p := range path {
		if i > 0 && p == path[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// heading returns the unit-per-axis horizontal direction from a to b.
func heading(a, b geom.Point) geom.Vec3 {
	return geom.V3(float64(cmp.Compare(b.X, a.X)), 0, float64(cmp.Compare(b.Z, a.Z)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
