// Package curve generates smooth three-dimensional track curves between two fixed points.
//
// A curve is parametrized by t ∈ [0, 1]. Elevation and the horizontal base position follow a
// cubic ease s(t) = 3t² - 2t³, whose derivative vanishes at both ends. A bulge A·sin(πt) on
// the Z axis makes the curve leave the start heading into the bulge and arrive at the end
// heading out of it. An optional lateral wiggle B·sin²(πt)·sin(2π·loops·t) on the X axis adds
// horizontal distance without touching the endpoints or their tangents.
package curve

import (
	"fmt"
	"math"

	"github.com/udisondev/cartpath/internal/geom"
)

// Orientation selects the direction of the initial Z bulge.
type Orientation int

const (
	// South bulges toward +Z first.
	South Orientation = 1
	// North bulges toward -Z first.
	North Orientation = -1
)

func (o Orientation) String() string {
	switch o {
	case South:
		return "south"
	case North:
		return "north"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation parses "south" or "north".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "south", "SOUTH", "South":
		return South, nil
	case "north", "NORTH", "North":
		return North, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Params identifies one curve of the search family.
// Samples is a rendering choice and is not part of the identity.
type Params struct {
	YEnd    int
	Loops   int
	A       float64 // Z bulge amplitude, blocks
	B       float64 // X wiggle amplitude, blocks
	Samples int
}

// Key is the identity of Params.
type Key struct {
	YEnd  int
	Loops int
	A     float64
	B     float64
}

// Key returns the identity tuple of p.
func (p Params) Key() Key {
	return Key{YEnd: p.YEnd, Loops: p.Loops, A: p.A, B: p.B}
}

func (p Params) String() string {
	return fmt.Sprintf("y_end=%d loops=%d A=%g B=%g", p.YEnd, p.Loops, p.A, p.B)
}

// Frame holds the fixed endpoints shared by every curve of a search.
type Frame struct {
	Start       geom.Vec3
	End         geom.XZ
	Orientation Orientation
}

// Ease is the cubic Hermite ease 3t² - 2t³.
func Ease(t float64) float64 {
	return t * t * (3 - 2*t)
}

// At evaluates the curve at t.
func (f Frame) At(p Params, t float64) geom.Vec3 {
	s := Ease(t)
	x0, y0, z0 := f.Start.X, f.Start.Y, f.Start.Z

	x := x0 + (f.End.X-x0)*s
	if p.Loops > 0 {
		sinPi := math.Sin(math.Pi * t)
		x += p.B * sinPi * sinPi * math.Sin(2*math.Pi*float64(p.Loops)*t)
	}

	z := z0 + (f.End.Z-z0)*s + float64(f.Orientation)*p.A*math.Sin(math.Pi*t)
	y := y0 + (float64(p.YEnd)-y0)*s

	return geom.Vec3{X: x, Y: y, Z: z}
}

// Generate samples the curve at p.Samples evenly spaced values of t.
// Samples below 2 are treated as 2.
func Generate(f Frame, p Params) []geom.Vec3 {
	n := p.Samples
	if n < 2 {
		n = 2
	}
	pts := make([]geom.Vec3, n)
	last := float64(n - 1)
	for i := range pts {
		pts[i] = f.At(p, float64(i)/last)
	}
	return pts
}
