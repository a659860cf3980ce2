package geom

import (
	"fmt"
	"math"
)

// Vec3 is a real-valued waypoint. Y is elevation, X and Z are horizontal.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// V3 returns the vector ⟨x, y, z⟩.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("⟨%g, %g, %g⟩", v.X, v.Y, v.Z)
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v multiplied by k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Horizontal returns the length of the XZ projection of v.
func (v Vec3) Horizontal() float64 {
	return math.Hypot(v.X, v.Z)
}

// Round snaps v to the integer lattice, rounding half away from zero on each axis.
func (v Vec3) Round() Point {
	return Point{
		X: int(math.Round(v.X)),
		Y: int(math.Round(v.Y)),
		Z: int(math.Round(v.Z)),
	}
}

// XZ is a horizontal target position.
type XZ struct {
	X float64
	Z float64
}

// Point is a waypoint on the integer block lattice.
type Point struct {
	X int
	Y int
	Z int
}

// P returns the lattice point (x, y, z).
func P(x, y, z int) Point {
	return Point{X: x, Y: y, Z: z}
}

// String formats p as the bracketed triple used by coordinate files.
func (p Point) String() string {
	return fmt.Sprintf("[%d, %d, %d]", p.X, p.Y, p.Z)
}

// Vec converts p back to real coordinates.
func (p Point) Vec() Vec3 {
	return Vec3{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

// RoundAll snaps every waypoint of path to the lattice.
func RoundAll(path []Vec3) []Point {
	out := make([]Point, len(path))
	for i, v := range path {
		out[i] = v.Round()
	}
	return out
}
