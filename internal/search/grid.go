package search

import (
	"fmt"

	"github.com/udisondev/cartpath/internal/curve"
)

// Range is an inclusive integer range walked with a positive step.
type Range struct {
	Min  int
	Max  int
	Step int
}

// Values expands r. A non-positive step is treated as 1.
func (r Range) Values() []int {
	step := r.Step
	if step <= 0 {
		step = 1
	}
	if r.Max < r.Min {
		return nil
	}
	out := make([]int, 0, (r.Max-r.Min)/step+1)
	for v := r.Min; v <= r.Max; v += step {
		out = append(out, v)
	}
	return out
}

// Grid is the Cartesian parameter space of a search.
type Grid struct {
	YEnd    Range
	Loops   Range
	A       []float64
	B       []float64
	Samples int
}

// Size returns the number of combinations in g.
func (g Grid) Size() int {
	return len(g.YEnd.Values()) * len(g.Loops.Values()) * len(g.A) * len(g.B)
}

// Params enumerates g in deterministic order: y_end, loops, A, B (innermost).
func (g Grid) Params() []curve.Params {
	ys, ls := g.YEnd.Values(), g.Loops.Values()
	out := make([]curve.Params, 0, g.Size())
	for _, y := range ys {
		for _, l := range ls {
			for _, a := range g.A {
				for _, b := range g.B {
					out = append(out, curve.Params{YEnd: y, Loops: l, A: a, B: b, Samples: g.Samples})
				}
			}
		}
	}
	return out
}

func (g Grid) String() string {
	return fmt.Sprintf("y_end %d..%d/%d, loops %d..%d, %d A, %d B, %d samples",
		g.YEnd.Min, g.YEnd.Max, g.YEnd.Step, g.Loops.Min, g.Loops.Max, len(g.A), len(g.B), g.Samples)
}
