package search

import (
	"fmt"

	"github.com/udisondev/cartpath/internal/analyze"
	"github.com/udisondev/cartpath/internal/curve"
)

// Constraint is an extra predicate applied after the grade check.
// It returns ok=false and a reason when the candidate must be rejected.
type Constraint func(p curve.Params, r analyze.Report) (ok bool, reason string)

// NorthLimit rejects curves whose northernmost point lies in a chunk below limit.
func NorthLimit(limit int) Constraint {
	return func(_ curve.Params, r analyze.Report) (bool, string) {
		if r.MinChunkZ < limit {
			return false, fmt.Sprintf("Goes too far north: chunk Z=%d (limit: >=%d)", r.MinChunkZ, limit)
		}
		return true, ""
	}
}

// SouthLimit rejects curves whose southernmost point reaches chunk limit or beyond.
func SouthLimit(limit int) Constraint {
	return func(_ curve.Params, r analyze.Report) (bool, string) {
		if r.MaxChunkZ >= limit {
			return false, fmt.Sprintf("Goes too far south: chunk Z=%d (limit: <%d)", r.MaxChunkZ, limit)
		}
		return true, ""
	}
}
