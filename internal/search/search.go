// Package search enumerates a parameter grid of curves, validates each one and ranks the
// feasible set.
package search

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/cartpath/internal/analyze"
	"github.com/udisondev/cartpath/internal/curve"
)

// Result pairs a parameter vector with its validation report.
type Result struct {
	Params curve.Params
	Report analyze.Report
}

// Options tunes a search. The zero value searches with GOMAXPROCS workers, ranks by grade
// and keeps every accepted curve.
type Options struct {
	Workers     int
	Rank        Rank
	TopN        int
	Constraints []Constraint
}

// Outcome is the result of one search. Accepted is ranked; Rejected keeps enumeration order
// and the reason each candidate failed.
type Outcome struct {
	Accepted  []Result
	Rejected  []Result
	Evaluated int
}

// Evaluate generates and analyzes one candidate, then applies extra constraints.
// A candidate that passes the grade check but fails a constraint is demoted with the
// constraint's reason.
func Evaluate(f curve.Frame, p curve.Params, constraints []Constraint) Result {
	r := analyze.Analyze(curve.Generate(f, p))
	if r.OK {
		for _, c := range constraints {
			if ok, reason := c(p, r); !ok {
				r.OK = false
				r.Notes = reason
				break
			}
		}
	}
	return Result{Params: p, Report: r}
}

// Run evaluates every combination of g. Combinations are independent, so they are
// evaluated concurrently; each worker writes only its own slot.
// An empty accepted set is a valid outcome, not an error.
func Run(ctx context.Context, f curve.Frame, g Grid, opts Options) (Outcome, error) {
	params := g.Params()
	results := make([]Result, len(params))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, p := range params {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = Evaluate(f, p, opts.Constraints)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Outcome{}, fmt.Errorf("evaluating grid: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("evaluating grid: %w", err)
	}

	out := Outcome{Evaluated: len(results)}
	for _, r := range results {
		if r.Report.OK {
			out.Accepted = append(out.Accepted, r)
		} else {
			out.Rejected = append(out.Rejected, r)
		}
	}

	slices.SortStableFunc(out.Accepted, opts.Rank.compare)
	if opts.TopN > 0 && len(out.Accepted) > opts.TopN {
		out.Accepted = out.Accepted[:opts.TopN]
	}
	return out, nil
}
