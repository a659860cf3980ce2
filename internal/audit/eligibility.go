package audit

import (
	"fmt"

	"github.com/udisondev/cartpath/internal/corpus"
	"github.com/udisondev/cartpath/internal/geom"
)

// Bound selects which Z extreme a rule constrains.
type Bound int

const (
	// SouthBound flags files whose largest Z reaches chunk Limit or beyond.
	SouthBound Bound = iota
	// NorthBound flags files whose smallest Z lies in a chunk below Limit.
	NorthBound
)

func (b Bound) String() string {
	if b == NorthBound {
		return "north"
	}
	return "south"
}

// Rule is a chunk eligibility boundary on the Z axis.
type Rule struct {
	Bound Bound
	Limit int
}

// Verdict is the eligibility of one file.
type Verdict struct {
	Path     string
	Extreme  int // extreme Z coordinate in the constrained direction
	Chunk    int
	Eligible bool
}

// Eligibility is the result of checking one corpus.
type Eligibility struct {
	Eligible   []Verdict
	Ineligible []Verdict
	Skipped    []string
}

// Judge applies r to one file's coordinates. coords must be non-empty.
func (r Rule) Judge(f corpus.File) Verdict {
	ext := f.Coords[0].Z
	for _, c := range f.Coords[1:] {
		if r.Bound == NorthBound {
			ext = min(ext, c.Z)
		} else {
			ext = max(ext, c.Z)
		}
	}

	chunk := geom.Chunk(ext)
	eligible := chunk < r.Limit
	if r.Bound == NorthBound {
		eligible = chunk >= r.Limit
	}
	return Verdict{Path: f.Path, Extreme: ext, Chunk: chunk, Eligible: eligible}
}

// Check judges every file of c.
func (r Rule) Check(c Corpus) Eligibility {
	out := Eligibility{Skipped: c.Skipped}
	for _, f := range c.Files {
		v := r.Judge(f)
		if v.Eligible {
			out.Eligible = append(out.Eligible, v)
		} else {
			out.Ineligible = append(out.Ineligible, v)
		}
	}
	return out
}

// CheckEligibility loads dir and applies r.
func CheckEligibility(dir string, r Rule) (Eligibility, error) {
	c, err := Load(dir)
	if err != nil {
		return Eligibility{}, fmt.Errorf("checking eligibility: %w", err)
	}
	return r.Check(c), nil
}
