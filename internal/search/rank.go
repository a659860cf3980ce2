package search

import (
	"cmp"
	"fmt"
)

// Rank orders the accepted corpus. Ties keep enumeration order.
type Rank int

const (
	// RankGrade prefers the lowest worst-case grade, then the shortest 3D length.
	RankGrade Rank = iota
	// RankLength prefers the shortest 3D length, then the lowest worst-case grade.
	RankLength
)

func (r Rank) String() string {
	switch r {
	case RankGrade:
		return "grade"
	case RankLength:
		return "length"
	default:
		return fmt.Sprintf("Rank(%d)", int(r))
	}
}

// ParseRank parses "grade" or "length".
func ParseRank(s string) (Rank, error) {
	switch s {
	case "", "grade":
		return RankGrade, nil
	case "length":
		return RankLength, nil
	}
	return 0, fmt.Errorf("unknown ranking %q", s)
}

func (r Rank) compare(a, b Result) int {
	if r == RankLength {
		return cmp.Or(
			cmp.Compare(a.Report.Length3D, b.Report.Length3D),
			cmp.Compare(a.Report.MaxGrade, b.Report.MaxGrade),
		)
	}
	return cmp.Or(
		cmp.Compare(a.Report.MaxGrade, b.Report.MaxGrade),
		cmp.Compare(a.Report.Length3D, b.Report.Length3D),
	)
}
