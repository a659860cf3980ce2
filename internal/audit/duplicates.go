package audit

import (
	"fmt"
	"slices"

	"github.com/udisondev/cartpath/internal/corpus"
)

// Group is a set of files with identical coordinate sequences. Keep is the alphabetically
// first name; Duplicates are the rest.
type Group struct {
	Keep       string
	Duplicates []string
}

// Pair links a file of one corpus to an identical file of another.
type Pair struct {
	Left  string
	Right string
}

type index map[Digest][]corpus.File

func buildIndex(files []corpus.File) index {
	idx := make(index, len(files))
	for _, f := range files {
		d := Sum(f.Coords)
		idx[d] = append(idx[d], f)
	}
	return idx
}

// Duplicates groups the files of c by identical coordinates.
// Digests only narrow the candidates; membership is confirmed by exact comparison.
func Duplicates(c Corpus) []Group {
	idx := buildIndex(c.Files)

	var groups []Group
	seen := make(map[Digest]bool, len(idx))
	for _, f := range c.Files {
		d := Sum(f.Coords)
		if seen[d] {
			continue
		}
		seen[d] = true

		var members []string
		for _, o := range idx[d] {
			if slices.Equal(o.Coords, f.Coords) {
				members = append(members, o.Path)
			}
		}
		if len(members) < 2 {
			continue
		}
		slices.Sort(members)
		groups = append(groups, Group{Keep: members[0], Duplicates: members[1:]})
	}
	return groups
}

// FindDuplicates loads dir and groups its duplicate files.
func FindDuplicates(dir string) ([]Group, Corpus, error) {
	c, err := Load(dir)
	if err != nil {
		return nil, Corpus{}, fmt.Errorf("finding duplicates: %w", err)
	}
	return Duplicates(c), c, nil
}

// Cross reports every file of right whose coordinates exactly match a file of left. Each
// right file appears at most once, paired with its first match in left's name order.
func Cross(left, right Corpus) []Pair {
	idx := buildIndex(left.Files)

	var pairs []Pair
	for _, r := range right.Files {
		for _, l := range idx[Sum(r.Coords)] {
			if slices.Equal(l.Coords, r.Coords) {
				pairs = append(pairs, Pair{Left: l.Path, Right: r.Path})
				break
			}
		}
	}
	return pairs
}

// CrossDuplicates loads both directories and compares them. Either directory missing is
// fatal.
func CrossDuplicates(leftDir, rightDir string) ([]Pair, error) {
	left, err := Load(leftDir)
	if err != nil {
		return nil, fmt.Errorf("cross duplicates: %w", err)
	}
	right, err := Load(rightDir)
	if err != nil {
		return nil, fmt.Errorf("cross duplicates: %w", err)
	}
	return Cross(left, right), nil
}
