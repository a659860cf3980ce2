package model

import (
	"cmp"
	"slices"
	"time"

	"github.com/udisondev/cartpath/internal/geom"
)

// ChunkType классифицирует отмеченный chunk.
type ChunkType string

const (
	// ChunkMine — chunk, который занимает путь.
	ChunkMine ChunkType = "mine"
	// ChunkUnavailable — chunk, в который путь заходить не должен.
	ChunkUnavailable ChunkType = "unavailable"
)

// Valid сообщает, известен ли тип.
func (t ChunkType) Valid() bool {
	return t == ChunkMine || t == ChunkUnavailable
}

// ChunkMark — отметка chunk в наборе координат.
type ChunkMark struct {
	X    int
	Z    int
	Type ChunkType
}

// Coordinate — одна точка набора. Порядок точек задаётся позицией в CoordinateSet.Coordinates.
type Coordinate struct {
	Point     geom.Point
	Label     string
	Color     string
	SegmentID *int
}

// CoordinateSet — именованный набор точек пути, сохранённый в БД.
type CoordinateSet struct {
	ID          int64
	Owner       string
	Name        string
	Description string
	Coordinates []Coordinate
	Chunks      []ChunkMark
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CoordinateSetSummary — строка списка наборов (без точек).
type CoordinateSetSummary struct {
	ID              int64
	Name            string
	Description     string
	CoordinateCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewCoordinateSet создаёт набор из точек пути и помечает занятые chunks как ChunkMine.
func NewCoordinateSet(owner, name, description string, points []geom.Point) *CoordinateSet {
	coords := make([]Coordinate, len(points))
	for i, p := range points {
		coords[i] = Coordinate{Point: p}
	}
	return &CoordinateSet{
		Owner:       owner,
		Name:        name,
		Description: description,
		Coordinates: coords,
		Chunks:      ChunksOf(points, ChunkMine),
	}
}

// Points возвращает точки набора по порядку.
func (s *CoordinateSet) Points() []geom.Point {
	out := make([]geom.Point, len(s.Coordinates))
	for i, c := range s.Coordinates {
		out[i] = c.Point
	}
	return out
}

// ChunksOf возвращает различные chunks, через которые проходят points, отсортированные по (X, Z).
func ChunksOf(points []geom.Point, typ ChunkType) []ChunkMark {
	seen := make(map[[2]int]struct{}, len(points)/8+1)
	var out []ChunkMark
	for _, p := range points {
		key := [2]int{geom.Chunk(p.X), geom.Chunk(p.Z)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ChunkMark{X: key[0], Z: key[1], Type: typ})
	}
	slices.SortFunc(out, func(a, b ChunkMark) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Z, b.Z))
	})
	return out
}
