package config

import (
	"log/slog"
	"os"

	"github.com/udisondev/cartpath/internal/curve"
	"github.com/udisondev/cartpath/internal/geom"
	"github.com/udisondev/cartpath/internal/search"
)

// DefaultPath is read when CARTPATH_CONFIG is unset.
const DefaultPath = "config/cartpath.yaml"

// PathFromEnv returns the config path from CARTPATH_CONFIG or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv("CARTPATH_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// SlogLevel maps LogLevel to a slog level. Unknown values fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Frame returns the fixed endpoints of the search for orientation o.
func (c Config) Frame(o curve.Orientation) curve.Frame {
	return curve.Frame{
		Start:       geom.V3(c.Start.X, c.Start.Y, c.Start.Z),
		End:         geom.XZ{X: c.End.X, Z: c.End.Z},
		Orientation: o,
	}
}

// Grid returns the search parameter space.
func (c Config) Grid() search.Grid {
	s := c.Search
	return search.Grid{
		YEnd:    search.Range(s.YEnd),
		Loops:   search.Range(s.Loops),
		A:       s.A,
		B:       s.B,
		Samples: s.Samples,
	}
}

// Orientation parses Search.Orientation. Empty means south.
func (c Config) Orientation() (curve.Orientation, error) {
	if c.Search.Orientation == "" {
		return curve.South, nil
	}
	return curve.ParseOrientation(c.Search.Orientation)
}

// Options builds search options for orientation o. North-first searches are limited by
// NorthChunkLimit; south-first searches by SouthChunkLimit when EnforceSouthLimit is set.
func (c Config) Options(o curve.Orientation) (search.Options, error) {
	rank, err := search.ParseRank(c.Search.Rank)
	if err != nil {
		return search.Options{}, err
	}
	opts := search.Options{
		Workers: c.Search.Workers,
		Rank:    rank,
		TopN:    c.Search.TopN,
	}
	switch {
	case o == curve.North:
		opts.Constraints = append(opts.Constraints, search.NorthLimit(c.NorthChunkLimit))
	case c.EnforceSouthLimit:
		opts.Constraints = append(opts.Constraints, search.SouthLimit(c.SouthChunkLimit))
	}
	return opts, nil
}

// OutputDir returns the corpus directory for orientation o.
func (c Config) OutputDir(o curve.Orientation) string {
	if o == curve.North {
		return c.Dirs.North
	}
	return c.Dirs.South
}
