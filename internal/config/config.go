package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/cartpath/internal/search"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all configuration for the curve tools.
type Config struct {
	// Geometry
	Start Vec3 `yaml:"start"`
	End   XZ   `yaml:"end"`

	// Search space
	Search Search `yaml:"search"`

	// Rendering
	RenderSamples int `yaml:"render_samples"`

	// Chunk limits on Z
	NorthChunkLimit int `yaml:"north_chunk_limit"` // north-first search: min chunk Z must be >= limit
	SouthChunkLimit int `yaml:"south_chunk_limit"` // eligibility audit: max chunk Z must be < limit

	// EnforceSouthLimit applies SouthChunkLimit during south-first searches too, so
	// ineligible curves are never written.
	EnforceSouthLimit bool `yaml:"enforce_south_limit"`

	// Directories
	Dirs Dirs `yaml:"dirs"`

	// Database
	Database DatabaseConfig `yaml:"database"`
	Owner    string         `yaml:"owner"` // owner recorded on imported coordinate sets

	LogLevel string `yaml:"log_level"`
}

// Vec3 is a YAML-friendly 3D point.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// XZ is a YAML-friendly horizontal point.
type XZ struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// IntRange is an inclusive stepped range.
type IntRange struct {
	Min  int `yaml:"min"`
	Max  int `yaml:"max"`
	Step int `yaml:"step"`
}

// Search holds the parameter grid and search policy.
type Search struct {
	YEnd        IntRange  `yaml:"y_end"`
	Loops       IntRange  `yaml:"loops"`
	A           []float64 `yaml:"a"`
	B           []float64 `yaml:"b"`
	Samples     int       `yaml:"samples"`
	Rank        string    `yaml:"rank"`        // grade | length
	Orientation string    `yaml:"orientation"` // south | north
	Workers     int       `yaml:"workers"`     // 0 = GOMAXPROCS
	TopN        int       `yaml:"top_n"`       // 0 = keep all
}

// Dirs names the corpus directories. None has to exist beforehand.
type Dirs struct {
	South      string `yaml:"south"`
	North      string `yaml:"north"`
	Quarantine string `yaml:"quarantine"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"` // 0 = pgx default
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns the configuration of the original layout.
func Default() Config {
	return Config{
		Start: Vec3{X: -199, Y: 98, Z: 410},
		End:   XZ{X: -330, Z: 352},
		Search: Search{
			YEnd:        IntRange{Min: 222, Max: 270, Step: 2},
			Loops:       IntRange{Min: 0, Max: 8, Step: 1},
			A:           []float64{40, 60, 80, 100, 120, 140},
			B:           []float64{0, 10, 20, 30, 40, 60, 80},
			Samples:     900,
			Rank:        "grade",
			Orientation: "south",
		},
		RenderSamples:   350,
		NorthChunkLimit: 18,
		SouthChunkLimit: 30,
		Dirs: Dirs{
			South:      "curves",
			North:      "curves_north",
			Quarantine: "curves_deleted",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "cartpath",
			Password: "cartpath",
			DBName:   "cartpath",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		Owner:    "builder",
		LogLevel: "info",
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	s := c.Search
	switch {
	case s.Samples < 2:
		return fmt.Errorf("%w: search.samples %d < 2", ErrInvalid, s.Samples)
	case c.RenderSamples < 2:
		return fmt.Errorf("%w: render_samples %d < 2", ErrInvalid, c.RenderSamples)
	case s.YEnd.Step <= 0 || s.Loops.Step <= 0:
		return fmt.Errorf("%w: range steps must be positive", ErrInvalid)
	case s.YEnd.Min > s.YEnd.Max:
		return fmt.Errorf("%w: search.y_end min %d > max %d", ErrInvalid, s.YEnd.Min, s.YEnd.Max)
	case s.Loops.Min > s.Loops.Max:
		return fmt.Errorf("%w: search.loops min %d > max %d", ErrInvalid, s.Loops.Min, s.Loops.Max)
	case s.Loops.Min < 0:
		return fmt.Errorf("%w: search.loops must be non-negative", ErrInvalid)
	case s.Workers < 0 || s.TopN < 0:
		return fmt.Errorf("%w: workers and top_n must be non-negative", ErrInvalid)
	}
	for _, v := range append(append([]float64(nil), s.A...), s.B...) {
		if v < 0 {
			return fmt.Errorf("%w: amplitude %g is negative", ErrInvalid, v)
		}
	}
	if _, err := search.ParseRank(s.Rank); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Orientation(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
