// Curvestitch builds a track from a YAML layout of fixed waypoint runs and corners, checks
// every segment against the grade limit and prints or writes the coordinates.
//
// Usage:
//
//	go run ./cmd/curvestitch -layout layouts/loop.yaml
//	go run ./cmd/curvestitch -layout layouts/serpentine.yaml -out curves_stitched/serpentine.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/udisondev/cartpath/internal/config"
	"github.com/udisondev/cartpath/internal/corpus"
	"github.com/udisondev/cartpath/internal/stitch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(_ context.Context) error {
	layoutPath := flag.String("layout", "", "YAML layout file (required)")
	out := flag.String("out", "", "write coordinates to this file instead of stdout")
	flag.Parse()

	if *layoutPath == "" {
		flag.Usage()
		return errors.New("missing -layout")
	}

	_ = godotenv.Load()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	layout, err := stitch.LoadLayout(*layoutPath)
	if err != nil {
		return err
	}

	segs, err := stitch.Build(layout)
	if err != nil {
		return fmt.Errorf("building %s: %w", *layoutPath, err)
	}
	for _, s := range segs {
		slog.Debug("segment", "name", s.Name, "points", len(s.Points))
	}

	rep, err := stitch.Check(segs)
	if err != nil {
		return fmt.Errorf("checking %s: %w", *layoutPath, err)
	}

	path := stitch.Path(segs)
	slog.Info("track stitched",
		"segments", len(segs),
		"points", len(path),
		"max_grade", rep.MaxGrade,
		"length_3d", rep.Length3D,
		"chunk_z_min", rep.MinChunkZ,
		"chunk_z_max", rep.MaxChunkZ)

	if *out == "" {
		return corpus.EncodeCoords(os.Stdout, path)
	}
	if err := corpus.WriteCoords(*out, path); err != nil {
		return fmt.Errorf("writing track: %w", err)
	}
	slog.Info("track written", "path", *out)
	return nil
}
