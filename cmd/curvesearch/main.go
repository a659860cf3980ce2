// Curvesearch enumerates the configured parameter grid, keeps the curves that respect the
// 45° grade limit and writes one coordinate file per feasible curve.
//
// Usage:
//
//	go run ./cmd/curvesearch                      # south-first search with config defaults
//	go run ./cmd/curvesearch -orientation north   # north-first, limited by north_chunk_limit
//	go run ./cmd/curvesearch -top 10              # persist only the ten best curves
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/udisondev/cartpath/internal/config"
	"github.com/udisondev/cartpath/internal/corpus"
	"github.com/udisondev/cartpath/internal/curve"
	"github.com/udisondev/cartpath/internal/search"
)

// summaryLen is how many ranked curves are printed after a search.
const summaryLen = 20

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	orientation := flag.String("orientation", "", "south or north (overrides config)")
	top := flag.Int("top", -1, "persist only the N best curves (overrides config)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *orientation != "" {
		cfg.Search.Orientation = *orientation
	}
	if *top >= 0 {
		cfg.Search.TopN = *top
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	o, err := cfg.Orientation()
	if err != nil {
		return fmt.Errorf("parsing orientation: %w", err)
	}
	opts, err := cfg.Options(o)
	if err != nil {
		return fmt.Errorf("building search options: %w", err)
	}

	frame, grid := cfg.Frame(o), cfg.Grid()
	slog.Info("search starting", "orientation", o, "grid", grid.String(), "candidates", grid.Size())

	start := time.Now()
	out, err := search.Run(ctx, frame, grid, opts)
	if err != nil {
		return fmt.Errorf("running search: %w", err)
	}
	slog.Info("search finished",
		"evaluated", out.Evaluated,
		"accepted", len(out.Accepted),
		"rejected", len(out.Rejected),
		"elapsed", time.Since(start).Round(time.Millisecond))
	logRejections(out.Rejected)

	if len(out.Accepted) == 0 {
		fmt.Println("No feasible curves found in this search space. Try increasing loops/A/B or samples.")
		return nil
	}

	dir := cfg.OutputDir(o)
	names, err := corpus.Persist(frame, out.Accepted, dir, cfg.RenderSamples)
	if err != nil {
		return fmt.Errorf("writing corpus: %w", err)
	}
	slog.Info("corpus written", "dir", dir, "files", len(names))

	printSummary(o, out.Accepted)
	return nil
}

// logRejections reports how many candidates failed for each reason.
func logRejections(rejected []search.Result) {
	counts := make(map[string]int)
	for _, r := range rejected {
		counts[r.Report.Notes]++
	}
	for reason, n := range counts {
		slog.Debug("rejected", "reason", reason, "count", n)
	}
}

func printSummary(o curve.Orientation, accepted []search.Result) {
	fmt.Printf("Top feasible curves, %s-first (sorted by ranking policy):\n\n", o)
	for i, r := range accepted[:min(summaryLen, len(accepted))] {
		p, rep := r.Params, r.Report
		fmt.Printf("%2d) y_end=%d loops=%d A=%g B=%g | max_grade=%.3f | L2=%.1f L3=%.1f | min_h_step=%.3f | chunk_z=%d..%d\n",
			i+1, p.YEnd, p.Loops, p.A, p.B,
			rep.MaxGrade, rep.Length2D, rep.Length3D, rep.MinHorizStep, rep.MinChunkZ, rep.MaxChunkZ)
	}
}
