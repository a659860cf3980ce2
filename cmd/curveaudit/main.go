// Curveaudit inspects curve corpora on disk.
//
// Usage:
//
//	go run ./cmd/curveaudit dupes                 # duplicate files inside the south corpus
//	go run ./cmd/curveaudit -move dupes           # ...and quarantine every non-keeper
//	go run ./cmd/curveaudit cross                 # curves present in both south and north corpora
//	go run ./cmd/curveaudit eligibility           # south corpus against south_chunk_limit
//	go run ./cmd/curveaudit -bound north eligibility
package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/udisondev/cartpath/internal/audit"
	"github.com/udisondev/cartpath/internal/config"
)

type options struct {
	cfg   config.Config
	dir   string
	move  bool
	bound string
}

type command struct {
	name string
	desc string
	run  func(ctx context.Context, o options) error
}

var commands = []command{
	{"dupes", "group files with identical coordinates inside one corpus", runDupes},
	{"cross", "list curves present in both the south and north corpora", runCross},
	{"eligibility", "check every curve against the chunk Z limit", runEligibility},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	move := flag.Bool("move", false, "move flagged files into the quarantine directory")
	dir := flag.String("dir", "", "corpus directory (defaults to the configured one)")
	bound := flag.String("bound", "south", "eligibility bound: south or north")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		return fmt.Errorf("expected exactly one command, got %d", flag.NArg())
	}

	_ = godotenv.Load()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	name := flag.Arg(0)
	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, options{cfg: cfg, dir: *dir, move: *move, bound: *bound})
		}
	}
	printUsage()
	return fmt.Errorf("unknown command %q", name)
}

func runDupes(_ context.Context, o options) error {
	dir := cmp.Or(o.dir, o.cfg.Dirs.South)
	groups, c, err := audit.FindDuplicates(dir)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		fmt.Println("No duplicate files found. All curves are unique.")
		return nil
	}

	var flagged []string
	for i, g := range groups {
		fmt.Printf("Group %d: %d identical files\n", i+1, len(g.Duplicates)+1)
		fmt.Printf("  KEEP:   %s\n", g.Keep)
		for _, d := range g.Duplicates {
			fmt.Printf("  DELETE: %s\n", d)
		}
		flagged = append(flagged, g.Duplicates...)
	}
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total files: %d\nDuplicate groups: %d\nFiles to delete: %d\nFiles to keep: %d\n",
		len(c.Files), len(groups), len(flagged), len(c.Files)-len(flagged))

	return quarantine(o, flagged)
}

func runCross(_ context.Context, o options) error {
	south, north := o.cfg.Dirs.South, o.cfg.Dirs.North
	pairs, err := audit.CrossDuplicates(south, north)
	if err != nil {
		return err
	}

	for _, p := range pairs {
		fmt.Printf("DUPLICATE:\n  south: %s\n  north: %s\n", p.Left, p.Right)
	}
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duplicates found: %d\n", len(pairs))

	flagged := make([]string, len(pairs))
	for i, p := range pairs {
		flagged[i] = p.Right
	}
	return quarantine(o, flagged)
}

func runEligibility(_ context.Context, o options) error {
	rule := audit.Rule{Bound: audit.SouthBound, Limit: o.cfg.SouthChunkLimit}
	dir := cmp.Or(o.dir, o.cfg.Dirs.South)
	switch o.bound {
	case "south":
	case "north":
		rule = audit.Rule{Bound: audit.NorthBound, Limit: o.cfg.NorthChunkLimit}
		dir = cmp.Or(o.dir, o.cfg.Dirs.North)
	default:
		return fmt.Errorf("unknown bound %q", o.bound)
	}

	res, err := audit.CheckEligibility(dir, rule)
	if err != nil {
		return err
	}

	for _, s := range res.Skipped {
		fmt.Printf("SKIP: %s (no coordinates found)\n", s)
	}
	sort.SliceStable(res.Ineligible, func(i, j int) bool {
		return res.Ineligible[i].Chunk > res.Ineligible[j].Chunk
	})
	for _, v := range res.Ineligible {
		fmt.Printf("INELIGIBLE: %s (chunk Z=%d, Z=%d)\n", v.Path, v.Chunk, v.Extreme)
	}
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Bound: %s, limit chunk %d\nEligible curves: %d\nIneligible curves: %d\n",
		rule.Bound, rule.Limit, len(res.Eligible), len(res.Ineligible))

	flagged := make([]string, len(res.Ineligible))
	for i, v := range res.Ineligible {
		flagged[i] = v.Path
	}
	return quarantine(o, flagged)
}

// quarantine moves flagged files when -move is set.
func quarantine(o options, flagged []string) error {
	if !o.move || len(flagged) == 0 {
		return nil
	}
	moved, err := audit.Quarantine(flagged, o.cfg.Dirs.Quarantine, time.Now())
	for _, m := range moved {
		slog.Info("moved to quarantine", "dest", m)
	}
	if err != nil {
		return fmt.Errorf("quarantining files: %w", err)
	}
	slog.Info("quarantine done", "dir", o.cfg.Dirs.Quarantine, "moved", len(moved))
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/curveaudit [-move] [-dir DIR] [-bound south|north] <command>")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", c.name, c.desc)
	}
}
