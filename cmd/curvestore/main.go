// Curvestore keeps curve coordinate sets in PostgreSQL.
//
// Usage:
//
//	go run ./cmd/curvestore import [DIR|FILE ...]   # default: the configured south corpus
//	go run ./cmd/curvestore list
//	go run ./cmd/curvestore export ID [FILE]        # default: stdout
//	go run ./cmd/curvestore delete ID
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/udisondev/cartpath/internal/config"
	"github.com/udisondev/cartpath/internal/corpus"
	"github.com/udisondev/cartpath/internal/db"
	"github.com/udisondev/cartpath/internal/model"
)

type command struct {
	name string
	desc string
	run  func(ctx context.Context, cfg config.Config, repo *db.CoordinateSetRepository, args []string) error
}

var commands = []command{
	{"import", "store curve files as coordinate sets", runImport},
	{"list", "list stored coordinate sets", runList},
	{"export", "write a stored set as coordinate lines", runExport},
	{"delete", "remove a stored set", runDelete},
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
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return errors.New("missing command")
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	_ = godotenv.Load()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	dsn := cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if v, err := db.SchemaVersion(ctx, dsn); err == nil {
		slog.Debug("database migrations applied", "version", v)
	}

	database, err := db.New(ctx, dsn, cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	return cmd.run(ctx, cfg, database.CoordinateSets(), args[1:])
}

func runImport(ctx context.Context, cfg config.Config, repo *db.CoordinateSetRepository, args []string) error {
	if len(args) == 0 {
		args = []string{cfg.Dirs.South}
	}

	var paths []string
	for _, a := range args {
		st, err := os.Stat(a)
		if err != nil {
			return fmt.Errorf("import source: %w", err)
		}
		if !st.IsDir() {
			paths = append(paths, a)
			continue
		}
		listed, err := corpus.List(a)
		if err != nil {
			return err
		}
		paths = append(paths, listed...)
	}

	imported := 0
	for _, p := range paths {
		f, err := corpus.ReadFile(p)
		if err != nil {
			slog.Warn("skipping file", "path", p, "err", err)
			continue
		}

		set := model.NewCoordinateSet(cfg.Owner, strings.TrimSuffix(f.Name, corpus.Ext), describe(f.Meta), f.Coords)
		id, err := repo.Create(ctx, set)
		if err != nil {
			return fmt.Errorf("importing %s: %w", p, err)
		}
		slog.Info("imported", "id", id, "name", set.Name, "coordinates", len(set.Coordinates), "chunks", len(set.Chunks))
		imported++
	}
	slog.Info("import done", "files", len(paths), "imported", imported)
	return nil
}

// describe summarizes the analysis header of a curve file.
func describe(m corpus.Meta) string {
	var parts []string
	for _, k := range []string{"y_end", "loops", "max_grade", "length_3d", "status"} {
		if v, ok := m[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, " ")
}

func runList(ctx context.Context, cfg config.Config, repo *db.CoordinateSetRepository, _ []string) error {
	sets, err := repo.List(ctx, cfg.Owner)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPOINTS\tUPDATED\tDESCRIPTION")
	for _, s := range sets {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", s.ID, s.Name, s.CoordinateCount, s.UpdatedAt.Format("2006-01-02 15:04"), s.Description)
	}
	return w.Flush()
}

func runExport(ctx context.Context, cfg config.Config, repo *db.CoordinateSetRepository, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("usage: export ID [FILE]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parsing set id: %w", err)
	}

	set, err := repo.Load(ctx, id, cfg.Owner)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return corpus.EncodeCoords(os.Stdout, set.Points())
	}
	if err := corpus.WriteCoords(args[1], set.Points()); err != nil {
		return fmt.Errorf("exporting set %d: %w", id, err)
	}
	slog.Info("exported", "id", id, "path", args[1], "coordinates", len(set.Coordinates))
	return nil
}

func runDelete(ctx context.Context, cfg config.Config, repo *db.CoordinateSetRepository, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delete ID")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parsing set id: %w", err)
	}
	if err := repo.Delete(ctx, id, cfg.Owner); err != nil {
		return err
	}
	slog.Info("deleted", "id", id)
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/curvestore <command> [args]")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.name, c.desc)
	}
}
