package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/pedrohrf/ironlog/internal/catalog"
	"github.com/pedrohrf/ironlog/internal/cli"
	"github.com/pedrohrf/ironlog/internal/config"
	"github.com/pedrohrf/ironlog/internal/errors"
	"github.com/pedrohrf/ironlog/internal/logger"
	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/persist"
	"github.com/pedrohrf/ironlog/internal/resttimer"
	"github.com/pedrohrf/ironlog/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize ironlog storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Log     cli.LogCmd     `cmd:"" help:"Log an exercise non-interactively."`
	Records cli.RecordsCmd `cmd:"" help:"Show standing personal records."`
	Catalog cli.CatalogCmd `cmd:"" help:"Browse the exercise catalog."`
	Export  cli.ExportCmd  `cmd:"" help:"Export all data to a backup file."`
	Import  cli.ImportCmd  `cmd:"" help:"Import data from a backup file."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run storage diagnostics."`
	Day     struct {
		Add    cli.DayAddCmd    `cmd:"" help:"Add a workout day."`
		List   cli.DayListCmd   `cmd:"" help:"List workout days."`
		Show   cli.DayShowCmd   `cmd:"" help:"Show a day's planned exercises."`
		Delete cli.DayDeleteCmd `cmd:"" help:"Delete a workout day."`
	} `cmd:"" help:"Manage workout days."`
	Exercise struct {
		Add    cli.ExerciseAddCmd    `cmd:"" help:"Add a planned exercise to a day."`
		Edit   cli.ExerciseEditCmd   `cmd:"" help:"Edit a planned exercise."`
		Delete cli.ExerciseDeleteCmd `cmd:"" help:"Remove a planned exercise."`
	} `cmd:"" help:"Manage planned exercises."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("ironlog"),
		kong.Description("Personal workout tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.1"},
	)

	cfgPath := CLI.Config
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: cfg.DataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	backend, snapshotPath, err := openBackend(cfg)
	if err != nil {
		errors.Fatal(err)
	}
	defer backend.Close()

	today := time.Now().Format("2006-01-02")
	st := store.New(persist.Load(backend, cfg.DataDir, today))

	saver := persist.NewSaver(backend, cfg.Debounce(), cfg.Heartbeat(), persist.TrimLimits{
		MaxSessions: cfg.Storage.MaxSessions,
		MaxLogged:   cfg.Storage.MaxLogged,
	})
	saver.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: could not save your data: %v\n", err)
	}
	unsubscribe := st.Subscribe(func(state models.WorkoutState) {
		saver.Schedule(state)
	})
	defer unsubscribe()
	saver.Start()
	defer saver.Close()

	rollover := persist.NewRollover(st, cfg.RolloverPoll())
	rollover.Start()
	defer rollover.Stop()

	cat, err := catalog.Load()
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Config:       cfg,
		Store:        st,
		Saver:        saver,
		Backend:      backend,
		Catalog:      cat,
		Timers:       resttimer.NewManager(),
		SnapshotPath: snapshotPath,
		Debug:        CLI.Debug,
	}

	if err := kctx.Run(appCtx); err != nil {
		saver.Close()
		errors.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	// Default location lives inside the default data dir; respect
	// IRONLOG_DATA_DIR when looking for it.
	cfg := config.Default()
	if v := os.Getenv("IRONLOG_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	return config.Load(filepath.Join(cfg.DataDir, "config.yaml"))
}

func openBackend(cfg *config.Config) (persist.Backend, string, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		path := filepath.Join(cfg.DataDir, "ironlog.db")
		b, err := persist.NewSQLiteBackend(path)
		return b, path, err
	default:
		path := filepath.Join(cfg.DataDir, "state.json")
		return persist.NewFileBackend(path), path, nil
	}
}
