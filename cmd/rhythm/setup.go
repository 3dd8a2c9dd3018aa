package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/catalog"
	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the process logger. Terminal play owns stderr, so it logs
// to a file unless told otherwise. Call the returned func on exit.
func newLogger(terminal bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}
	path := flagLogFile
	if path == "" && terminal {
		path = filepath.Join(config.UserDir(), "rhythm.log")
	}
	if path != "" && path != "-" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			fail("cannot create log directory: %v", mkErr)
		}
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			fail("cannot open log file: %v", openErr)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "rhythm",
	})
	return logger, closeLog
}

// loadSession loads the session config and applies the judge preset.
func loadSession(judge string) config.Session {
	cfg, err := config.LoadSession(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParseJudgePreset(judge)
	if err != nil {
		fail("%v", err)
	}
	if err := config.ApplyJudgePreset(&cfg, preset); err != nil {
		fail("%v", err)
	}
	return cfg
}

// openStore opens the chart library. Failure is not fatal: built-in
// patterns and chart files still work.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open chart library: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the chart library for commands that only work on it.
func mustOpenStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath, logger)
	if err != nil {
		fail("could not open chart library: %v", err)
	}
	return store
}

func newCatalog(store *storage.Store, cfg config.Session) *catalog.Catalog {
	dir := flagChartDir
	if dir == "" {
		dir = filepath.Join(config.UserDir(), "charts")
	}
	return catalog.New(store, dir, registry.Params{Lanes: cfg.Lanes})
}
