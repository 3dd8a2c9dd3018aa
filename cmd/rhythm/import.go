package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/chart"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Add chart files to the library",
	Long: `Parse chart files and store them in the library keyed by the hash
of their notes. Importing the same notes again updates the title and artist.

Examples:
  rhythm import ./charts/song.yaml
  rhythm import ./charts/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Print a library chart as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runExport,
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a library chart",
	Args:  cobra.ExactArgs(1),
	Run:   runRemove,
}

func runImport(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg := loadSession("")
	store := mustOpenStore(logger)
	defer store.Close()

	failed := 0
	for _, path := range args {
		c, err := chart.LoadFile(path)
		if err == nil {
			err = c.Validate(cfg.Lanes)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			failed++
			continue
		}
		id, err := store.SaveChart(c)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("%s  %s (%d notes)\n", id[:12], c.Name, len(c.Notes))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	store := mustOpenStore(logger)
	defer store.Close()

	c, err := store.Chart(args[0])
	if err != nil {
		fail("%v", err)
	}
	data, err := chart.MarshalYAML(c)
	if err != nil {
		fail("%v", err)
	}
	os.Stdout.Write(data)
}

func runRemove(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	store := mustOpenStore(logger)
	defer store.Close()

	if err := store.DeleteChart(args[0]); err != nil {
		if errors.Is(err, storage.ErrAmbiguous) {
			fail("%v; use a longer prefix", err)
		}
		fail("%v", err)
	}
	fmt.Printf("Removed %s\n", args[0])
}
