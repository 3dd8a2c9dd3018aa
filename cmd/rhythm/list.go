package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in patterns and library charts",
	Long:  `Shows every chart that can be passed to 'rhythm play' by id.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg := loadSession("")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	items, err := newCatalog(store, cfg).Items()
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	if len(items) == 0 {
		fmt.Println("No charts available.")
		return
	}

	// Calculate column widths
	maxRefLen := 2 // "ID" header
	for _, it := range items {
		ref := displayRef(it)
		if len(ref) > maxRefLen {
			maxRefLen = len(ref)
		}
	}

	fmt.Printf("  %-*s  %-8s  %5s  %s\n", maxRefLen, "ID", "Source", "Notes", "Title")
	fmt.Printf("  %-*s  %-8s  %5s  %s\n", maxRefLen, "--", "------", "-----", "-----")
	for _, it := range items {
		title := it.Title
		if it.Artist != "" {
			title += " - " + it.Artist
		}
		fmt.Printf("  %-*s  %-8s  %5d  %s\n", maxRefLen, displayRef(it), it.Kind, it.Notes, title)
	}

	fmt.Println()
	fmt.Println("Run 'rhythm play <id>' to play a chart. Library ids may be shortened to a unique prefix.")
}

// displayRef shortens library hashes.
func displayRef(it catalog.Item) string {
	if it.Kind == catalog.KindLibrary && len(it.Ref) > 12 {
		return it.Ref[:12]
	}
	return it.Ref
}
