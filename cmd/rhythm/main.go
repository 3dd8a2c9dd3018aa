// rhythm is a terminal rhythm game runtime: charts scroll down lanes and
// key presses are judged against their target times.
//
// Usage:
//
//	rhythm list                 - List built-in patterns and library charts
//	rhythm play <chart>         - Play a chart (pattern id, file or library id)
//	rhythm menu                 - Pick charts interactively
//	rhythm simulate <chart>     - Autoplay a chart headless and print the tally
//	rhythm import <file>...     - Add chart files to the library
//	rhythm export <id>          - Print a library chart as YAML
//	rhythm remove <id>          - Delete a library chart
//	rhythm serve                - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Session configuration YAML
//	--db <path>         - Chart library (default: ~/.rhythm/charts.db)
//	--charts <dir>      - Chart file directory (default: ~/.rhythm/charts)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination ("-" for stderr)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import patterns to register them
	_ "github.com/vovakirdan/tui-rhythm/internal/patterns"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagChartDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rhythm",
	Short: "TUI Rhythm - play rhythm charts in your terminal",
	Long: `TUI Rhythm scrolls notes down lanes toward a judgement line.
Press the lane key as a note crosses the line; every press is judged
by how far it was from the note's target time.

Available commands:
  list      - Show built-in patterns and library charts
  play      - Play a chart directly
  menu      - Interactive chart picker
  simulate  - Autoplay a chart without a terminal
  import    - Add chart files to the library
  export    - Print a library chart as YAML
  remove    - Delete a library chart
  serve     - Start SSH server for remote play

Examples:
  rhythm list
  rhythm play stairs
  rhythm play ./charts/song.yaml --judge hard
  rhythm simulate jacks --offset 40
  rhythm serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom session config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rhythm/charts.db", "Path to chart library database")
	rootCmd.PersistentFlags().StringVar(&flagChartDir, "charts", "", "Directory scanned for chart files (default ~/.rhythm/charts)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.rhythm/rhythm.log for terminal play, stderr otherwise; \"-\" for stderr)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(serveCmd)
}
