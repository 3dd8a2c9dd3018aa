package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
)

var (
	flagJudge string
	flagDebug bool
)

var playCmd = &cobra.Command{
	Use:   "play <chart>",
	Short: "Play a chart",
	Long: `Play a built-in pattern, a chart file or a library chart.

Controls:
  Lane keys  - Hit notes (default: e f space j i)
  F2         - Toggle debug overlay
  F5         - Restart
  Esc        - Back
  Ctrl+C     - Quit

Judge presets scale every judgement window:
  easy   - 1.5x wider
  normal - as configured
  hard   - 0.75x

Examples:
  rhythm play alternate
  rhythm play ./charts/song.yaml --judge hard
  rhythm play 3fa9c2 --debug`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagJudge, "judge", "", "Judge preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with the debug overlay")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	cfg := loadSession(flagJudge)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ch, err := newCatalog(store, cfg).Load(args[0])
	if err != nil {
		fail("%v\nRun 'rhythm list' to see available charts.", err)
	}

	if err := tui.Run(tui.GameOptions{
		Config: cfg,
		Chart:  ch,
		Logger: logger,
		Debug:  flagDebug,
	}); err != nil {
		fail("running chart: %v", err)
	}
}
