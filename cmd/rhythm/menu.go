package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a chart picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a chart.
Esc during play returns to the picker.`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagJudge, "judge", "", "Judge preset: easy, normal, hard")
	menuCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start charts with the debug overlay")
}

func runMenu(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	cfg := loadSession(flagJudge)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunApp(tui.AppOptions{
		Config:  cfg,
		Catalog: newCatalog(store, cfg),
		Logger:  logger,
		Debug:   flagDebug,
	}); err != nil {
		fail("running menu: %v", err)
	}
}
