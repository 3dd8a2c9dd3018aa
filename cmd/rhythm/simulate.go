package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

var (
	flagOffset int64
	flagJitter int64
	flagSeed   uint64
	flagStep   time.Duration
	flagTrace  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <chart>",
	Short: "Autoplay a chart headless and print the tally",
	Long: `Run a chart on a manual clock with an autoplayer pressing every note.
No terminal is needed and the result is deterministic for a given seed.

Examples:
  rhythm simulate stairs
  rhythm simulate jacks --offset 40
  rhythm simulate ./song.yaml --jitter 80 --seed 7 --judge hard
  rhythm simulate chords --trace`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagJudge, "judge", "", "Judge preset: easy, normal, hard")
	simulateCmd.Flags().Int64Var(&flagOffset, "offset", 0, "Press every note this many ms late (negative for early)")
	simulateCmd.Flags().Int64Var(&flagJitter, "jitter", 0, "Add a random offset in [-jitter, jitter] ms per note")
	simulateCmd.Flags().Uint64Var(&flagSeed, "seed", 1, "Seed for --jitter")
	simulateCmd.Flags().DurationVar(&flagStep, "step", time.Millisecond, "Clock advance per tick")
	simulateCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print every verdict as it happens")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	if flagStep <= 0 {
		fail("--step must be positive")
	}

	cfg := loadSession(flagJudge)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ch, err := newCatalog(store, cfg).Load(args[0])
	if err != nil {
		fail("%v", err)
	}

	clock := core.NewManualClock(time.Unix(0, 0))
	tally := engine.NewTally(cfg.Tiers)
	sink := core.Verdicts{tally}
	if flagTrace {
		sink = append(sink, core.VerdictFunc(printVerdict))
	}
	bindings := cfg.KeyBindings()
	session := engine.NewSession(ch.Notes, engine.Options{
		LookaheadMs: cfg.LookaheadMs,
		Tiers:       cfg.Tiers,
		Bindings:    bindings,
		Clock:       clock,
		Sink:        sink,
		Logger:      logger,
	})

	bot := engine.NewAutoplayer(ch.Notes, bindings, simulateOffsets(flagOffset, flagJitter, flagSeed))
	runner := engine.NewRunner(session, engine.NewStepScheduler(clock, flagStep))
	runner.OnTick = func(s *engine.Session) { bot.Step(s) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := runner.Run(ctx, nil); err != nil {
		fail("simulation interrupted: %v", err)
	}
	logger.Debug("simulation done", "chart", ch.ID, "elapsed", time.Since(start))

	printTally(ch.Name, session, tally)
}

// simulateOffsets returns the press offsets for the autoplayer.
func simulateOffsets(offset, jitter int64, seed uint64) engine.OffsetFunc {
	if jitter <= 0 {
		return engine.ConstantOffset(offset)
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	offsets := make(map[int]int64)
	return func(i int, _ core.Note) int64 {
		if ms, ok := offsets[i]; ok {
			return ms
		}
		ms := offset + rng.Int64N(2*jitter+1) - jitter
		offsets[i] = ms
		return ms
	}
}

func printVerdict(v core.Verdict) {
	fmt.Printf("%7d  lane %d  %-8s %+dms\n", v.TimeMs, v.Lane, v.Label, v.DiffMs)
}

func printTally(name string, s *engine.Session, t *engine.Tally) {
	fmt.Printf("%s\n\n", name)
	for _, row := range t.Rows() {
		fmt.Printf("  %-10s %5d\n", row.Label, row.Count)
	}
	fmt.Println()
	fmt.Printf("  %-10s %5d\n", "max combo", t.MaxCombo())
	fmt.Printf("  %-10s %+8.1fms\n", "mean", t.Mean())
	fmt.Printf("  %-10s %8.1fms\n", "deviation", t.StdDev())
	fmt.Printf("  %-10s %5d\n", "pool", s.Stats().UpperBound)
}
