package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"

	"forest/communication"
	"forest/config"
	"forest/experiments"
	"forest/logger"
	"forest/meta"
	"forest/player"
	"forest/searcher"
	"forest/searcher/agent"
)

func main() {
	cfg := config.Load()

	mode := flag.String("mode", "play", "play, selfplay or throughput")
	agentKind := flag.String("agent", cfg.Agent, "mcts, sampling, beam or greedy")
	width := flag.Int("width", cfg.Width, "Actions kept per side at every search node")
	selection := flag.String("selection", cfg.Selection, "Root choice: mean or visits")
	seed := flag.Uint64("seed", cfg.Seed, "Seed of the search's random tie-breaks")
	firstBudget := flag.Duration("first-budget", cfg.FirstBudget, "Search time of the first turn")
	turnBudget := flag.Duration("turn-budget", cfg.TurnBudget, "Search time of every later turn")
	experiment := flag.String("experiment", "opponents", "Self-play experiment: width, selection, cutoff or opponents")
	games := flag.Int("games", meta.GAMES, "Self-play games per match up")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Self-play games played at once")
	out := flag.String("out", "experiments", "Directory for self-play records")
	flag.Parse()

	logger.Init(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *mode {
	case "play":
		err = play(ctx, *agentKind, *width, *selection, *seed, *firstBudget, *turnBudget)
	case "selfplay":
		err = selfplay(ctx, *experiment, experiments.Options{Dir: *out, Games: *games, Goroutines: *goroutines})
	case "throughput":
		_, err = experiments.RunThroughput(nil, experiments.ThroughputWidths, meta.EPISODES)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func play(ctx context.Context, kind string, width int, selection string, seed uint64, firstBudget, turnBudget time.Duration) error {
	sel, err := searcher.ParseSelection(selection)
	if err != nil {
		return err
	}
	a, err := agent.New(agent.Settings{Kind: kind, Width: width, Selection: sel, Seed: seed})
	if err != nil {
		return err
	}

	log.Info().Msgf("playing as %s agent, width %d, %s selection", kind, width, sel)
	stream := communication.NewStream(os.Stdin, os.Stdout)
	return player.NewPlayer(stream, a, firstBudget, turnBudget).Run(ctx)
}

func selfplay(ctx context.Context, experiment string, opts experiments.Options) error {
	run := map[string]func(context.Context, experiments.Options) ([]experiments.Results, error){
		"width":     experiments.RunWidthExperiment,
		"selection": experiments.RunSelectionExperiment,
		"cutoff":    experiments.RunCutoffExperiment,
		"opponents": experiments.RunOpponentExperiment,
	}[experiment]
	if run == nil {
		return fmt.Errorf("unknown experiment %q", experiment)
	}

	results, err := run(ctx, opts)
	if err != nil {
		return err
	}
	for i, r := range results {
		log.Info().Msgf("match up %d: %d wins, %d losses, %d draws for the baseline", i+1, r.Wins, r.Losses, r.Draws)
	}
	return nil
}
