package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"forest/board"
	"forest/engine"
	"forest/experiments/metrics"
	"forest/game"
	"forest/meta"
	"forest/searcher"
	"forest/searcher/agent"
)

const TimeBudget = 20 * time.Millisecond

// StartCells are Me's starting trees; the opponent's are mirrored.
var StartCells = []int{29, 33}

type Options struct {
	Dir        string // Where records are written, nothing is written when empty
	Games      int    // Per match up
	Goroutines int    // Games played at once
	Board      *board.Board
}

func (o Options) withDefaults() Options {
	if o.Games <= 0 {
		o.Games = meta.GAMES
	}
	if o.Goroutines <= 0 {
		o.Goroutines = meta.GO_ROUTINES
	}
	if o.Board == nil {
		o.Board = board.Default()
	}
	return o
}

// Results of a matchup from the first contender's side.
type Results struct {
	Wins, Losses, Draws int
}

func RunWidthExperiment(ctx context.Context, opts Options) ([]Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Width: meta.WIDTH, Budget: TimeBudget}
	widthConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: "mcts", Width: 2, Budget: TimeBudget},
		{ID: 2, Kind: "mcts", Width: 4, Budget: TimeBudget},
		{ID: 3, Kind: "mcts", Width: 16, Budget: TimeBudget},
		{ID: 4, Kind: "mcts", Width: 64, Budget: TimeBudget}, // Every legal action in practice
	}
	return runExperiment(ctx, "width", baseline, widthConfigs, opts)
}

func RunSelectionExperiment(ctx context.Context, opts Options) ([]Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Width: meta.WIDTH, Selection: searcher.BestMean.String(), Budget: TimeBudget}
	selectionConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: "mcts", Width: meta.WIDTH, Selection: searcher.MostVisits.String(), Budget: TimeBudget},
		{ID: 2, Kind: "sampling", Width: meta.WIDTH, Budget: TimeBudget},
	}
	return runExperiment(ctx, "selection", baseline, selectionConfigs, opts)
}

func RunCutoffExperiment(ctx context.Context, opts Options) ([]Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Width: meta.WIDTH, Budget: TimeBudget} // Episodes play out to the last day
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: "mcts", Width: meta.WIDTH, Budget: TimeBudget, Cutoff: 2},
		{ID: 2, Kind: "mcts", Width: meta.WIDTH, Budget: TimeBudget, Cutoff: 6},
		{ID: 3, Kind: "mcts", Width: meta.WIDTH, Budget: TimeBudget, Cutoff: 12},
	}
	return runExperiment(ctx, "cutoff", baseline, cutoffConfigs, opts)
}

// RunOpponentExperiment pits the search against the cheap agents.
func RunOpponentExperiment(ctx context.Context, opts Options) ([]Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Width: meta.WIDTH, Budget: TimeBudget}
	opponentConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: "greedy", Budget: TimeBudget},
		{ID: 2, Kind: "beam", Width: meta.WIDTH, Budget: TimeBudget},
	}
	return runExperiment(ctx, "opponents", baseline, opponentConfigs, opts)
}

// runExperiment pairs the baseline against every config.
func runExperiment(ctx context.Context, name string, baseline metrics.AgentConfig, configs []metrics.AgentConfig, opts Options) ([]Results, error) {
	matchUps := make([][2]metrics.AgentConfig, 0, len(configs))
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return RunMatchups(ctx, name, append(configs, baseline), matchUps, opts)
}

// RunMatchups plays opts.Games games per match up, several at once, and
// writes every game and move to opts.Dir. Contenders swap sides every other
// game.
func RunMatchups(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, opts Options) ([]Results, error) {
	opts = opts.withDefaults()
	log.Info().Msgf("starting %s experiment...", name)

	gameRecords := make([]metrics.GameRecord, len(matchUps)*opts.Games)
	moveRecords := make([][]metrics.MoveRecord, len(gameRecords))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Goroutines)
	for mi, matchUp := range matchUps {
		for i := 0; i < opts.Games; i++ {
			mi, i := mi, i
			config1, config2 := matchUp[0], matchUp[1]
			if i%2 == 1 {
				config1, config2 = config2, config1
			}
			slot := mi*opts.Games + i

			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				winner, gameMetric, moveMetrics, err := runGame(config1, config2, opts.Board)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				gameRecords[slot] = metrics.GameRecord{Agent1: config1.ID, Agent2: config2.ID, GameMetric: gameMetric}
				for _, mm := range moveMetrics {
					moveRecords[slot] = append(moveRecords[slot], metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
				}
				log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: agent %d",
					mi+1, len(matchUps), i+1, opts.Games, winnerID(winner, config1, config2))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", name)

	results := make([]Results, len(matchUps))
	for slot, record := range gameRecords {
		r := &results[slot/opts.Games]
		switch winnerID(record.Winner, metrics.AgentConfig{ID: record.Agent1}, metrics.AgentConfig{ID: record.Agent2}) {
		case -1:
			r.Draws++
		case matchUps[slot/opts.Games][0].ID:
			r.Wins++
		default:
			r.Losses++
		}
	}

	if opts.Dir == "" {
		return results, nil
	}
	if err := store(opts.Dir, name, configs, gameRecords, moveRecords); err != nil {
		return nil, err
	}
	return results, nil
}

// winnerID maps an engine winner to a contender, -1 on a draw.
func winnerID(winner string, config1, config2 metrics.AgentConfig) int {
	switch winner {
	case "me":
		return config1.ID
	case "opponent":
		return config2.ID
	}
	return -1
}

func store(dir, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords [][]metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	var flat []metrics.MoveRecord
	for _, records := range moveRecords {
		flat = append(flat, records...)
	}
	if err := writer.WriteMoveRecords(flat); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// runGame executes a single game between two fresh agents.
func runGame(config1, config2 metrics.AgentConfig, b *board.Board) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := createAgent(config1)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	agent2, err := createAgent(config2)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	start, err := engine.Start(b, StartCells...)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	e := engine.LocalEngine([2]agent.Agent{agent1, agent2}, b, start)
	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}

// budgeted searches for its own budget whatever the engine offers.
type budgeted struct {
	agent.Agent
	budget time.Duration
}

func (a budgeted) FindMove(state game.State, b *board.Board, _ time.Duration) (game.Action, metrics.SearchMetric) {
	return a.Agent.FindMove(state, b, a.budget)
}

func createAgent(config metrics.AgentConfig) (agent.Agent, error) {
	selection, err := searcher.ParseSelection(config.Selection)
	if err != nil {
		return nil, err
	}
	a, err := agent.New(agent.Settings{
		Kind:      config.Kind,
		Width:     config.Width,
		Cutoff:    config.Cutoff,
		Selection: selection,
		Seed:      config.Seed,
		Metrics:   true,
	})
	if err != nil || config.Budget <= 0 {
		return a, err
	}
	return budgeted{Agent: a, budget: config.Budget}, nil
}
