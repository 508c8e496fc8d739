package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"forest/board"
	"forest/experiments/metrics"
	"forest/game"
	"forest/meta"
	"forest/searcher/agent"
)

const StartNutrients = 20

// Local plays two agents against each other on one board. The first agent
// plays Me, the second one sees every position swapped and plays Opponent.
type Local struct {
	Board       *board.Board
	State       game.State
	Agents      [2]agent.Agent
	FirstBudget time.Duration
	TurnBudget  time.Duration

	waiting [2]bool
}

func LocalEngine(agents [2]agent.Agent, b *board.Board, start game.State) *Local {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	return &Local{
		Board:       b,
		State:       start,
		Agents:      agents,
		FirstBudget: meta.FIRST_TURN_BUDGET,
		TurnBudget:  meta.TURN_BUDGET,
	}
}

// Start places a size 1 tree for Me on every given cell and one for the
// opponent on the mirrored cell. Both sides start with a day of sun.
func Start(b *board.Board, cells ...int) (game.State, error) {
	trees := make([]game.Tree, 0, 2*len(cells))
	taken := make(map[int]bool, 2*len(cells))
	for _, cell := range cells {
		if cell < 0 || cell >= board.NumCells {
			return game.State{}, fmt.Errorf("%w: cell %d", game.ErrInvalidParameters, cell)
		}
		c := board.CoordOf(cell)
		mirror, _ := board.IndexOf(board.Coord{X: -c.X, Y: -c.Y, Z: -c.Z})
		if mirror == cell || taken[cell] || taken[mirror] {
			return game.State{}, fmt.Errorf("%w: cell %d is taken", game.ErrInvalidParameters, cell)
		}
		if b.Richness(cell) == 0 || b.Richness(mirror) == 0 {
			return game.State{}, fmt.Errorf("%w: cell %d or %d is inactive", game.ErrInvalidParameters, cell, mirror)
		}
		taken[cell], taken[mirror] = true, true
		trees = append(trees,
			game.Tree{Cell: cell, Size: 1, Mine: true},
			game.Tree{Cell: mirror, Size: 1},
		)
	}

	s := game.State{Trees: game.NewTrees(trees...), Nutrients: StartNutrients}
	s.Sun = [2]int{s.SunIncome(b, game.Me), s.SunIncome(b, game.Opponent)}
	return s, nil
}

// Run executes the entire game loop until the last day.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{ID: uuid.New(), StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("game %s starting on day %d", gameMetric.ID, e.State.Day)

	turns := 0
	for e.State.Playable() && turns < MaxTurns {
		budget := e.TurnBudget
		if turns == 0 {
			budget = e.FirstBudget
		}

		day := e.State.Day
		mine, mineMetric := e.move(game.Me, budget)
		theirs, theirsMetric := e.move(game.Opponent, budget)
		moveMetrics = append(moveMetrics,
			metrics.MoveMetric{Day: day, Player: game.Me, Action: mine, SearchMetric: mineMetric},
			metrics.MoveMetric{Day: day, Player: game.Opponent, Action: theirs, SearchMetric: theirsMetric},
		)

		e.State = e.State.Apply(e.Board, mine, theirs)
		if e.State.Day != day {
			e.waiting = [2]bool{}
		} else {
			e.waiting[game.Me] = e.waiting[game.Me] || mine.IsWait()
			e.waiting[game.Opponent] = e.waiting[game.Opponent] || theirs.IsWait()
		}
		turns++
	}

	if !e.State.Terminal() {
		log.Warn().Msgf("game %s stopped after %d turns on day %d", gameMetric.ID, turns, e.State.Day)
	}

	winner := "draw"
	if p, ok := e.State.Winner(); ok {
		winner = p.String()
	}

	gameMetric.Winner = winner
	gameMetric.Points = e.State.Points
	gameMetric.Sun = e.State.Sun
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalTurns = turns

	log.Debug().Msgf("game %s over: %s with points %v", gameMetric.ID, winner, e.State.Points)
	return winner, gameMetric, moveMetrics
}

// move asks p's agent for an action. A side that waited sleeps until the
// next day, and illegal choices are played as WAIT.
func (e *Local) move(p game.Player, budget time.Duration) (game.Action, metrics.SearchMetric) {
	if e.waiting[p] {
		return game.Wait(), metrics.SearchMetric{}
	}

	view := e.State
	if p == game.Opponent {
		view = e.State.Swap()
	}
	view.OpponentWaiting = e.waiting[p.Other()]

	action, metric := e.Agents[p].FindMove(view, e.Board, budget)
	if !e.State.IsLegal(e.Board, p, action) {
		log.Warn().Msgf("day %d: %s chose illegal %v, waiting", e.State.Day, p, action)
		return game.Wait(), metric
	}
	return action, metric
}
