package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"forest/board"
	"forest/communication"
	"forest/game"
	"forest/searcher/agent"
	"forest/utils"
)

type Controller interface {
	Run(ctx context.Context) error
}

// Player drives an agent over a communicator, one action per turn.
type Player struct {
	Communicator communication.Communicator
	Agent        agent.Agent
	FirstBudget  time.Duration
	TurnBudget   time.Duration
}

// NewPlayer creates a new Player instance.
func NewPlayer(comm communication.Communicator, a agent.Agent, firstBudget, turnBudget time.Duration) *Player {
	return &Player{
		Communicator: comm,
		Agent:        a,
		FirstBudget:  firstBudget,
		TurnBudget:   turnBudget,
	}
}

// Run reads the board, then answers every turn until the input ends. A board
// that cannot be read is fatal; a turn that cannot be read is answered with
// WAIT.
func (p *Player) Run(ctx context.Context) error {
	b, err := p.Communicator.ReadBoard()
	if err != nil {
		return fmt.Errorf("reading board: %w", err)
	}

	for turn := 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		t, err := p.Communicator.ReadTurn()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			log.Info().Msgf("input closed after %d turns", turn)
			return nil
		}

		action := game.Wait()
		if err != nil {
			log.Warn().Err(err).Msgf("turn %d: unreadable, waiting", turn)
		} else {
			action = p.TakeTurn(t, b, p.budget(turn))
		}

		if err := p.Communicator.SendAction(action); err != nil {
			return fmt.Errorf("sending action: %w", err)
		}
	}
}

func (p *Player) budget(turn int) time.Duration {
	if turn == 0 {
		return p.FirstBudget
	}
	return p.TurnBudget
}

// TakeTurn asks the agent for a move. A panicking agent or a move the turn
// does not allow yields WAIT.
func (p *Player) TakeTurn(t communication.Turn, b *board.Board, budget time.Duration) (action game.Action) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("day %d: agent panicked: %v", t.State.Day, r)
			action = game.Wait()
		}
	}()

	action, metric := p.Agent.FindMove(t.State, b, budget)
	if !allowed(t, b, action) {
		log.Warn().Msgf("day %d: agent chose illegal %v, waiting", t.State.Day, action)
		return game.Wait()
	}
	log.Info().Msgf("day %d: %v in %v (%d episodes, depth %d)",
		t.State.Day, action, time.Since(start).Round(time.Millisecond), metric.Episodes, metric.Depth)
	return action
}

// allowed checks the referee's move list when there is one, the rules
// otherwise.
func allowed(t communication.Turn, b *board.Board, action game.Action) bool {
	if len(t.Moves) > 0 {
		return utils.FindIndex(t.Moves, action) >= 0
	}
	return t.State.IsLegal(b, game.Me, action)
}
