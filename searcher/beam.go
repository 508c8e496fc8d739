package searcher

import (
	"container/heap"
	"time"

	"github.com/rs/zerolog/log"

	"forest/board"
	"forest/game"
	"forest/meta"
)

// OpponentModel fixes the opponent's reply during a beam search.
type OpponentModel int

const (
	OpponentWaits OpponentModel = iota
	OpponentGreedy
)

func (o OpponentModel) reply(s game.State, b *board.Board) game.Action {
	if o == OpponentGreedy {
		return game.Greedy(s, b, game.Opponent, s.LegalActions(b, game.Opponent))
	}
	return game.Wait()
}

type BeamOption func(beam *Beam)

// Beam is a breadth-first lookahead for Me against a fixed opponent reply.
// Shallower levels are always expanded first and each level expands at most
// size states, best first.
type Beam struct {
	duration time.Duration
	width    int
	size     int
	maxDepth int
	opponent OpponentModel
	evaluate game.EvaluateFn
}

func WithBeamDuration(duration time.Duration) BeamOption {
	return func(b *Beam) {
		if duration > 0 {
			b.duration = duration
		}
	}
}

func WithBeamWidth(width int) BeamOption {
	return func(b *Beam) {
		if width > 0 {
			b.width = width
		}
	}
}

func WithBeamSize(size int) BeamOption {
	return func(b *Beam) {
		if size > 0 {
			b.size = size
		}
	}
}

// WithMaxDepth stops expanding below the given number of turns.
func WithMaxDepth(depth int) BeamOption {
	return func(b *Beam) {
		if depth > 0 {
			b.maxDepth = depth
		}
	}
}

func WithOpponent(model OpponentModel) BeamOption {
	return func(b *Beam) {
		b.opponent = model
	}
}

func WithBeamEvaluationFn(evaluate game.EvaluateFn) BeamOption {
	return func(b *Beam) {
		if evaluate != nil {
			b.evaluate = evaluate
		}
	}
}

func NewBeam(options ...BeamOption) *Beam {
	b := &Beam{
		width:    meta.WIDTH,
		size:     meta.BEAM_SIZE,
		opponent: OpponentWaits,
		evaluate: game.Heuristic,
	}
	for _, option := range options {
		option(b)
	}
	if b.duration <= 0 && b.maxDepth <= 0 {
		panic("Must specify search duration or depth")
	}
	return b
}

type beamItem struct {
	state game.State
	first game.Action // Root action this line starts with
	depth int
	score float64
}

// beamQueue pops the shallowest item first, then the best scored.
type beamQueue []*beamItem

func (q beamQueue) Len() int { return len(q) }

func (q beamQueue) Less(i, j int) bool {
	if q[i].depth != q[j].depth {
		return q[i].depth < q[j].depth
	}
	return q[i].score > q[j].score
}

func (q beamQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *beamQueue) Push(x any) { *q = append(*q, x.(*beamItem)) }

func (q *beamQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Search returns the deepest level reached and the first action of the best
// line on that level.
func (bs *Beam) Search(state game.State, b *board.Board) (int, game.Action) {
	if !state.Playable() {
		return 0, game.Wait()
	}

	var deadline time.Time
	if bs.duration > 0 {
		deadline = time.Now().Add(bs.duration)
	}
	expanded := map[int]int{}
	var best []*beamItem // Best item per depth

	queue := &beamQueue{{state: state}}
	for queue.Len() > 0 {
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			break
		}
		item := heap.Pop(queue).(*beamItem)
		if item.state.Terminal() || expanded[item.depth] >= bs.size {
			continue
		}
		if bs.maxDepth > 0 && item.depth >= bs.maxDepth {
			continue
		}
		expanded[item.depth]++

		theirs := bs.opponent.reply(item.state, b)
		for _, c := range candidates(item.state, b, game.Me, bs.width) {
			next := item.state.Apply(b, c.action, theirs)
			child := &beamItem{state: next, first: item.first, depth: item.depth + 1, score: bs.score(next, b)}
			if item.depth == 0 {
				child.first = c.action
			}
			heap.Push(queue, child)

			if len(best) < child.depth {
				best = append(best, child)
			} else if child.score > best[child.depth-1].score {
				best[child.depth-1] = child
			}
		}
	}

	if len(best) == 0 {
		return 0, Fallback(state, b)
	}
	deepest := best[len(best)-1]
	log.Debug().Msgf("beam: depth %d, %v scoring %.1f", deepest.depth, deepest.first, deepest.score)
	return deepest.depth, deepest.first
}

func (bs *Beam) score(s game.State, b *board.Board) float64 {
	margin := float64(bs.evaluate(s, b, game.Me) - bs.evaluate(s, b, game.Opponent))
	if s.Terminal() {
		margin += WinReward * float64(s.Outcome())
	}
	return margin
}
