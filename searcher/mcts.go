package searcher

import (
	"cmp"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"forest/board"
	"forest/experiments/metrics"
	"forest/game"
	"forest/meta"
	"forest/utils"
)

type Option func(mcts *MCTS)

type MCTS struct {
	duration    time.Duration
	episodes    int
	width       int
	cutoff      int
	evaluate    game.EvaluateFn
	selection   Selection
	exploration float64
	reuse       bool
	maxNodes    int
	rng         *rand.Rand
	metrics     metrics.Collector

	tree  *tree
	root  handle
	board *board.Board
	depth int
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithWidth caps the number of actions expanded per side at every node.
func WithWidth(width int) Option {
	return func(m *MCTS) {
		if width > 0 {
			m.width = width
		}
	}
}

// WithCutoff stops episodes depth turns below the root and scores the
// position there with the evaluation function.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.EvaluateFn) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithSelection(selection Selection) Option {
	return func(m *MCTS) {
		m.selection = selection
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTreeReuse keeps the tree between searches and re-roots it when the
// next position was already explored.
func WithTreeReuse() Option {
	return func(m *MCTS) {
		m.reuse = true
	}
}

// WithMaxNodes caps the arenas of timed searches. A reused tree more than
// half full is dropped.
func WithMaxNodes(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.maxNodes = n
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		width:       meta.WIDTH,
		cutoff:      NoCutoff,
		evaluate:    game.Heuristic,
		selection:   BestMean,
		exploration: Exploration,
		maxNodes:    MaxNodes,
		rng:         rand.New(rand.NewSource(1)),
		metrics:     metrics.NewDummyCollector(),
		tree:        newTree(),
		root:        none,
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// SetDuration changes the time budget of the following searches. Searches
// limited by episodes ignore it.
func (m *MCTS) SetDuration(duration time.Duration) {
	if duration > 0 {
		m.duration = duration
	}
}

// Search explores from state and picks Me's action. Outside days 0..23 it
// returns WAIT without searching.
func (m *MCTS) Search(state game.State, b *board.Board) Result {
	if !state.Playable() {
		return Result{Action: game.Wait()}
	}

	deadline := time.Now().Add(m.duration)
	m.metrics.Start(m.width, m.cutoff)
	m.findRoot(state, b)
	m.depth = 0
	if m.episodes > 0 {
		m.iterate()
	} else {
		m.countdown(deadline)
	}
	metric := m.metrics.Complete(m.tree.size())

	result := Result{Depth: m.depth, Metric: metric}
	if child, ok := m.best(); ok {
		result.Action = m.tree.players[child].action
		result.Score = m.tree.players[child].mean()
	} else {
		result.Action = Fallback(state, b)
	}
	log.Debug().Msgf("day %d: %v after %d visits, depth %d, %d nodes",
		state.Day, result.Action, m.tree.states[m.root].visits, result.Depth, m.tree.size())
	return result
}

// Policy returns the visit count of every root action of the last search.
func (m *MCTS) Policy() map[game.Action]float64 {
	policy := make(map[game.Action]float64)
	if m.root == none {
		return policy
	}
	for _, child := range m.tree.states[m.root].children {
		pl := m.tree.players[child]
		policy[pl.action] = float64(pl.visits)
	}
	return policy
}

func (m *MCTS) iterate() {
	for i := 0; i < m.episodes; i++ {
		m.simulate()
		m.metrics.AddEpisode()
	}
}

// countdown runs whole episodes until the deadline or until the arenas hold
// maxNodes nodes. An episode in flight always completes.
func (m *MCTS) countdown(deadline time.Time) {
	for time.Now().Before(deadline) && m.tree.size() < m.maxNodes {
		m.simulate()
		m.metrics.AddEpisode()
	}
}

func (m *MCTS) findRoot(state game.State, b *board.Board) {
	if m.reuse && m.board == b && m.tree.size() <= m.maxNodes/2 {
		if root, ok := m.tree.find(state); ok {
			m.root = root
			m.metrics.SetTreeReset(false)
			return
		}
	}
	m.tree.reset()
	m.board = b
	m.root = m.tree.addState(state, none, 0)
	m.metrics.SetTreeReset(true)
}

// simulate walks state, player and opponent nodes down to the last day or
// the cutoff and backs the leaf's margin up to the root.
func (m *MCTS) simulate() {
	rootDepth := m.tree.states[m.root].depth
	node := m.root
	for {
		sn := &m.tree.states[node]
		depth := sn.depth - rootDepth
		if depth > m.depth {
			m.depth = depth
		}
		if sn.state.Terminal() || (m.cutoff > NoCutoff && depth >= m.cutoff) {
			break
		}
		player := m.selectPlayer(node)
		opponent := m.selectOpponent(player)
		node = m.next(opponent)
	}
	m.metrics.ObserveDepth(m.depth)
	m.tree.backup(node, m.root, m.margin(m.tree.states[node].state))
}

func (m *MCTS) selectPlayer(node handle) handle {
	if !m.tree.states[node].expanded {
		s := m.tree.states[node].state
		for _, c := range candidates(s, m.board, game.Me, m.width) {
			child := m.tree.addPlayer(c.action, c.prior, node)
			m.tree.states[node].children = append(m.tree.states[node].children, child)
		}
		m.tree.states[node].expanded = true
	}

	sn := &m.tree.states[node]
	policy := newUCB(m.exploration, sn.visits)
	scores := make([]float64, len(sn.children))
	for i, child := range sn.children {
		pl := &m.tree.players[child]
		scores[i] = policy.evaluate(pl.stats, pl.prior)
	}
	return sn.children[utils.RandomMax(m.rng, scores, less)]
}

func (m *MCTS) selectOpponent(player handle) handle {
	if !m.tree.players[player].expanded {
		s := m.tree.states[m.tree.players[player].parent].state
		for _, c := range candidates(s, m.board, game.Opponent, m.width) {
			child := m.tree.addOpponent(c.action, c.prior, player)
			m.tree.players[player].children = append(m.tree.players[player].children, child)
		}
		m.tree.players[player].expanded = true
	}

	pl := &m.tree.players[player]
	policy := newUCB(m.exploration, pl.visits)
	scores := make([]float64, len(pl.children))
	for i, child := range pl.children {
		op := &m.tree.opponents[child]
		scores[i] = policy.evaluate(op.stats, op.prior)
	}
	return pl.children[utils.RandomMax(m.rng, scores, less)]
}

// next returns the state an opponent node leads to, creating it once.
func (m *MCTS) next(opponent handle) handle {
	op := m.tree.opponents[opponent]
	if op.next != none {
		return op.next
	}
	pl := m.tree.players[op.parent]
	parent := m.tree.states[pl.parent]
	state := parent.state.Apply(m.board, pl.action, op.action)
	child := m.tree.addState(state, opponent, parent.depth+1)
	m.tree.opponents[opponent].next = child
	return child
}

// margin is Me's evaluation minus the opponent's. Finished games add the
// win reward for the winner.
func (m *MCTS) margin(s game.State) float64 {
	margin := float64(m.evaluate(s, m.board, game.Me) - m.evaluate(s, m.board, game.Opponent))
	if s.Terminal() {
		m.metrics.AddFullPlayout()
		margin += WinReward * float64(s.Outcome())
	}
	return margin
}

// best picks the root child to play. Unvisited children are never picked.
func (m *MCTS) best() (handle, bool) {
	best := none
	for _, child := range m.tree.states[m.root].children {
		if m.tree.players[child].visits == 0 {
			continue
		}
		if best == none || m.compare(m.tree.players[child], m.tree.players[best]) > 0 {
			best = child
		}
	}
	return best, best != none
}

// compare orders root children by the selection criterion, then by the other
// criterion, then prefers the action that sorts first.
func (m *MCTS) compare(x, y playerNode) int {
	byMean := cmp.Compare(x.mean(), y.mean())
	byVisits := cmp.Compare(x.visits, y.visits)
	if m.selection == MostVisits {
		byMean, byVisits = byVisits, byMean
	}
	if byMean != 0 {
		return byMean
	}
	if byVisits != 0 {
		return byVisits
	}
	return y.action.Compare(x.action)
}

func less(a, b float64) bool {
	return a < b
}
