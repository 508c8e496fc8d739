package searcher

import "forest/game"

// handle addresses a node inside one of the tree's arenas.
type handle int32

const none handle = -1

// stats accumulates backpropagated margins. Player-owned levels store
// me-minus-opponent, opponent-owned levels the negation.
type stats struct {
	visits int
	total  float64
	best   float64
}

func (s *stats) add(score float64) {
	if s.visits == 0 || score > s.best {
		s.best = score
	}
	s.visits++
	s.total += score
}

func (s stats) mean() float64 {
	if s.visits == 0 {
		return 0
	}
	return s.total / float64(s.visits)
}

// stateNode is a position where both sides are about to choose.
type stateNode struct {
	state    game.State
	parent   handle // Opponent node that led here, none at the root
	depth    int
	expanded bool
	children []handle // Player nodes
	stats
}

// playerNode is Me's choice at its parent state.
type playerNode struct {
	action   game.Action
	prior    float64
	parent   handle // State node
	expanded bool
	children []handle // Opponent nodes
	stats
}

// opponentNode is the opponent's reply to its parent player node. The state
// it leads to is created on the first visit and memoized.
type opponentNode struct {
	action game.Action
	prior  float64
	parent handle // Player node
	next   handle // State node
	stats
}

// tree holds the three node arenas. Nodes are only ever appended; links
// between levels are handles into the other arenas.
type tree struct {
	states    []stateNode
	players   []playerNode
	opponents []opponentNode
}

func newTree() *tree {
	return &tree{}
}

func (t *tree) reset() {
	t.states = t.states[:0]
	t.players = t.players[:0]
	t.opponents = t.opponents[:0]
}

func (t *tree) size() int {
	return len(t.states) + len(t.players) + len(t.opponents)
}

func (t *tree) addState(s game.State, parent handle, depth int) handle {
	t.states = append(t.states, stateNode{state: s, parent: parent, depth: depth})
	return handle(len(t.states) - 1)
}

func (t *tree) addPlayer(a game.Action, prior float64, parent handle) handle {
	t.players = append(t.players, playerNode{action: a, prior: prior, parent: parent})
	return handle(len(t.players) - 1)
}

func (t *tree) addOpponent(a game.Action, prior float64, parent handle) handle {
	t.opponents = append(t.opponents, opponentNode{action: a, prior: prior, parent: parent, next: none})
	return handle(len(t.opponents) - 1)
}

// find returns the state node holding s, if any.
func (t *tree) find(s game.State) (handle, bool) {
	for i := range t.states {
		if t.states[i].state == s {
			return handle(i), true
		}
	}
	return none, false
}

// backup adds the margin to every node from leaf up to and including root.
func (t *tree) backup(leaf, root handle, margin float64) {
	node := leaf
	for {
		sn := &t.states[node]
		sn.add(margin)
		if node == root || sn.parent == none {
			return
		}
		op := &t.opponents[sn.parent]
		op.add(-margin)
		pl := &t.players[op.parent]
		pl.add(margin)
		node = pl.parent
	}
}
