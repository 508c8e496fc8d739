package searcher

import "math"

// Hyperparameters for MCTS

var Exploration = 20 * math.Sqrt2 // UCB exploration constant

const UnvisitedWeight = 1e7 // Scales priors so unvisited children are tried first

const WinReward = 50.0 // Added to the margin of a finished game, negated for a loss

const MaxNodes = 200_000 // Nodes at which a timed search stops growing the tree

const NoCutoff = 0 // Episodes run to the last day
