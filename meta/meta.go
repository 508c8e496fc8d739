// meta/meta.go
package meta

import "time"

// FIRST_TURN_BUDGET is the search time for the first turn of a game.
const FIRST_TURN_BUDGET = 900 * time.Millisecond

// TURN_BUDGET is the search time for every later turn.
const TURN_BUDGET = 80 * time.Millisecond

// WIDTH is how many actions per side a search node keeps.
const WIDTH = 8

// BEAM_SIZE caps the number of states kept per level by the beam search.
const BEAM_SIZE = 64

// GO_ROUTINES defines the number of self-play games run at once.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for throughput runs.
const EPISODES = 2000

// GAMES defines the number of games per matchup.
const GAMES = 20
