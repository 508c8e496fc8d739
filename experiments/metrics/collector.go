package metrics

import (
	"time"

	"github.com/google/uuid"

	"forest/game"
)

type SearchMetric struct {
	Width        int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	Depth        int
	Nodes        int
	FullPlayouts int // Episodes that reached the last day
	IsTreeReset  bool
}

type MoveMetric struct {
	Day    int
	Player game.Player
	Action game.Action
	SearchMetric
}

type GameMetric struct {
	ID         uuid.UUID
	Winner     string // "me", "opponent" or "draw" from the first agent's side
	Points     [2]int
	Sun        [2]int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalTurns int
}

type Collector interface {
	Start(width, cutoff int)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	ObserveDepth(depth int)
	Complete(nodes int) SearchMetric
}

// collector belongs to one search and is not safe for concurrent use.
type collector struct {
	width        int
	cutoff       int
	startTime    time.Time
	episodes     int
	fullPlayouts int
	depth        int
	isTreeReset  bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset = value
}

func (m *collector) Start(width, cutoff int) {
	m.startTime = time.Now()
	m.width = width
	m.cutoff = cutoff
	m.episodes = 0
	m.fullPlayouts = 0
	m.depth = 0
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) ObserveDepth(depth int) {
	m.depth = max(m.depth, depth)
}

func (m *collector) Complete(nodes int) SearchMetric {
	return SearchMetric{
		Width:        m.width,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
		Cutoff:       m.cutoff,
		Depth:        m.depth,
		Nodes:        nodes,
		IsTreeReset:  m.isTreeReset,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(width, cutoff int)         {}
func (m *dummyCollector) SetTreeReset(value bool)         {}
func (m *dummyCollector) AddFullPlayout()                 {}
func (m *dummyCollector) AddEpisode()                     {}
func (m *dummyCollector) ObserveDepth(depth int)          {}
func (m *dummyCollector) Complete(nodes int) SearchMetric { return SearchMetric{} }
