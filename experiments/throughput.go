package experiments

import (
	"time"

	"github.com/rs/zerolog/log"

	"forest/board"
	"forest/engine"
	"forest/meta"
	"forest/searcher"
)

var ThroughputWidths = []int{2, 4, 8, 16, 32}

type Throughput struct {
	Width     int
	Episodes  int
	Nodes     int
	Depth     int
	Duration  time.Duration
	PerSecond float64
}

// RunThroughput times a fixed number of episodes from the opening position
// for every width.
func RunThroughput(b *board.Board, widths []int, episodes int) ([]Throughput, error) {
	if b == nil {
		b = board.Default()
	}
	if episodes <= 0 {
		episodes = meta.EPISODES
	}
	start, err := engine.Start(b, StartCells...)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("starting throughput experiment...")

	results := make([]Throughput, 0, len(widths))
	for _, width := range widths {
		mcts := searcher.NewMCTS(
			searcher.WithEpisodes(episodes),
			searcher.WithWidth(width),
			searcher.WithMetrics(),
		)
		metric := mcts.Search(start, b).Metric

		t := Throughput{
			Width:    width,
			Episodes: metric.Episodes,
			Nodes:    metric.Nodes,
			Depth:    metric.Depth,
			Duration: metric.Duration,
		}
		if metric.Duration > 0 {
			t.PerSecond = float64(metric.Episodes) / metric.Duration.Seconds()
		}
		results = append(results, t)
		log.Info().Msgf("width %d: %d episodes in %v (%.0f/s), %d nodes, depth %d",
			width, t.Episodes, t.Duration, t.PerSecond, t.Nodes, t.Depth)
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}
