package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"forest/game"
)

func TestCollector(t *testing.T) {
	t.Run("counts a search", func(t *testing.T) {
		c := NewCollector()
		c.Start(8, 3)
		c.SetTreeReset(true)
		for i := 0; i < 5; i++ {
			c.AddEpisode()
		}
		c.AddFullPlayout()
		c.ObserveDepth(4)
		c.ObserveDepth(2)

		m := c.Complete(42)
		require.Equal(t, 8, m.Width)
		require.Equal(t, 3, m.Cutoff)
		require.Equal(t, 5, m.Episodes)
		require.Equal(t, 1, m.FullPlayouts)
		require.Equal(t, 4, m.Depth)
		require.Equal(t, 42, m.Nodes)
		require.True(t, m.IsTreeReset)
	})

	t.Run("start clears counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(8, 0)
		c.AddEpisode()
		c.ObserveDepth(3)
		c.Start(4, 0)

		m := c.Complete(0)
		require.Zero(t, m.Episodes)
		require.Zero(t, m.Depth)
		require.Equal(t, 4, m.Width)
	})

	t.Run("dummy", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(8, 0)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete(10))
	})
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "matchups")
	require.NoError(t, err)

	id := uuid.New()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Kind: "mcts", Width: 8, Selection: "mean", Seed: 7, Budget: 80 * time.Millisecond},
	}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		Agent1: 1,
		Agent2: 2,
		GameMetric: GameMetric{
			ID:         id,
			Winner:     "me",
			Points:     [2]int{70, 52},
			Sun:        [2]int{3, 9},
			StartTime:  start,
			EndTime:    start.Add(time.Second),
			Duration:   time.Second,
			TotalTurns: 61,
		},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: id,
		MoveMetric: MoveMetric{
			Day:          3,
			Player:       game.Opponent,
			Action:       game.Seed(29, 13),
			SearchMetric: SearchMetric{Duration: time.Millisecond, Episodes: 900, Depth: 6, Nodes: 4000},
		},
	}}))

	configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{
		{"id", "kind", "width", "selection", "seed", "budget"},
		{"1", "mcts", "8", "mean", "7", "80ms"},
	}, configs)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, []string{
		id.String(), "1", "2", "me", "70", "52", "3", "9", "61",
		"2024-05-01T12:00:00Z", "2024-05-01T12:00:01Z", "1s",
	}, games[1])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, []string{id.String(), "3", "opponent", "SEED 29 13", "1ms", "900", "0", "6", "4000", "false"}, moves[1])
}
