package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"forest/experiments/metrics"
)

func TestRunMatchups(t *testing.T) {
	greedy := metrics.AgentConfig{ID: 1, Kind: "greedy"}
	beam := metrics.AgentConfig{ID: 2, Kind: "beam", Width: 4, Budget: time.Millisecond}

	t.Run("plays and stores every game", func(t *testing.T) {
		dir := t.TempDir()
		opts := Options{Dir: dir, Games: 2, Goroutines: 2}
		results, err := RunMatchups(context.Background(), "test", []metrics.AgentConfig{greedy, beam},
			[][2]metrics.AgentConfig{{greedy, beam}, {greedy, greedy}}, opts)
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			require.Equal(t, 2, r.Wins+r.Losses+r.Draws)
		}

		runs, err := os.ReadDir(filepath.Join(dir, "test"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(dir, "test", runs[0].Name(), file))
		}
	})

	t.Run("unknown agent", func(t *testing.T) {
		bad := metrics.AgentConfig{ID: 3, Kind: "oracle"}
		_, err := RunMatchups(context.Background(), "test", nil, [][2]metrics.AgentConfig{{greedy, bad}}, Options{Games: 1})
		require.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := RunMatchups(ctx, "test", nil, [][2]metrics.AgentConfig{{greedy, greedy}}, Options{Games: 1})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestWinnerID(t *testing.T) {
	a, b := metrics.AgentConfig{ID: 4}, metrics.AgentConfig{ID: 7}
	require.Equal(t, 4, winnerID("me", a, b))
	require.Equal(t, 7, winnerID("opponent", a, b))
	require.Equal(t, -1, winnerID("draw", a, b))
}

func TestRunThroughput(t *testing.T) {
	results, err := RunThroughput(nil, []int{2, 8}, 50)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i, width := range []int{2, 8} {
		require.Equal(t, width, results[i].Width)
		require.Equal(t, 50, results[i].Episodes)
		require.Greater(t, results[i].Nodes, 1)
	}
}
