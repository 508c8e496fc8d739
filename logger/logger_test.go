package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Run("writes to the given writer at the given level", func(t *testing.T) {
		var buf bytes.Buffer
		Init(&buf, "warn")
		log.Info().Msg("hidden")
		log.Warn().Msgf("turn %d", 3)

		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "turn 3")
		require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("unknown level means info", func(t *testing.T) {
		var buf bytes.Buffer
		Init(&buf, "loud")
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		log.Debug().Msg("hidden")
		require.Empty(t, buf.String())
	})
}
