package communication

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"forest/board"
	"forest/game"
)

func input(blocks ...[]string) io.Reader {
	var lines []string
	for _, b := range blocks {
		lines = append(lines, b...)
	}
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func boardBlock() []string {
	return append([]string{"37"}, board.Default().Rows()...)
}

var turnBlock = []string{
	"0", "20", "2 0", "2 0 0",
	"4", "20 1 0 0", "24 1 0 0", "29 1 1 0", "33 1 1 0",
	"3", "WAIT", "SEED 29 13", "SEED 33 34",
}

func TestReadBoard(t *testing.T) {
	t.Run("default board", func(t *testing.T) {
		s := NewStream(input(boardBlock()), io.Discard)
		b, err := s.ReadBoard()
		require.NoError(t, err)
		require.Equal(t, board.Default(), b)
	})

	t.Run("bad count", func(t *testing.T) {
		s := NewStream(input([]string{"38"}), io.Discard)
		_, err := s.ReadBoard()
		require.ErrorIs(t, err, ErrParse)
	})

	t.Run("bad row", func(t *testing.T) {
		rows := boardBlock()
		rows[5] = "4 3 x 0 0 0 0 0"
		_, err := NewStream(input(rows), io.Discard).ReadBoard()
		require.ErrorIs(t, err, board.ErrParse)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := NewStream(input(boardBlock()[:10]), io.Discard).ReadBoard()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestReadTurn(t *testing.T) {
	t.Run("state and moves", func(t *testing.T) {
		s := NewStream(input(turnBlock), io.Discard)
		turn, err := s.ReadTurn()
		require.NoError(t, err)
		require.Equal(t, turnBlock[:9], turn.State.Lines())
		require.Equal(t, []game.Action{game.Wait(), game.Seed(29, 13), game.Seed(33, 34)}, turn.Moves)

		_, err = s.ReadTurn()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("a bad move keeps the stream aligned", func(t *testing.T) {
		bad := append([]string{}, turnBlock...)
		bad[11] = "JUMP 29"
		s := NewStream(input(bad, turnBlock), io.Discard)

		_, err := s.ReadTurn()
		require.ErrorIs(t, err, ErrParse)
		require.ErrorIs(t, err, game.ErrUnknownInput)

		turn, err := s.ReadTurn()
		require.NoError(t, err)
		require.Len(t, turn.Moves, 3)
	})

	t.Run("a bad count keeps the stream aligned", func(t *testing.T) {
		for _, at := range []int{4, 9} {
			bad := append([]string{}, turnBlock...)
			bad[at] = "four"
			s := NewStream(input(bad, turnBlock), io.Discard)

			_, err := s.ReadTurn()
			require.ErrorIs(t, err, ErrParse, bad[at-1])

			turn, err := s.ReadTurn()
			require.NoError(t, err)
			require.Equal(t, turnBlock[:9], turn.State.Lines())
			require.Len(t, turn.Moves, 3)

			_, err = s.ReadTurn()
			require.ErrorIs(t, err, io.EOF)
		}
	})

	t.Run("a count past the limit", func(t *testing.T) {
		bad := append([]string{}, turnBlock...)
		bad[4] = "38"
		s := NewStream(input(bad, turnBlock), io.Discard)
		_, err := s.ReadTurn()
		require.ErrorIs(t, err, ErrParse)
		_, err = s.ReadTurn()
		require.NoError(t, err)
	})

	t.Run("input ends after a bad count", func(t *testing.T) {
		bad := append([]string{}, turnBlock...)
		bad[9] = "x"
		s := NewStream(input(bad), io.Discard)
		_, err := s.ReadTurn()
		require.ErrorIs(t, err, ErrParse)
		_, err = s.ReadTurn()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("a bad tree row", func(t *testing.T) {
		bad := append([]string{}, turnBlock...)
		bad[6] = "24 9 0 0"
		_, err := NewStream(input(bad), io.Discard).ReadTurn()
		require.ErrorIs(t, err, ErrParse)
		require.ErrorIs(t, err, game.ErrInvalidParameters)
	})

	t.Run("input ends inside a turn", func(t *testing.T) {
		_, err := NewStream(input(turnBlock[:6]), io.Discard).ReadTurn()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestWrite(t *testing.T) {
	t.Run("actions are flushed one per line", func(t *testing.T) {
		var out bytes.Buffer
		s := NewStream(strings.NewReader(""), &out)
		require.NoError(t, s.SendAction(game.Grow(3)))
		require.NoError(t, s.SendAction(game.Wait()))
		require.Equal(t, "GROW 3\nWAIT\n", out.String())
	})

	t.Run("written blocks read back", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBoard(&buf, board.DefaultWithInactive(4)))
		s := NewStream(input(turnBlock), io.Discard)
		turn, err := s.ReadTurn()
		require.NoError(t, err)
		require.NoError(t, WriteTurn(&buf, turn))

		reader := NewStream(&buf, io.Discard)
		b, err := reader.ReadBoard()
		require.NoError(t, err)
		require.Equal(t, 0, b.Richness(4))
		again, err := reader.ReadTurn()
		require.NoError(t, err)
		require.Equal(t, turn, again)
	})
}
