package communication

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"forest/board"
	"forest/game"
)

var ErrParse = errors.New("malformed input")

// Turn is one decoded turn: the position and the moves the referee allows.
type Turn struct {
	State game.State
	Moves []game.Action
}

// Communicator is an interface that abstracts the communication mechanism.
type Communicator interface {
	ReadBoard() (*board.Board, error)
	ReadTurn() (Turn, error)
	SendAction(action game.Action) error
}

// Stream speaks the line protocol: a board block once, then one turn block
// per turn on the input and one action line per turn on the output.
type Stream struct {
	scanner *bufio.Scanner
	out     *bufio.Writer
	pending []string // Lines given back by unread
}

func NewStream(r io.Reader, w io.Writer) *Stream {
	return &Stream{scanner: bufio.NewScanner(r), out: bufio.NewWriter(w)}
}

func (s *Stream) line() (string, error) {
	if n := len(s.pending); n > 0 {
		l := s.pending[n-1]
		s.pending = s.pending[:n-1]
		return l, nil
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

// lines reads n lines. Running out of input part way is io.ErrUnexpectedEOF.
func (s *Stream) lines(n int) ([]string, error) {
	out := make([]string, 0, n)
	for len(out) < n {
		l, err := s.line()
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *Stream) unread(l string) {
	s.pending = append(s.pending, l)
}

// section reads a count line and the lines it announces. When the count is
// malformed the lines that look like they belong to the section are skipped
// and ErrParse is returned, leaving the stream at the next section.
func (s *Stream) section(what string, limit int, belongs func(string) bool) ([]string, error) {
	l, err := s.line()
	if err != nil {
		return nil, unexpected(err)
	}
	if n, err := strconv.Atoi(l); err == nil && n >= 0 && n <= limit {
		return s.lines(n)
	}
	for {
		next, err := s.line()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if !belongs(next) {
			s.unread(next)
			break
		}
	}
	return nil, fmt.Errorf("%w: %s count %q", ErrParse, what, l)
}

func isTreeRow(l string) bool {
	return len(strings.Fields(l)) == 4
}

func isMoveLine(l string) bool {
	return l != "" && unicode.IsLetter(rune(l[0]))
}

func (s *Stream) count(what string, limit int) (int, error) {
	l, err := s.line()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(l)
	if err != nil || n < 0 || n > limit {
		return 0, fmt.Errorf("%w: %s count %q", ErrParse, what, l)
	}
	return n, nil
}

// ReadBoard reads the cell count and one row per cell.
func (s *Stream) ReadBoard() (*board.Board, error) {
	n, err := s.count("cell", board.NumCells)
	if err != nil {
		return nil, err
	}
	rows, err := s.lines(n)
	if err != nil {
		return nil, err
	}
	return board.Parse(rows)
}

// ReadTurn reads one turn block. A malformed row or count is reported after
// the whole block is consumed, so the next turn can still be read. io.EOF
// means the game is over.
func (s *Stream) ReadTurn() (Turn, error) {
	first, err := s.line()
	if err != nil {
		return Turn{}, err
	}
	rest, err := s.lines(3)
	if err != nil {
		return Turn{}, err
	}
	rows, treeErr := s.section("tree", game.NumCells, isTreeRow)
	if treeErr != nil && !errors.Is(treeErr, ErrParse) {
		return Turn{}, treeErr
	}
	moves, moveErr := s.section("move", 1<<10, isMoveLine)
	if moveErr != nil && !errors.Is(moveErr, ErrParse) {
		return Turn{}, moveErr
	}
	if treeErr != nil {
		return Turn{}, treeErr
	}
	if moveErr != nil {
		return Turn{}, moveErr
	}

	block := append([]string{first}, rest...)
	block = append(block, strconv.Itoa(len(rows)))
	block = append(block, rows...)
	state, err := game.ParseState(block)
	if err != nil {
		return Turn{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	turn := Turn{State: state, Moves: make([]game.Action, 0, len(moves))}
	for _, text := range moves {
		a, err := game.ParseAction(text)
		if err != nil {
			return Turn{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		turn.Moves = append(turn.Moves, a)
	}
	return turn, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// SendAction writes the action line and flushes it.
func (s *Stream) SendAction(action game.Action) error {
	if _, err := fmt.Fprintln(s.out, action); err != nil {
		return err
	}
	return s.out.Flush()
}

// WriteBoard and WriteTurn produce the input side of the protocol, for
// driving a bot from a local game.
func WriteBoard(w io.Writer, b *board.Board) error {
	lines := append([]string{strconv.Itoa(board.NumCells)}, b.Rows()...)
	return writeLines(w, lines)
}

func WriteTurn(w io.Writer, turn Turn) error {
	lines := turn.State.Lines()
	lines = append(lines, strconv.Itoa(len(turn.Moves)))
	for _, a := range turn.Moves {
		lines = append(lines, a.String())
	}
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
