package game

import "errors"

var (
	// ErrInvalidParameters is returned when a known keyword has the wrong arguments.
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrUnknownInput is returned for text that is not an action or tree row.
	ErrUnknownInput = errors.New("unknown input")
	// ErrInvalidIndex is the panic value for references to empty cells.
	ErrInvalidIndex = errors.New("invalid tree index")
)
