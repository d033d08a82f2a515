package model

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is wrapped by every notation parsing failure.
	ErrFormat = errors.New("invalid notation")

	// ErrInvalidMove is wrapped by every rejected MakeMove call.
	ErrInvalidMove = errors.New("invalid move")
)

// FormatError reports malformed square, move or board notation.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrFormat, e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// InvalidMoveError is returned by Game.MakeMove. The game is left untouched
// whenever one is returned.
type InvalidMoveError struct {
	Move   Move
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("move %s is not valid: %s", e.Move, e.Reason)
}

func (e *InvalidMoveError) Unwrap() error {
	return ErrInvalidMove
}
