package model

import "fmt"

// Position is a square on the board. Row 1 is White's home rank and column 1
// is the a-file.
type Position struct {
	Row int
	Col int
}

// NewPosition returns the square at (row, col), rejecting coordinates that
// fall off the board.
func NewPosition(row, col int) (Position, error) {
	if !onBoard(row, col) {
		return Position{}, &FormatError{Input: fmt.Sprintf("(%d,%d)", row, col), Reason: "square is off the board"}
	}
	return Position{Row: row, Col: col}, nil
}

// ParsePosition reads two-character square notation such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, &FormatError{Input: s, Reason: "square must be a file and a rank, like e4"}
	}
	file, rank := lowerASCII(s[0]), s[1]
	if file < 'a' || file > 'h' {
		return Position{}, &FormatError{Input: s, Reason: "file must be a-h"}
	}
	if rank < '1' || rank > '8' {
		return Position{}, &FormatError{Input: s, Reason: "rank must be 1-8"}
	}
	return Position{Row: int(rank-'1') + 1, Col: int(file-'a') + 1}, nil
}

// MustParsePosition is like ParsePosition but panics on bad input.
func MustParsePosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col-1, p.Row)
}

// Valid reports whether p lies on the board.
func (p Position) Valid() bool {
	return onBoard(p.Row, p.Col)
}

func (p Position) offset(d direction) Position {
	return Position{Row: p.Row + d.row, Col: p.Col + d.col}
}

func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &FormatError{Input: fmt.Sprintf("(%d,%d)", p.Row, p.Col), Reason: "square is off the board"}
	}
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func onBoard(row, col int) bool {
	return row >= 1 && row <= 8 && col >= 1 && col <= 8
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
