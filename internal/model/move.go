package model

// Move relocates the piece on Start to End. Promotion is empty unless a pawn
// reaches the last rank.
type Move struct {
	Start     Position
	End       Position
	Promotion PieceType
}

// NewMove builds a move without consulting any board.
func NewMove(start, end Position, promotion PieceType) Move {
	return Move{Start: start, End: end, Promotion: promotion}
}

// ParseMove reads long algebraic notation: "e2e4", or "e7e8q" with a
// promotion letter from q, b, n, r.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, &FormatError{Input: s, Reason: "move must be two squares and an optional promotion letter, like e7e8q"}
	}
	start, err := ParsePosition(s[0:2])
	if err != nil {
		return Move{}, &FormatError{Input: s, Reason: "bad start square"}
	}
	end, err := ParsePosition(s[2:4])
	if err != nil {
		return Move{}, &FormatError{Input: s, Reason: "bad end square"}
	}
	m := Move{Start: start, End: end}
	if len(s) == 5 {
		promotion, ok := promotionFromLetter(lowerASCII(s[4]))
		if !ok {
			return Move{}, &FormatError{Input: s, Reason: "promotion must be one of q, b, n, r"}
		}
		m.Promotion = promotion
	}
	return m, nil
}

// MustParseMove is like ParseMove but panics on bad input.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Move) String() string {
	return m.Start.String() + m.End.String() + m.Promotion.letter()
}

func (m Move) MarshalText() ([]byte, error) {
	if !m.Start.Valid() || !m.End.Valid() {
		return nil, &FormatError{Input: m.String(), Reason: "square is off the board"}
	}
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Move) colDelta() int {
	return abs(m.End.Col - m.Start.Col)
}

func promotionFromLetter(c byte) (PieceType, bool) {
	switch c {
	case 'q':
		return Queen, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	case 'r':
		return Rook, true
	}
	return NoPieceType, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
