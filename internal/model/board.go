package model

type PieceType string

const (
	NoPieceType PieceType = ""
	King        PieceType = "king"
	Queen       PieceType = "queen"
	Rook        PieceType = "rook"
	Bishop      PieceType = "bishop"
	Knight      PieceType = "knight"
	Pawn        PieceType = "pawn"
)

// letter is the lowercase notation letter used for promotions and the text
// board. Pawns use "p" and the empty type yields "".
func (p PieceType) letter() string {
	switch p {
	case King:
		return "k"
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Pawn:
		return "p"
	}
	return ""
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// homeRow is the back rank of c.
func (c Color) homeRow() int {
	if c == Black {
		return 8
	}
	return 1
}

// forward is the row step a pawn of c advances by.
func (c Color) forward() int {
	if c == Black {
		return -1
	}
	return 1
}

// Piece carries no identity beyond its colour and type. The zero Piece marks
// an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Placement pairs an occupied square with its piece.
type Placement struct {
	Position Position `json:"position"`
	Piece    Piece    `json:"piece"`
}

// Board is an 8x8 grid plus the ordered history of every move applied to it.
// The history decides castling and en passant eligibility; movedFrom caches
// which squares have ever been the start of a move so those lookups are O(1).
type Board struct {
	squares   [8][8]Piece
	history   []Move
	movedFrom [8][8]bool
}

// NewBoard returns an empty board with no history.
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns a board in the standard opening position.
func NewStandardBoard() *Board {
	b := NewBoard()
	b.ResetBoard()
	return b
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// ResetBoard restores the standard opening position and clears the history.
func (b *Board) ResetBoard() {
	*b = Board{}
	for i, t := range backRank {
		b.squares[0][i] = Piece{Type: t, Color: White}
		b.squares[1][i] = Piece{Type: Pawn, Color: White}
		b.squares[6][i] = Piece{Type: Pawn, Color: Black}
		b.squares[7][i] = Piece{Type: t, Color: Black}
	}
}

// Piece returns the piece on pos and whether the square is occupied.
func (b *Board) Piece(pos Position) (Piece, bool) {
	if !pos.Valid() {
		return Piece{}, false
	}
	p := b.squares[pos.Row-1][pos.Col-1]
	return p, !p.IsEmpty()
}

func (b *Board) at(pos Position) Piece {
	return b.squares[pos.Row-1][pos.Col-1]
}

// AddPiece places p on pos, replacing whatever stood there.
func (b *Board) AddPiece(pos Position, p Piece) {
	b.squares[pos.Row-1][pos.Col-1] = p
}

// RemovePiece empties pos.
func (b *Board) RemovePiece(pos Position) {
	b.squares[pos.Row-1][pos.Col-1] = Piece{}
}

func (b *Board) isEmpty(pos Position) bool {
	return b.at(pos).IsEmpty()
}

// History returns a copy of every move applied so far, oldest first.
func (b *Board) History() []Move {
	out := make([]Move, len(b.history))
	copy(out, b.history)
	return out
}

// LastMove returns the most recent history entry.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}

// HasMoved reports whether any recorded move started on pos.
func (b *Board) HasMoved(pos Position) bool {
	return b.movedFrom[pos.Row-1][pos.Col-1]
}

func (b *Board) record(m Move) {
	b.history = append(b.history, m)
	b.movedFrom[m.Start.Row-1][m.Start.Col-1] = true
}

// MovePiece applies m without any legality check. Promotion swaps the piece
// type, a two-file king move also relocates the rook (recorded as its own
// history entry, before the king's), and a diagonal pawn move onto an empty
// square removes the pawn it passed.
func (b *Board) MovePiece(m Move) {
	piece := b.at(m.Start)
	switch {
	case m.Promotion != NoPieceType:
		piece = Piece{Type: m.Promotion, Color: piece.Color}
	case piece.Type == King && m.colDelta() == 2:
		b.castleRook(m)
	case piece.Type == Pawn && m.Start.Col != m.End.Col && b.isEmpty(m.End):
		b.RemovePiece(Position{Row: m.Start.Row, Col: m.End.Col})
	}
	b.RemovePiece(m.Start)
	b.AddPiece(m.End, piece)
	b.record(m)
}

func (b *Board) castleRook(king Move) {
	row := king.End.Row
	rook := Move{Start: Position{Row: row, Col: 1}, End: Position{Row: row, Col: 4}}
	if king.End.Col == 7 {
		rook = Move{Start: Position{Row: row, Col: 8}, End: Position{Row: row, Col: 6}}
	}
	b.MovePiece(rook)
}

// Clone returns an independent copy. The copy keeps the history so the
// castling and en passant state it implies carries over.
func (b *Board) Clone() *Board {
	c := &Board{squares: b.squares, movedFrom: b.movedFrom}
	c.history = make([]Move, len(b.history), len(b.history)+2)
	copy(c.history, b.history)
	return c
}

// Equal compares piece placement only. Two boards with the same pieces but
// different histories are equal even though their castling and en passant
// rights may differ.
func (b *Board) Equal(other *Board) bool {
	return other != nil && b.squares == other.squares
}

// Placements lists every occupied square from a1 to h8, rank by rank.
func (b *Board) Placements() []Placement {
	var out []Placement
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			pos := Position{Row: row, Col: col}
			if p := b.at(pos); !p.IsEmpty() {
				out = append(out, Placement{Position: pos, Piece: p})
			}
		}
	}
	return out
}

// KingPosition finds the king of color c.
func (b *Board) KingPosition(c Color) (Position, bool) {
	for _, pl := range b.Placements() {
		if pl.Piece.Type == King && pl.Piece.Color == c {
			return pl.Position, true
		}
	}
	return Position{}, false
}

// PseudoLegalMoves returns the moves the piece on pos can make by geometry
// alone, without regard to its own king's safety.
func (b *Board) PseudoLegalMoves(pos Position) []Move {
	p, ok := b.Piece(pos)
	if !ok {
		return nil
	}
	return RuleFor(p.Type).Moves(b, pos)
}

// IsAttacked reports whether any piece not of color threatened attacks target.
func (b *Board) IsAttacked(target Position, threatened Color) bool {
	return len(b.Attackers(target, threatened)) > 0
}

// Attackers lists the squares of enemy pieces attacking target.
func (b *Board) Attackers(target Position, threatened Color) []Position {
	var out []Position
	for _, pl := range b.Placements() {
		if pl.Piece.Color == threatened {
			continue
		}
		for _, sq := range RuleFor(pl.Piece.Type).Attacks(b, pl.Position) {
			if sq == target {
				out = append(out, pl.Position)
				break
			}
		}
	}
	return out
}

// IsMoveLegal reports whether m, applied to this board, leaves the mover's
// king unattacked. Castling additionally requires the king's start, crossing
// and destination squares to be safe before the move.
func (b *Board) IsMoveLegal(m Move) bool {
	piece, ok := b.Piece(m.Start)
	if !ok {
		return false
	}
	if piece.Type == King && m.colDelta() == 2 && !b.isCastleSafe(piece.Color, m) {
		return false
	}
	next := b.Clone()
	next.MovePiece(m)
	king, ok := next.KingPosition(piece.Color)
	return !ok || !next.IsAttacked(king, piece.Color)
}

func (b *Board) isCastleSafe(c Color, m Move) bool {
	crossing := Position{Row: m.Start.Row, Col: (m.Start.Col + m.End.Col) / 2}
	for _, sq := range []Position{m.Start, crossing, m.End} {
		if b.IsAttacked(sq, c) {
			return false
		}
	}
	return true
}
