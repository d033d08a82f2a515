package model

// Outcome describes how the game stands for the side to move.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeCheckmate Outcome = "checkmate"
	OutcomeStalemate Outcome = "stalemate"
)

// Game pairs a board with the colour to move. It is not safe for concurrent
// use; callers serving several goroutines must serialize access per game.
type Game struct {
	board  *Board
	toMove Color
}

// NewGame starts from the standard opening with White to move.
func NewGame() *Game {
	return &Game{
		board:  NewStandardBoard(),
		toMove: White,
	}
}

// NewGameFromBoard wraps an existing board. The game takes ownership of it.
func NewGameFromBoard(board *Board, toMove Color) *Game {
	return &Game{board: board, toMove: toMove}
}

func (g *Game) Board() *Board {
	return g.board
}

// Turn returns the colour to move.
func (g *Game) Turn() Color {
	return g.toMove
}

func (g *Game) SetTurn(c Color) {
	g.toMove = c
}

// ValidMoves returns the legal moves of the piece on pos, or nil when the
// square is empty. The colour to move is not consulted.
func (g *Game) ValidMoves(pos Position) []Move {
	return g.filterLegalMoves(g.board.PseudoLegalMoves(pos))
}

// LegalMoves returns every legal move available to color.
func (g *Game) LegalMoves(color Color) []Move {
	var moves []Move
	for _, pl := range g.board.Placements() {
		if pl.Piece.Color == color {
			moves = append(moves, g.ValidMoves(pl.Position)...)
		}
	}
	return moves
}

func (g *Game) filterLegalMoves(pseudo []Move) []Move {
	var legal []Move
	for _, m := range pseudo {
		if g.board.IsMoveLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// MakeMove applies m for the side to move and passes the turn. On error the
// board and turn are unchanged and the error wraps ErrInvalidMove.
func (g *Game) MakeMove(m Move) error {
	piece, ok := g.board.Piece(m.Start)
	if !ok {
		return &InvalidMoveError{Move: m, Reason: "no piece at start square"}
	}
	if piece.Color != g.toMove {
		return &InvalidMoveError{Move: m, Reason: "not " + string(piece.Color) + "'s turn"}
	}
	if !containsMove(g.board.PseudoLegalMoves(m.Start), m) {
		return &InvalidMoveError{Move: m, Reason: "piece cannot move there"}
	}
	if !g.board.IsMoveLegal(m) {
		return &InvalidMoveError{Move: m, Reason: "move leaves king in check"}
	}
	g.board.MovePiece(m)
	g.switchTurn()
	return nil
}

func (g *Game) switchTurn() {
	g.toMove = g.toMove.Opponent()
}

// IsInCheck reports whether color's king is attacked. A side without a king
// is never in check.
func (g *Game) IsInCheck(color Color) bool {
	king, ok := g.board.KingPosition(color)
	return ok && g.board.IsAttacked(king, color)
}

// IsInCheckmate reports whether color is in check with no legal move.
func (g *Game) IsInCheckmate(color Color) bool {
	return g.IsInCheck(color) && g.isNoLegalMoves(color)
}

// IsInStalemate reports whether color is not in check but has no legal move.
func (g *Game) IsInStalemate(color Color) bool {
	return !g.IsInCheck(color) && g.isNoLegalMoves(color)
}

// Outcome reports checkmate or stalemate for the side to move.
func (g *Game) Outcome() Outcome {
	switch {
	case g.IsInCheckmate(g.toMove):
		return OutcomeCheckmate
	case g.IsInStalemate(g.toMove):
		return OutcomeStalemate
	}
	return OutcomeNone
}

// isNoLegalMoves stops at the first legal move found.
func (g *Game) isNoLegalMoves(color Color) bool {
	for _, pl := range g.board.Placements() {
		if pl.Piece.Color != color {
			continue
		}
		for _, m := range g.board.PseudoLegalMoves(pl.Position) {
			if g.board.IsMoveLegal(m) {
				return false
			}
		}
	}
	return true
}

func containsMove(moves []Move, m Move) bool {
	for _, candidate := range moves {
		if candidate == m {
			return true
		}
	}
	return false
}
