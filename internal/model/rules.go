package model

// MovementRule generates the pseudo-legal moves of one piece type. Neither
// method looks at whether the mover's own king ends up attacked; that check
// belongs to Board.IsMoveLegal, which itself relies on Attacks.
type MovementRule interface {
	// Moves lists the destinations reachable by geometry from pos, skipping
	// squares held by a piece of the mover's colour.
	Moves(b *Board, pos Position) []Move
	// Attacks lists the squares the piece on pos threatens.
	Attacks(b *Board, pos Position) []Position
}

type direction struct {
	row, col int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {1, 2}, {-1, 2}, {-2, -1}, {-2, 1}, {-1, -2}, {1, -2}}
)

var rules = map[PieceType]MovementRule{
	King:   kingRule{},
	Queen:  rayRule{dirs: queenDirs, slide: true},
	Rook:   rayRule{dirs: rookDirs, slide: true},
	Bishop: rayRule{dirs: bishopDirs, slide: true},
	Knight: rayRule{dirs: knightDirs},
	Pawn:   pawnRule{},
}

// RuleFor returns the movement rule of t. Unknown types get a rule that
// never moves.
func RuleFor(t PieceType) MovementRule {
	if r, ok := rules[t]; ok {
		return r
	}
	return noRule{}
}

// rayRule walks each direction from the origin. Sliding pieces keep going
// until the first occupied square; stepping pieces stop after one square. An
// enemy on the stopping square is a capture, a friend blocks it.
type rayRule struct {
	dirs  []direction
	slide bool
}

func (r rayRule) Moves(b *Board, pos Position) []Move {
	var moves []Move
	for _, sq := range r.Attacks(b, pos) {
		moves = append(moves, Move{Start: pos, End: sq})
	}
	return moves
}

func (r rayRule) Attacks(b *Board, pos Position) []Position {
	color := b.at(pos).Color
	var out []Position
	for _, d := range r.dirs {
		for target := pos.offset(d); target.Valid(); target = target.offset(d) {
			occupant := b.at(target)
			if occupant.IsEmpty() || occupant.Color != color {
				out = append(out, target)
			}
			if !r.slide || !occupant.IsEmpty() {
				break
			}
		}
	}
	return out
}

type kingRule struct{}

var kingSteps = rayRule{dirs: queenDirs}

func (kingRule) Moves(b *Board, pos Position) []Move {
	return append(kingSteps.Moves(b, pos), castleMoves(b, pos)...)
}

func (kingRule) Attacks(b *Board, pos Position) []Position {
	return kingSteps.Attacks(b, pos)
}

// castleMoves offers a two-file king move towards each rook when neither
// piece has ever left its home square and nothing stands between them.
// Whether the king passes through check is left to Board.IsMoveLegal.
func castleMoves(b *Board, pos Position) []Move {
	king := b.at(pos)
	row := king.Color.homeRow()
	home := Position{Row: row, Col: 5}
	if pos != home || b.HasMoved(home) {
		return nil
	}
	var moves []Move
	sides := []struct {
		rookCol, kingTo int
		between         []int
	}{
		{rookCol: 8, kingTo: 7, between: []int{6, 7}},
		{rookCol: 1, kingTo: 3, between: []int{2, 3, 4}},
	}
	for _, side := range sides {
		corner := Position{Row: row, Col: side.rookCol}
		if b.HasMoved(corner) || b.at(corner) != (Piece{Type: Rook, Color: king.Color}) {
			continue
		}
		clear := true
		for _, col := range side.between {
			if !b.isEmpty(Position{Row: row, Col: col}) {
				clear = false
				break
			}
		}
		if clear {
			moves = append(moves, Move{Start: pos, End: Position{Row: row, Col: side.kingTo}})
		}
	}
	return moves
}

type pawnRule struct{}

var promotions = []PieceType{Queen, Bishop, Rook, Knight}

func (pawnRule) Moves(b *Board, pos Position) []Move {
	color := b.at(pos).Color
	dir := color.forward()
	var moves []Move

	one := Position{Row: pos.Row + dir, Col: pos.Col}
	if one.Valid() && b.isEmpty(one) {
		moves = appendPawnMove(moves, pos, one)
		two := Position{Row: pos.Row + 2*dir, Col: pos.Col}
		if pos.Row == pawnStartRow(color) && b.isEmpty(two) {
			moves = append(moves, Move{Start: pos, End: two})
		}
	}

	for _, side := range []int{-1, 1} {
		target := Position{Row: pos.Row + dir, Col: pos.Col + side}
		if !target.Valid() {
			continue
		}
		if occupant := b.at(target); !occupant.IsEmpty() && occupant.Color != color {
			moves = appendPawnMove(moves, pos, target)
		} else if occupant.IsEmpty() && canCaptureEnPassant(b, pos, side) {
			moves = append(moves, Move{Start: pos, End: target})
		}
	}
	return moves
}

func (pawnRule) Attacks(b *Board, pos Position) []Position {
	dir := b.at(pos).Color.forward()
	var out []Position
	for _, side := range []int{-1, 1} {
		if target := (Position{Row: pos.Row + dir, Col: pos.Col + side}); target.Valid() {
			out = append(out, target)
		}
	}
	return out
}

// canCaptureEnPassant reports whether the enemy pawn beside pos arrived there
// by a double step on the very last move.
func canCaptureEnPassant(b *Board, pos Position, side int) bool {
	color := b.at(pos).Color
	beside := Position{Row: pos.Row, Col: pos.Col + side}
	if b.at(beside) != (Piece{Type: Pawn, Color: color.Opponent()}) {
		return false
	}
	last, ok := b.LastMove()
	if !ok {
		return false
	}
	from := Position{Row: beside.Row + 2*color.forward(), Col: beside.Col}
	return last.End == beside && last.Start == from
}

func pawnStartRow(c Color) int {
	if c == Black {
		return 7
	}
	return 2
}

// appendPawnMove expands a move onto the last rank into one move per
// promotion choice. There is no plain variant.
func appendPawnMove(moves []Move, from, to Position) []Move {
	if to.Row != 1 && to.Row != 8 {
		return append(moves, Move{Start: from, End: to})
	}
	for _, t := range promotions {
		moves = append(moves, Move{Start: from, End: to, Promotion: t})
	}
	return moves
}

type noRule struct{}

func (noRule) Moves(*Board, Position) []Move        { return nil }
func (noRule) Attacks(*Board, Position) []Position { return nil }
