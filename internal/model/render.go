package model

import (
	"fmt"
	"strings"
)

// String prints the board as eight lines from rank 8 down to rank 1. White
// pieces are uppercase, black lowercase and empty squares '.'. ParseBoard
// reads the same format back; the history is not part of it.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 8; row >= 1; row-- {
		for col := 1; col <= 8; col++ {
			sb.WriteByte(pieceChar(b.at(Position{Row: row, Col: col})))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from the output of Board.String. Blank lines and
// surrounding spaces are ignored.
func ParseBoard(s string) (*Board, error) {
	var ranks []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ranks = append(ranks, line)
		}
	}
	if len(ranks) != 8 {
		return nil, &FormatError{Input: s, Reason: fmt.Sprintf("board needs 8 ranks, got %d", len(ranks))}
	}
	b := NewBoard()
	for i, rank := range ranks {
		if len(rank) != 8 {
			return nil, &FormatError{Input: rank, Reason: "rank needs 8 squares"}
		}
		row := 8 - i
		for j := 0; j < 8; j++ {
			p, ok := pieceFromChar(rank[j])
			if !ok {
				return nil, &FormatError{Input: rank, Reason: fmt.Sprintf("unknown piece %q", rank[j])}
			}
			b.squares[row-1][j] = p
		}
	}
	return b, nil
}

func pieceChar(p Piece) byte {
	if p.IsEmpty() {
		return '.'
	}
	l := p.Type.letter()
	if l == "" {
		return '?'
	}
	c := l[0]
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

func pieceFromChar(c byte) (Piece, bool) {
	if c == '.' {
		return Piece{}, true
	}
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
	}
	var t PieceType
	switch lowerASCII(c) {
	case 'k':
		t = King
	case 'q':
		t = Queen
	case 'r':
		t = Rook
	case 'b':
		t = Bishop
	case 'n':
		t = Knight
	case 'p':
		t = Pawn
	default:
		return Piece{}, false
	}
	return Piece{Type: t, Color: color}, true
}

const (
	ansiReset = "\u001b[0m"

	ansiBlack   = 0
	ansiRed     = 1
	ansiGreen   = 2
	ansiYellow  = 3
	ansiMagenta = 5
	ansiWhite   = 7
)

func ansiColors(fg, bg int) string {
	return fmt.Sprintf("\u001b[3%d;4%dm", fg, bg)
}

func ansiBold(fg int) string {
	return fmt.Sprintf("\u001b[1;3%dm", fg)
}

var (
	renderBorder    = ansiColors(ansiBlack, ansiYellow)
	renderDark      = ansiColors(ansiWhite, ansiBlack)
	renderLight     = ansiColors(ansiBlack, ansiWhite)
	renderHighlight = ansiColors(ansiGreen, ansiMagenta)
	renderWhite     = ansiBold(ansiGreen)
	renderBlack     = ansiBold(ansiRed)
)

// Render draws the board for a terminal from perspective's side, with the
// given squares highlighted.
func (b *Board) Render(perspective Color, highlights []Position) string {
	rows := []int{8, 7, 6, 5, 4, 3, 2, 1}
	cols := []int{1, 2, 3, 4, 5, 6, 7, 8}
	files := "    a  b  c  d  e  f  g  h    "
	if perspective == Black {
		rows = []int{1, 2, 3, 4, 5, 6, 7, 8}
		cols = []int{8, 7, 6, 5, 4, 3, 2, 1}
		files = "    h  g  f  e  d  c  b  a    "
	}
	lit := make(map[Position]bool, len(highlights))
	for _, h := range highlights {
		lit[h] = true
	}

	var sb strings.Builder
	sb.WriteString(renderBorder + files + ansiReset + "\n")
	for _, row := range rows {
		label := fmt.Sprintf(" %d ", row)
		sb.WriteString(renderBorder + label + ansiReset)
		for _, col := range cols {
			pos := Position{Row: row, Col: col}
			square := renderLight
			if (row+col)%2 == 0 {
				square = renderDark
			}
			if lit[pos] {
				square = renderHighlight
			}
			sb.WriteString(renderSquare(b.at(pos), square))
		}
		sb.WriteString(renderBorder + label + ansiReset + "\n")
	}
	sb.WriteString(renderBorder + files + ansiReset + "\n")
	return sb.String()
}

func renderSquare(p Piece, square string) string {
	if p.IsEmpty() {
		return square + "   " + ansiReset
	}
	ink := renderBlack
	if p.Color == White {
		ink = renderWhite
	}
	return square + ink + " " + strings.ToUpper(string(pieceChar(p))) + " " + ansiReset
}
