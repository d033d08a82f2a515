package model

import (
	"sort"
	"testing"
)

func mustBoard(t *testing.T, s string) *Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard() error: %v", err)
	}
	return b
}

func mustMakeMoves(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if err := g.MakeMove(MustParseMove(s)); err != nil {
			t.Fatalf("MakeMove(%s) error: %v", s, err)
		}
	}
}

// moveStrings renders moves in sorted order for order-independent comparison.
func moveStrings(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func sq(s string) Position {
	return MustParsePosition(s)
}
