package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	fail     bool
	closed   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) lastState(t *testing.T) GameState {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		t.Fatal("no message received")
	}
	msg := c.messages[len(c.messages)-1]
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("message type = %q, want gameState", msg.Type)
	}
	var state GameState
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func newSeatedSession(t *testing.T) *GameSession {
	t.Helper()
	s := newGameSession("g1", zerolog.Nop())
	if _, err := s.AddPlayer("alice"); err != nil {
		t.Fatalf("AddPlayer(alice) error: %v", err)
	}
	if _, err := s.AddPlayer("bob"); err != nil {
		t.Fatalf("AddPlayer(bob) error: %v", err)
	}
	return s
}

func play(t *testing.T, s *GameSession, moves ...string) GameState {
	t.Helper()
	var state GameState
	for i, mv := range moves {
		player := "alice"
		if i%2 == 1 {
			player = "bob"
		}
		var err error
		state, err = s.MakeMove(player, model.MustParseMove(mv))
		if err != nil {
			t.Fatalf("MakeMove(%s, %s) error: %v", player, mv, err)
		}
	}
	return state
}

func TestAddPlayerSeats(t *testing.T) {
	s := newGameSession("g1", zerolog.Nop())

	tests := []struct {
		player  string
		want    model.Color
		wantErr error
	}{
		{"alice", model.White, nil},
		{"bob", model.Black, nil},
		{"alice", model.White, nil},
		{"bob", model.Black, nil},
		{"carol", "", ErrGameFull},
	}
	for _, tt := range tests {
		got, err := s.AddPlayer(tt.player)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("AddPlayer(%s) error = %v, want %v", tt.player, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("AddPlayer(%s) = %q, want %q", tt.player, got, tt.want)
		}
	}
}

func TestMakeMoveChecksOwnership(t *testing.T) {
	s := newSeatedSession(t)

	if _, err := s.MakeMove("carol", model.MustParseMove("e2e4")); !errors.Is(err, ErrNotPlayer) {
		t.Errorf("stranger move error = %v, want ErrNotPlayer", err)
	}
	if _, err := s.MakeMove("bob", model.MustParseMove("e7e5")); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("black moving first error = %v, want ErrNotYourTurn", err)
	}
	if _, err := s.MakeMove("alice", model.MustParseMove("e2e5")); !errors.Is(err, model.ErrInvalidMove) {
		t.Errorf("illegal move error = %v, want ErrInvalidMove", err)
	}

	state := play(t, s, "e2e4")
	want := GameState{
		ID:          "g1",
		White:       "alice",
		Black:       "bob",
		Turn:        model.Black,
		Status:      StatusOngoing,
		Description: "Black to move",
		History:     []model.Move{model.MustParseMove("e2e4")},
	}
	if diff := cmp.Diff(want, state, ignoreBoard); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

var ignoreBoard = cmp.FilterPath(func(p cmp.Path) bool {
	name := p.Last().String()
	return name == ".Board" || name == ".Pieces"
}, cmp.Ignore())

func TestStatusAfterMoves(t *testing.T) {
	tests := []struct {
		name   string
		moves  []string
		status Status
		desc   string
		check  bool
	}{
		{
			name:   "check",
			moves:  []string{"e2e4", "f7f6", "d1h5"},
			status: StatusOngoing,
			desc:   "Black is in check",
			check:  true,
		},
		{
			name:   "fool's mate",
			moves:  []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			status: StatusBlackWon,
			desc:   "Checkmate, black wins",
			check:  true,
		},
		{
			name:   "scholar's mate",
			moves:  []string{"e2e4", "e7e5", "d1h5", "b8c6", "f1c4", "g8f6", "h5f7"},
			status: StatusWhiteWon,
			desc:   "Checkmate, white wins",
			check:  true,
		},
		{
			name: "ten move stalemate",
			moves: []string{
				"e2e3", "a7a5", "d1h5", "a8a6", "h5a5", "h7h5", "h2h4", "a6h6", "a5c7", "f7f6",
				"c7d7", "e8f7", "d7b7", "d8d3", "b7b8", "d3h7", "b8c8", "f7g6", "c8e6",
			},
			status: StatusDraw,
			desc:   "Stalemate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSeatedSession(t)
			state := play(t, s, tt.moves...)
			if state.Status != tt.status {
				t.Errorf("Status = %q, want %q", state.Status, tt.status)
			}
			if state.Description != tt.desc {
				t.Errorf("Description = %q, want %q", state.Description, tt.desc)
			}
			if state.InCheck != tt.check {
				t.Errorf("InCheck = %v, want %v", state.InCheck, tt.check)
			}
		})
	}
}

func TestFinishedGameRejectsMoves(t *testing.T) {
	s := newSeatedSession(t)
	play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")

	if _, err := s.MakeMove("alice", model.MustParseMove("a2a3")); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after mate error = %v, want ErrGameOver", err)
	}
	if _, err := s.Resign("alice"); !errors.Is(err, ErrGameOver) {
		t.Errorf("resign after mate error = %v, want ErrGameOver", err)
	}
}

func TestResign(t *testing.T) {
	s := newSeatedSession(t)
	if _, err := s.Resign("carol"); !errors.Is(err, ErrNotPlayer) {
		t.Errorf("stranger resign error = %v, want ErrNotPlayer", err)
	}

	state, err := s.Resign("alice")
	if err != nil {
		t.Fatalf("Resign(alice) error: %v", err)
	}
	if state.Status != StatusBlackWon || state.Description != "White resigned" {
		t.Errorf("state = %q %q, want black_won after white resigned", state.Status, state.Description)
	}
	if _, err := s.MakeMove("alice", model.MustParseMove("e2e4")); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after resign error = %v, want ErrGameOver", err)
	}
}

func TestBroadcast(t *testing.T) {
	s := newSeatedSession(t)
	white := &fakeConn{}
	black := &fakeConn{}

	if err := s.RegisterConnection("alice", white); err != nil {
		t.Fatalf("RegisterConnection(alice) error: %v", err)
	}
	if err := s.RegisterConnection("bob", black); err != nil {
		t.Fatalf("RegisterConnection(bob) error: %v", err)
	}
	if err := s.RegisterConnection("carol", &fakeConn{}); !errors.Is(err, ErrNotPlayer) {
		t.Errorf("RegisterConnection(carol) error = %v, want ErrNotPlayer", err)
	}
	if got := white.lastState(t); len(got.History) != 0 {
		t.Errorf("initial state history = %v, want empty", got.History)
	}

	play(t, s, "e2e4")
	for name, c := range map[string]*fakeConn{"white": white, "black": black} {
		state := c.lastState(t)
		if diff := cmp.Diff([]model.Move{model.MustParseMove("e2e4")}, state.History); diff != "" {
			t.Errorf("%s history mismatch (-want +got):\n%s", name, diff)
		}
	}

	black.fail = true
	if _, err := s.MakeMove("bob", model.MustParseMove("e7e5")); err != nil {
		t.Fatalf("MakeMove(e7e5) error: %v", err)
	}
	if !black.closed {
		t.Error("failing connection was not closed")
	}
	sent := len(white.messages)
	black.fail = false
	play(t, s, "g1f3")
	if len(black.messages) != 2 {
		t.Errorf("dropped connection received %d messages, want 2", len(black.messages))
	}
	if len(white.messages) != sent+1 {
		t.Errorf("white received %d messages, want %d", len(white.messages), sent+1)
	}

	s.UnregisterConnection("alice", black)
	s.UnregisterConnection("alice", white)
	if _, err := s.MakeMove("bob", model.MustParseMove("b8c6")); err != nil {
		t.Fatalf("MakeMove(b8c6) error: %v", err)
	}
	if len(white.messages) != sent+1 {
		t.Errorf("unregistered connection still receives broadcasts")
	}
}

func TestStalemateOnlyForSideToMove(t *testing.T) {
	s := newSeatedSession(t)
	b, err := model.ParseBoard(`
		........
		........
		.......p
		........
		.......P
		p.kb....
		P.......
		K.......`)
	if err != nil {
		t.Fatalf("ParseBoard() error: %v", err)
	}
	s.game = model.NewGameFromBoard(b, model.White)

	// h4h5 leaves White without a move, but Black is to move.
	state := play(t, s, "h4h5")
	if state.Status != StatusOngoing || state.Description != "Black to move" {
		t.Errorf("after h4h5 = %q %q, want ongoing, black to move", state.Status, state.Description)
	}

	state, err = s.MakeMove("bob", model.MustParseMove("d3e2"))
	if err != nil {
		t.Fatalf("MakeMove(d3e2) error: %v", err)
	}
	if state.Status != StatusOngoing || state.Turn != model.White {
		t.Errorf("after d3e2 = %q turn %q, want ongoing with white to move", state.Status, state.Turn)
	}
}

func TestRegisterConnectionFailedWrite(t *testing.T) {
	s := newSeatedSession(t)

	broken := &fakeConn{fail: true}
	if err := s.RegisterConnection("alice", broken); err == nil {
		t.Fatal("RegisterConnection(broken) error = nil")
	}
	if len(s.conns) != 0 {
		t.Errorf("connections after failed write = %d, want 0", len(s.conns))
	}

	good := &fakeConn{}
	if err := s.RegisterConnection("alice", good); err != nil {
		t.Fatalf("RegisterConnection(good) error: %v", err)
	}
	if err := s.RegisterConnection("alice", &fakeConn{fail: true}); err == nil {
		t.Fatal("replacing with a broken connection error = nil")
	}
	if good.closed {
		t.Error("working connection closed by a failed replacement")
	}

	play(t, s, "e2e4")
	if got := good.lastState(t); len(got.History) != 1 {
		t.Errorf("history = %v, want one move", got.History)
	}
}
