package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/rs/zerolog"
)

// Status is the result of a session as seen by its players.
type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusWhiteWon Status = "white_won"
	StatusBlackWon Status = "black_won"
	StatusDraw     Status = "draw"
)

// GameState is the snapshot sent to clients over REST and websocket.
type GameState struct {
	ID          string            `json:"id"`
	White       string            `json:"white,omitempty"`
	Black       string            `json:"black,omitempty"`
	Turn        model.Color       `json:"turn"`
	Status      Status            `json:"status"`
	Description string            `json:"description"`
	InCheck     bool              `json:"inCheck"`
	Board       string            `json:"board"`
	Pieces      []model.Placement `json:"pieces"`
	History     []model.Move      `json:"history"`
}

// GameSession is one live game with its seats and connections. Every exported
// method takes the session lock, so a session serializes its own moves.
type GameSession struct {
	ID        string
	CreatedAt time.Time

	game        *model.Game
	white       string
	black       string
	status      Status
	description string
	conns       map[string]Conn
	log         zerolog.Logger
	mu          sync.Mutex
}

func newGameSession(id string, logger zerolog.Logger) *GameSession {
	return &GameSession{
		ID:          id,
		CreatedAt:   time.Now(),
		game:        model.NewGame(),
		status:      StatusOngoing,
		description: "White to move",
		conns:       make(map[string]Conn),
		log:         logger.With().Str("game", id).Logger(),
	}
}

// AddPlayer seats playerID. The first player takes White, the second Black.
// Joining again returns the seat already held.
func (s *GameSession) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color, ok := s.colorOf(playerID); ok {
		return color, nil
	}
	switch {
	case s.white == "":
		s.white = playerID
		return model.White, nil
	case s.black == "":
		s.black = playerID
		s.broadcastLocked()
		return model.Black, nil
	}
	return "", ErrGameFull
}

func (s *GameSession) colorOf(playerID string) (model.Color, bool) {
	switch playerID {
	case "":
		return "", false
	case s.white:
		return model.White, true
	case s.black:
		return model.Black, true
	}
	return "", false
}

// MakeMove plays m for playerID and returns the new snapshot.
func (s *GameSession) MakeMove(playerID string, m model.Move) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.colorOf(playerID)
	if !ok {
		return GameState{}, ErrNotPlayer
	}
	if s.status != StatusOngoing {
		return GameState{}, ErrGameOver
	}
	if color != s.game.Turn() {
		return GameState{}, ErrNotYourTurn
	}
	if err := s.game.MakeMove(m); err != nil {
		return GameState{}, fmt.Errorf("game %s: %w", s.ID, err)
	}
	s.updateStatus()
	s.broadcastLocked()
	return s.stateLocked(), nil
}

// Resign ends the game in favour of playerID's opponent.
func (s *GameSession) Resign(playerID string) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.colorOf(playerID)
	if !ok {
		return GameState{}, ErrNotPlayer
	}
	if s.status != StatusOngoing {
		return GameState{}, ErrGameOver
	}
	if color == model.White {
		s.status = StatusBlackWon
	} else {
		s.status = StatusWhiteWon
	}
	s.description = colorName(color) + " resigned"
	s.broadcastLocked()
	return s.stateLocked(), nil
}

// updateStatus recomputes the result after a move. Only the side to move can
// be stalemated.
func (s *GameSession) updateStatus() {
	g := s.game
	switch {
	case g.IsInStalemate(g.Turn()):
		s.status = StatusDraw
		s.description = "Stalemate"
	case g.IsInCheckmate(model.White):
		s.status = StatusBlackWon
		s.description = "Checkmate, black wins"
	case g.IsInCheckmate(model.Black):
		s.status = StatusWhiteWon
		s.description = "Checkmate, white wins"
	case g.IsInCheck(g.Turn()):
		s.status = StatusOngoing
		s.description = colorName(g.Turn()) + " is in check"
	default:
		s.status = StatusOngoing
		s.description = colorName(g.Turn()) + " to move"
	}
}

func (s *GameSession) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *GameSession) stateLocked() GameState {
	b := s.game.Board()
	return GameState{
		ID:          s.ID,
		White:       s.white,
		Black:       s.black,
		Turn:        s.game.Turn(),
		Status:      s.status,
		Description: s.description,
		InCheck:     s.game.IsInCheck(s.game.Turn()),
		Board:       b.String(),
		Pieces:      b.Placements(),
		History:     b.History(),
	}
}

// ValidMoves lists the legal moves of the piece on pos.
func (s *GameSession) ValidMoves(pos model.Position) []model.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ValidMoves(pos)
}

// Render draws the board from perspective, highlighting the last move.
func (s *GameSession) Render(perspective model.Color) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var highlights []model.Position
	if last, ok := s.game.Board().LastMove(); ok {
		highlights = []model.Position{last.Start, last.End}
	}
	return s.game.Board().Render(perspective, highlights)
}

func colorName(c model.Color) string {
	name := string(c)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
