package service

import (
	"context"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Match tells a queued player which game the matchmaker put them in.
type Match struct {
	GameID string      `json:"gameId"`
	Color  model.Color `json:"color"`
}

// GameManager owns every live session and the matchmaking queue. The manager
// lock guards only the registries; moves lock the session they touch.
type GameManager struct {
	games    map[string]*GameSession
	queue    *model.Queue
	matches  map[string]Match
	interval time.Duration
	log      zerolog.Logger
	mu       sync.RWMutex
}

func NewGameManager(logger zerolog.Logger, matchmakingInterval time.Duration) *GameManager {
	return &GameManager{
		games:    make(map[string]*GameSession),
		queue:    model.NewQueue(),
		matches:  make(map[string]Match),
		interval: matchmakingInterval,
		log:      logger.With().Str("component", "game_manager").Logger(),
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context) {
	ticker := time.NewTicker(gm.interval)
	defer ticker.Stop()

	gm.log.Info().Dur("interval", gm.interval).Msg("matchmaking started")
	for {
		select {
		case <-ctx.Done():
			gm.log.Info().Msg("matchmaking stopped")
			return
		case <-ticker.C:
			gm.processMatchmaking()
		}
	}
}

// processMatchmaking drains the queue two players at a time and returns the
// number of games created.
func (gm *GameManager) processMatchmaking() int {
	created := 0
	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return created
		}

		gameID := uuid.New().String()
		session := newGameSession(gameID, gm.log)
		// both seats of a fresh session are free
		_, _ = session.AddPlayer(player1.ID)
		_, _ = session.AddPlayer(player2.ID)

		gm.mu.Lock()
		gm.games[gameID] = session
		gm.matches[player1.ID] = Match{GameID: gameID, Color: model.White}
		gm.matches[player2.ID] = Match{GameID: gameID, Color: model.Black}
		gm.mu.Unlock()

		gm.log.Info().
			Str("game", gameID).
			Str("white", player1.ID).
			Str("black", player2.ID).
			Msg("match found")
		created++
	}
}

func (gm *GameManager) CreateGame(gameID string) (*GameSession, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	session := newGameSession(gameID, gm.log)
	gm.games[gameID] = session
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*GameSession, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (GameState, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.State(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) (GameState, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.MakeMove(playerID, move)
}

func (gm *GameManager) Resign(gameID string, playerID string) (GameState, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.Resign(playerID)
}

func (gm *GameManager) ValidMoves(gameID string, pos model.Position) ([]model.Move, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.ValidMoves(pos), nil
}

func (gm *GameManager) RenderBoard(gameID string, perspective model.Color) (string, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return session.Render(perspective), nil
}

// JoinMatchmaking queues playerID and forgets any earlier match.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if gm.queue.Contains(playerID) {
		return ErrAlreadyQueued
	}

	gm.mu.Lock()
	delete(gm.matches, playerID)
	gm.mu.Unlock()

	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.RemovePlayer(playerID)
}

// MatchmakingStatus reports the match found for playerID, if any, and whether
// the player is still waiting in the queue.
func (gm *GameManager) MatchmakingStatus(playerID string) (match Match, matched bool, queued bool) {
	gm.mu.RLock()
	match, matched = gm.matches[playerID]
	gm.mu.RUnlock()
	return match, matched, gm.queue.Contains(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn Conn) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, conn)
}
