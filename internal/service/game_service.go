package service

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MatchmakingStatus is what a polling player sees.
type MatchmakingStatus struct {
	Status string      `json:"status"`
	GameID string      `json:"gameId,omitempty"`
	Color  model.Color `json:"color,omitempty"`
}

type GameService struct {
	gameManager *GameManager
	log         zerolog.Logger
}

func NewGameService(gameManager *GameManager, logger zerolog.Logger) *GameService {
	return &GameService{
		gameManager: gameManager,
		log:         logger.With().Str("component", "game_service").Logger(),
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	gs.log.Info().Str("game", gameID).Msg("game created")
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	color, err := gs.gameManager.AddPlayerToGame(gameID, playerID)
	if err != nil {
		return "", err
	}
	gs.log.Info().Str("game", gameID).Str("player", playerID).Str("color", string(color)).Msg("player joined")
	return color, nil
}

func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// ValidMoves parses square and lists the legal moves of the piece on it.
func (gs *GameService) ValidMoves(gameID string, square string) ([]model.Move, error) {
	pos, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	return gs.gameManager.ValidMoves(gameID, pos)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) (GameState, error) {
	state, err := gs.gameManager.MakeMove(gameID, playerID, move)
	if err != nil {
		gs.log.Debug().Err(err).Str("game", gameID).Str("player", playerID).Str("move", move.String()).Msg("move rejected")
		return GameState{}, err
	}
	gs.log.Info().
		Str("game", gameID).
		Str("player", playerID).
		Str("move", move.String()).
		Str("status", string(state.Status)).
		Msg("move played")
	return state, nil
}

func (gs *GameService) Resign(gameID string, playerID string) (GameState, error) {
	state, err := gs.gameManager.Resign(gameID, playerID)
	if err != nil {
		return GameState{}, err
	}
	gs.log.Info().Str("game", gameID).Str("player", playerID).Msg("player resigned")
	return state, nil
}

// RenderBoard draws the board for perspective, which defaults to White.
func (gs *GameService) RenderBoard(gameID string, perspective string) (string, error) {
	color := model.White
	if perspective == string(model.Black) {
		color = model.Black
	}
	return gs.gameManager.RenderBoard(gameID, color)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	if err := gs.gameManager.JoinMatchmaking(playerID); err != nil {
		return err
	}
	gs.log.Info().Str("player", playerID).Msg("player queued")
	return nil
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) MatchmakingStatus(playerID string) MatchmakingStatus {
	match, matched, queued := gs.gameManager.MatchmakingStatus(playerID)
	switch {
	case matched:
		return MatchmakingStatus{Status: "matched", GameID: match.GameID, Color: match.Color}
	case queued:
		return MatchmakingStatus{Status: "queued"}
	}
	return MatchmakingStatus{Status: "idle"}
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
