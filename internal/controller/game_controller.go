package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type GameController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewGameController(gameService *service.GameService, logger zerolog.Logger) *GameController {
	return &GameController{
		gameService: gameService,
		log:         logger.With().Str("component", "game_controller").Logger(),
	}
}

type moveRequest struct {
	Move string `json:"move"`
}

// statusFor maps service and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrFormat), errors.Is(err, model.ErrInvalidMove):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotPlayer), errors.Is(err, service.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameFull), errors.Is(err, service.ErrGameOver),
		errors.Is(err, service.ErrAlreadyQueued), errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		gc.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ValidMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.ValidMoves(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return gc.fail(c, err)
	}
	if moves == nil {
		moves = []model.Move{}
	}
	return c.JSON(fiber.Map{
		"square": c.Params("square"),
		"moves":  moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	move, err := model.ParseMove(req.Move)
	if err != nil {
		return gc.fail(c, err)
	}

	state, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), move)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	state, err := gc.gameService.Resign(c.Params("gameId"), playerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

// RenderBoard answers the terminal rendering of the board as plain text.
func (gc *GameController) RenderBoard(c *fiber.Ctx) error {
	text, err := gc.gameService.RenderBoard(c.Params("gameId"), c.Query("perspective"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.SendString(text)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(playerID(c)); err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	if !gc.gameService.LeaveMatchmaking(playerID(c)) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player is not queued",
		})
	}
	return c.JSON(fiber.Map{
		"status": "idle",
	})
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	return c.JSON(gc.gameService.MatchmakingStatus(playerID(c)))
}
