package controller

import (
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

// RegisterRoutes mounts the REST API under /api/game and the game websocket
// under /ws/game/:gameId. Both require a player id.
func RegisterRoutes(app *fiber.App, gc *GameController, wsc *WebSocketController, origins []string, logger zerolog.Logger) {
	app.Use("/ws/*", middleware.EnsurePlayerID(logger))
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	api := app.Group("/api", middleware.EnsurePlayerID(logger))

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gc.JoinMatchmaking)
	gameRoutes.Post("/matchmaking/leave", gc.LeaveMatchmaking)
	gameRoutes.Get("/matchmaking/status", gc.MatchmakingStatus)
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/join/:gameId", gc.JoinGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", gc.ValidMoves)
	gameRoutes.Get("/:gameId/board", gc.RenderBoard)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Post("/:gameId/resign", gc.Resign)
}
