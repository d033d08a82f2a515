package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, logger zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         logger.With().Str("component", "websocket_controller").Logger(),
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	log := wsc.log.With().Str("game", gameID).Str("player", playerID).Logger()
	conn := ws.NewConn(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warn().Err(err).Msg("failed to register connection")
		wsc.sendError(conn, err.Error())
		conn.Close()
		return
	}
	log.Info().Msg("websocket connected")

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read loop finished")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("message rejected")
			wsc.sendError(conn, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, conn)
	log.Info().Msg("websocket disconnected")
}

// handleMessage applies one inbound message. Successful changes reach every
// client through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, payload.Move)
		return err

	case ws.MessageTypeResign:
		_, err := wsc.gameService.Resign(gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(conn service.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		wsc.log.Debug().Err(err).Msg("failed to send error")
	}
}
