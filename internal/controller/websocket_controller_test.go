package controller

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/rs/zerolog"
)

func TestHandleMessage(t *testing.T) {
	logger := zerolog.Nop()
	gs := service.NewGameService(service.NewGameManager(logger, time.Second), logger)
	wsc := NewWebSocketController(gs, logger)

	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	gs.JoinGame(gameID, "alice")
	gs.JoinGame(gameID, "bob")

	move := func(s string) ws.Message {
		msg, err := ws.NewMessage(ws.MessageTypeMove, map[string]string{"move": s})
		if err != nil {
			t.Fatal(err)
		}
		return msg
	}

	if err := wsc.handleMessage(gameID, "alice", move("e2e4")); err != nil {
		t.Fatalf("move e2e4 error: %v", err)
	}
	if err := wsc.handleMessage(gameID, "alice", move("d2d4")); !errors.Is(err, service.ErrNotYourTurn) {
		t.Errorf("second white move error = %v, want ErrNotYourTurn", err)
	}
	if err := wsc.handleMessage(gameID, "bob", move("e7e9")); !errors.Is(err, model.ErrFormat) {
		t.Errorf("bad notation error = %v, want ErrFormat", err)
	}
	if err := wsc.handleMessage(gameID, "bob", ws.Message{Type: "drawOffer"}); err == nil {
		t.Error("unknown message type accepted")
	}
	if err := wsc.handleMessage(gameID, "bob", ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`{}`)}); !errors.Is(err, model.ErrInvalidMove) {
		t.Errorf("empty move error = %v, want ErrInvalidMove", err)
	}
	if err := wsc.handleMessage(gameID, "bob", ws.Message{Type: ws.MessageTypeResign}); err != nil {
		t.Fatalf("resign error: %v", err)
	}

	state, _ := gs.GetGameState(gameID)
	if state.Status != service.StatusWhiteWon {
		t.Errorf("status = %q, want white_won", state.Status)
	}
}
