package service

import (
	"github.com/benbeisheim/chess-backend/internal/ws"
)

// Conn is the write side of a client connection.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// RegisterConnection sends conn the current state and attaches it for
// playerID. A previous connection of the same player is closed. Nothing is
// attached when the first write fails.
func (s *GameSession) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.colorOf(playerID); !ok {
		return ErrNotPlayer
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.stateLocked())
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}

	if old, ok := s.conns[playerID]; ok && old != conn {
		old.Close()
	}
	s.conns[playerID] = conn
	s.log.Debug().Str("player", playerID).Int("connections", len(s.conns)).Msg("connection registered")
	return nil
}

// UnregisterConnection forgets playerID's connection if it is still conn.
func (s *GameSession) UnregisterConnection(playerID string, conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.conns[playerID]; ok && current == conn {
		delete(s.conns, playerID)
		s.log.Debug().Str("player", playerID).Msg("connection unregistered")
	}
}

// broadcastLocked sends the current state to every connection. Connections
// that fail to write are closed and dropped.
func (s *GameSession) broadcastLocked() {
	if len(s.conns) == 0 {
		return
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.stateLocked())
	if err != nil {
		s.log.Error().Err(err).Msg("encode game state")
		return
	}
	for playerID, conn := range s.conns {
		if err := conn.WriteJSON(msg); err != nil {
			s.log.Warn().Err(err).Str("player", playerID).Msg("dropping connection")
			conn.Close()
			delete(s.conns, playerID)
		}
	}
}
