package model

// Player is a participant identified by the id the client presents.
type Player struct {
	ID string `json:"id"`
}
