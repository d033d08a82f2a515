package service

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrGameFull      = errors.New("game is full")
	ErrNotPlayer     = errors.New("player is not part of this game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameOver      = errors.New("game is over")
	ErrAlreadyQueued = model.ErrAlreadyQueued
)
