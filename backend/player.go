package main

import "context"

type IPlayer interface {
	IsHuman() bool
	ChooseMove(ctx context.Context, state GameState) (Move, error)
}

// PlayerFactory builds the player seated on one side of a game.
type PlayerFactory func(kind PlayerType, color PlayerColor) IPlayer
