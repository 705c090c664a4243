package main

import "errors"

var (
	ErrGameOver       = errors.New("the game has ended, no more moves can be played")
	ErrInvalidMove    = errors.New("invalid move")
	ErrMalformedInput = errors.New("malformed move input")
	ErrNoCandidates   = errors.New("no candidate moves")
)
