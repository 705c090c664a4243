package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

type HumanPlayer struct {
	mu          sync.Mutex
	pending     bool
	pendingMove Move
	input       *bufio.Reader
	prompt      io.Writer
}

// NewHumanPlayer returns a player fed through SetPendingMove, as the web front does.
func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

// NewConsoleHumanPlayer returns a player that reads its moves line by line from in.
func NewConsoleHumanPlayer(in io.Reader, prompt io.Writer) *HumanPlayer {
	return &HumanPlayer{input: bufio.NewReader(in), prompt: prompt}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) ChooseMove(_ context.Context, state GameState) (Move, error) {
	if h.input != nil {
		rules := state.Rules()
		return ReadMove(h.input, h.prompt, func(m Move) bool {
			ok, _ := rules.IsLegal(state, m)
			return ok
		})
	}
	if !h.HasPendingMove() {
		return Move{}, errors.New("no pending move")
	}
	return h.TakePendingMove(), nil
}

func (h *HumanPlayer) SetPendingMove(move Move) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pendingMove = move
	h.pending = true
}

func (h *HumanPlayer) HasPendingMove() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending
}

func (h *HumanPlayer) TakePendingMove() Move {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = false
	return h.pendingMove
}
