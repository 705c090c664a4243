package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type AIPlayer struct {
	logger     *zap.SugaredLogger
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	readyMove  Move
	readyErr   error
	lastResult SearchResult
}

func NewAIPlayer(logger *zap.SugaredLogger) *AIPlayer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AIPlayer{logger: logger}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove runs the parallel search for the side to move. With no stone on
// the board there is nothing relevant to search, so the opening goes to the centre.
func (a *AIPlayer) ChooseMove(ctx context.Context, state GameState) (Move, error) {
	config := GetConfig()
	result, err := SearchBestMove(ctx, state, SearchOptions{Depth: config.AiDepth, Workers: config.AiWorkers})
	if errors.Is(err, ErrNoCandidates) {
		move, ok := openingMove(state)
		if !ok {
			return Move{}, err
		}
		a.logger.Infow("no relevant cells, playing opening move", "move", move.String(), "player", state.ToMove.String())
		return move, nil
	}
	if err != nil {
		return Move{}, err
	}
	a.moveMutex.Lock()
	a.lastResult = result
	a.moveMutex.Unlock()
	if config.AiLogSearchStats {
		logSearchStats(a.logger, state.ToMove, result)
	}
	return result.Move, nil
}

// StartThinking searches on a copy of state in the background; poll
// HasMoveReady and collect the answer with TakeMove.
func (a *AIPlayer) StartThinking(ctx context.Context, state GameState) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)

	stateCopy := state.Clone()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		move, err := a.ChooseMove(ctx, stateCopy)
		a.moveMutex.Lock()
		a.readyMove = move
		a.readyErr = err
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() (Move, error) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove, a.readyErr
}

// Wait blocks until the background search, if any, has finished.
func (a *AIPlayer) Wait() {
	if a.workerDone != nil {
		<-a.workerDone
	}
}

func (a *AIPlayer) LastResult() SearchResult {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	return a.lastResult
}

func openingMove(state GameState) (Move, bool) {
	center := Move{X: BoardSize / 2, Y: BoardSize / 2}
	if state.Board.IsEmpty(center.X, center.Y) {
		return center, true
	}
	for i := 0; i < BoardSize*BoardSize; i++ {
		move, _ := MoveFromIndex(i)
		if state.Board.IsEmpty(move.X, move.Y) {
			return move, true
		}
	}
	return Move{}, false
}

func logSearchStats(logger *zap.SugaredLogger, player PlayerColor, result SearchResult) {
	nps := 0.0
	if seconds := result.Elapsed.Seconds(); seconds > 0 {
		nps = float64(result.Nodes) / seconds
	}
	logger.Infow("search finished",
		"player", player.String(),
		"move", result.Move.String(),
		"score", result.Score,
		"depth", result.Depth,
		"candidates", result.Candidates,
		"nodes", result.Nodes,
		"cutoffs", result.Cutoffs,
		"nps", int64(nps),
		"elapsed", result.Elapsed,
	)
}
