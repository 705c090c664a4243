package main

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type GameController struct {
	mu     sync.Mutex
	game   *Game
	logger *zap.SugaredLogger
}

func NewGameController(settings GameSettings, logger *zap.SugaredLogger) *GameController {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &GameController{game: NewGame(settings, logger, nil), logger: logger}
}

var errNotHumanTurn = errors.New("not human turn")

func (gc *GameController) ApplyHumanMove(move Move) (MoveResult, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return MoveResult{}, errNotHumanTurn
	}
	return gc.game.TryApplyMove(move)
}

// Tick reports whether a move was applied. A failed background search is
// logged and surfaced; the game stays on the same turn.
func (gc *GameController) Tick(ctx context.Context) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	applied, err := gc.game.Tick(ctx)
	if err != nil {
		gc.logger.Errorw("tick failed", "game_id", gc.game.ID(), "error", err)
	}
	return applied
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) GameID() string {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ID()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History().Last()
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

// UpdateSettings starts a fresh game when reset is set; otherwise the players
// are reseated and the current game goes on.
func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		return
	}
	gc.game.Reseat(update)
}

func (gc *GameController) LastSearch() (SearchResult, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.LastSearch()
}
