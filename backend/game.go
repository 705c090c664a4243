package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Game struct {
	id          string
	settings    GameSettings
	state       GameState
	history     MoveHistory
	blackPlayer IPlayer
	whitePlayer IPlayer
	newPlayer   PlayerFactory
	turnStart   time.Time
	lastSearch  SearchResult
	hasSearch   bool
	baseLogger  *zap.SugaredLogger
	logger      *zap.SugaredLogger
}

// NewGame seats players built by factory; a nil factory gives the web
// front's players (pending-move humans and background AI).
func NewGame(settings GameSettings, logger *zap.SugaredLogger, factory PlayerFactory) *Game {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	g := &Game{baseLogger: logger, logger: logger, newPlayer: factory}
	if g.newPlayer == nil {
		g.newPlayer = func(kind PlayerType, _ PlayerColor) IPlayer {
			if kind == PlayerAI {
				return NewAIPlayer(g.logger)
			}
			return NewHumanPlayer()
		}
	}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.waitForAI()
	g.id = uuid.NewString()
	g.logger = g.baseLogger.With("game_id", g.id)
	g.settings = settings
	g.state.Reset(settings)
	g.history.Clear()
	g.lastSearch, g.hasSearch = SearchResult{}, false
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

// Reseat swaps the player types without touching the position.
func (g *Game) Reseat(settings GameSettings) {
	g.waitForAI()
	g.settings.BlackType = settings.BlackType
	g.settings.WhiteType = settings.WhiteType
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

// LastSearch is the statistics of the most recent computer move that came out
// of a full search.
func (g *Game) LastSearch() (SearchResult, bool) {
	return g.lastSearch, g.hasSearch
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove plays move for the side to move and records it in the history.
func (g *Game) TryApplyMove(move Move) (MoveResult, error) {
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	result, err := g.state.ApplyMoveDetailed(move)
	if err != nil {
		g.logger.Debugw("move rejected", "move", move.String(), "player", g.state.ToMove.String(), "error", err)
		return MoveResult{}, err
	}
	g.history.Push(HistoryEntry{
		Move:              move,
		Player:            result.Player,
		CapturedPositions: result.Captured,
		ElapsedMs:         elapsedMs,
		IsAi:              isAiMove,
	})
	g.logMovePlayed(result, elapsedMs, isAiMove)
	if result.Finished {
		g.logWin(result.Player, result.Reason)
	}
	g.turnStart = time.Now()
	return result, nil
}

// PlayTurn asks the player to move and blocks until it answers. The console
// front drives the game with it.
func (g *Game) PlayTurn(ctx context.Context) (MoveResult, error) {
	if g.state.IsFinished() {
		return MoveResult{}, ErrGameOver
	}
	player := g.currentPlayer()
	move, err := player.ChooseMove(ctx, g.state.Clone())
	if err != nil {
		return MoveResult{}, fmt.Errorf("%s to move: %w", g.state.ToMove, err)
	}
	return g.TryApplyMove(move)
}

// Tick advances a game without blocking: it applies a pending human move or a
// finished background search, and starts a search when the computer is to move.
func (g *Game) Tick(ctx context.Context) (bool, error) {
	if g.state.IsFinished() {
		return false, nil
	}
	switch player := g.currentPlayer().(type) {
	case *HumanPlayer:
		if !player.HasPendingMove() {
			return false, nil
		}
		if _, err := g.TryApplyMove(player.TakePendingMove()); err != nil {
			return false, err
		}
		return true, nil
	case *AIPlayer:
		if player.HasMoveReady() {
			move, err := player.TakeMove()
			if err != nil {
				return false, fmt.Errorf("%s search: %w", g.state.ToMove, err)
			}
			if _, err := g.TryApplyMove(move); err != nil {
				return false, err
			}
			if result := player.LastResult(); result.Candidates > 0 && result.Move == move {
				g.lastSearch, g.hasSearch = result, true
			}
			return true, nil
		}
		if !player.IsThinking() {
			player.StartThinking(ctx, g.state.Clone())
		}
		return false, nil
	default:
		return false, nil
	}
}

func (g *Game) SubmitHumanMove(move Move) bool {
	human, ok := g.currentPlayer().(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	if ai, ok := g.currentPlayer().(*AIPlayer); ok {
		return ai.IsThinking()
	}
	return false
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

func (g *Game) createPlayers() {
	g.blackPlayer = g.newPlayer(g.settings.TypeFor(PlayerBlack), PlayerBlack)
	g.whitePlayer = g.newPlayer(g.settings.TypeFor(PlayerWhite), PlayerWhite)
}

// waitForAI lets a background search from the previous game finish before its
// players are dropped.
func (g *Game) waitForAI() {
	for _, player := range []IPlayer{g.blackPlayer, g.whitePlayer} {
		if ai, ok := player.(*AIPlayer); ok {
			ai.Wait()
		}
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "AI"
		}
		return "Human"
	}
	g.logger.Infow("new game",
		"white", label(g.settings.WhiteType),
		"black", label(g.settings.BlackType),
		"rules", g.state.Rules().String(),
	)
}

func (g *Game) logMovePlayed(result MoveResult, elapsedMs float64, isAiMove bool) {
	g.logger.Infow("move played",
		"move", result.Move.String(),
		"player", result.Player.String(),
		"ai", isAiMove,
		"captured", len(result.Captured)/2,
		"total_captures", g.state.Captures(result.Player),
		"elapsed_ms", elapsedMs,
	)
}

func (g *Game) logWin(player PlayerColor, reason WinReason) {
	g.logger.Infow("game over", "winner", player.String(), "reason", reason.String(), "moves", g.history.Size(), "stones", g.state.Board.CountStones())
}

func (r WinReason) String() string {
	switch r {
	case WinAlignment:
		return "alignment"
	case WinCapture:
		return "capture"
	default:
		return ""
	}
}
