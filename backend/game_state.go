package main

import "fmt"

type PlayerColor int

type GameStatus int

type WinReason int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

const (
	StatusRunning GameStatus = iota
	StatusBlackWon
	StatusWhiteWon
)

const (
	WinNone WinReason = iota
	WinAlignment
	WinCapture
)

type GameState struct {
	Board         Board
	ToMove        PlayerColor
	Status        GameStatus
	CapturedBlack int
	CapturedWhite int
	TopLeft       Move
	BottomRight   Move
	HasLastMove   bool
	LastMove      Move
	WinReason     WinReason
	WinningLine   []Move
	rules         Rules
}

// MoveResult describes what a single accepted move did to the position.
type MoveResult struct {
	Move     Move
	Player   PlayerColor
	Captured []Move
	Finished bool
	Reason   WinReason
}

func NewGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard()
	s.ToMove = PlayerWhite
	s.Status = StatusRunning
	s.CapturedBlack = 0
	s.CapturedWhite = 0
	// Inverted region: nothing has been played yet.
	s.TopLeft = Move{X: BoardSize, Y: BoardSize}
	s.BottomRight = Move{X: -1, Y: -1}
	s.HasLastMove = false
	s.LastMove = Move{X: -1, Y: -1}
	s.WinReason = WinNone
	s.WinningLine = nil
	s.rules = NewRules(settings)
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	return clone
}

func (s GameState) IsFinished() bool {
	return s.Status != StatusRunning
}

// Winner reports the winning colour once the game has ended.
func (s GameState) Winner() (PlayerColor, bool) {
	switch s.Status {
	case StatusBlackWon:
		return PlayerBlack, true
	case StatusWhiteWon:
		return PlayerWhite, true
	default:
		return PlayerBlack, false
	}
}

func (s GameState) Captures(player PlayerColor) int {
	if player == PlayerBlack {
		return s.CapturedBlack
	}
	return s.CapturedWhite
}

func (s GameState) Rules() Rules {
	return s.rules
}

// ApplyMove plays the side to move at move. It reports whether the move ended the game.
func (s *GameState) ApplyMove(move Move) (bool, error) {
	result, err := s.apply(move, false)
	return result.Finished, err
}

// ApplyMoveDetailed is ApplyMove that also reports the captured stones.
func (s *GameState) ApplyMoveDetailed(move Move) (MoveResult, error) {
	return s.apply(move, true)
}

func (s *GameState) apply(move Move, record bool) (MoveResult, error) {
	if s.Status != StatusRunning {
		return MoveResult{}, ErrGameOver
	}
	if !s.Board.IsEmpty(move.X, move.Y) {
		return MoveResult{}, fmt.Errorf("%w: could not place piece at %d, %d", ErrInvalidMove, move.X, move.Y)
	}
	mover := s.ToMove
	cell := CellFromPlayer(mover)
	s.Board.Set(move.X, move.Y, cell)
	s.LastMove = move
	s.HasLastMove = true
	s.expandRegion(move)

	var scratch [16]Move
	captures := s.rules.FindCapturesInto(s.Board, move, cell, scratch[:0])
	for _, captured := range captures {
		s.Board.Remove(captured.X, captured.Y)
	}
	if pairs := len(captures) / 2; pairs > 0 {
		if mover == PlayerBlack {
			s.CapturedBlack += pairs
		} else {
			s.CapturedWhite += pairs
		}
	}

	result := MoveResult{Move: move, Player: mover}
	if record && len(captures) > 0 {
		result.Captured = append([]Move(nil), captures...)
	}

	captureWin := s.rules.IsCaptureWin(*s)
	if captureWin || s.rules.IsWin(s.Board, move) {
		if mover == PlayerBlack {
			s.Status = StatusBlackWon
		} else {
			s.Status = StatusWhiteWon
		}
		if captureWin {
			s.WinReason = WinCapture
		} else {
			s.WinReason = WinAlignment
			if record {
				s.WinningLine, _ = s.rules.FindAlignmentLine(s.Board, move)
			}
		}
		result.Finished = true
		result.Reason = s.WinReason
	}

	s.ToMove = otherPlayer(mover)
	return result, nil
}

// expandRegion grows the dirty region to cover move plus a one-cell margin.
func (s *GameState) expandRegion(move Move) {
	s.TopLeft.X = min(s.TopLeft.X, clampCoord(move.X-1))
	s.TopLeft.Y = min(s.TopLeft.Y, clampCoord(move.Y-1))
	s.BottomRight.X = max(s.BottomRight.X, clampCoord(move.X+1))
	s.BottomRight.Y = max(s.BottomRight.Y, clampCoord(move.Y+1))
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p PlayerColor) String() string {
	if p == PlayerBlack {
		return "Black"
	}
	return "White"
}

func clampCoord(v int) int {
	if v < 0 {
		return 0
	}
	if v > BoardSize-1 {
		return BoardSize - 1
	}
	return v
}
