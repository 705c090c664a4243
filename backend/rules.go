package main

import "fmt"

type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	defaults := DefaultGameSettings()
	if settings.WinLength <= 0 {
		settings.WinLength = defaults.WinLength
	}
	if settings.CaptureWinPairs <= 0 {
		settings.CaptureWinPairs = defaults.CaptureWinPairs
	}
	return Rules{settings: settings}
}

// IsLegal accepts any on-board empty cell; the variant has no further restrictions.
func (r Rules) IsLegal(state GameState, move Move) (bool, string) {
	if state.Status != StatusRunning {
		return false, "game over"
	}
	if !move.IsValid() {
		return false, "out of bounds"
	}
	if !state.Board.IsEmpty(move.X, move.Y) {
		return false, "occupied"
	}
	return true, ""
}

// IsWin reports whether, along one of the eight directions, the WinLength-1
// cells after lastMove all hold its colour. Only rays starting at the placed
// stone count, so filling the gap of a broken line does not win.
func (r Rules) IsWin(board Board, lastMove Move) bool {
	if !lastMove.IsValid() {
		return false
	}
	cell := board.At(lastMove.X, lastMove.Y)
	if cell == CellEmpty {
		return false
	}
	for _, d := range directions {
		if r.rayHolds(board, lastMove, d[0], d[1], cell) {
			return true
		}
	}
	return false
}

func (r Rules) rayHolds(board Board, from Move, dx, dy int, cell Cell) bool {
	for dist := 1; dist < r.settings.WinLength; dist++ {
		next := from.Offset(dx, dy, dist)
		if board.Piece(next.X, next.Y) != cell {
			return false
		}
	}
	return true
}

// IsCaptureWin checks both counters, not only the mover's. Only the mover's
// counter can grow on a move and the game stops at the threshold, so in
// regular play the side reaching it is always the mover.
func (r Rules) IsCaptureWin(state GameState) bool {
	return state.CapturedBlack >= r.settings.CaptureWinPairs || state.CapturedWhite >= r.settings.CaptureWinPairs
}

// FindCapturesInto appends to captures every opponent stone flanked by the
// pattern move, opponent, opponent, player along one of the eight directions.
func (r Rules) FindCapturesInto(board Board, move Move, playerCell Cell, captures []Move) []Move {
	captures = captures[:0]
	opponentCell := CellBlack
	if playerCell == CellBlack {
		opponentCell = CellWhite
	}
	for i := 0; i < 8; i++ {
		dx := directions[i][0]
		dy := directions[i][1]
		first := move.Offset(dx, dy, 1)
		second := move.Offset(dx, dy, 2)
		third := move.Offset(dx, dy, 3)
		if board.Piece(first.X, first.Y) == opponentCell &&
			board.Piece(second.X, second.Y) == opponentCell &&
			board.Piece(third.X, third.Y) == playerCell {
			captures = append(captures, first, second)
		}
	}
	return captures
}

// FindAlignmentLine returns the full run through lastMove on the first axis
// holding WinLength stones. It is only used to report the winning line.
func (r Rules) FindAlignmentLine(board Board, lastMove Move) ([]Move, bool) {
	if !lastMove.IsValid() || board.At(lastMove.X, lastMove.Y) == CellEmpty {
		return nil, false
	}
	axes := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for i := 0; i < 4; i++ {
		line := r.collectLine(board, lastMove, axes[i][0], axes[i][1])
		if len(line) >= r.settings.WinLength {
			return line, true
		}
	}
	return nil, false
}

func (r Rules) CaptureWinPairs() int {
	return r.settings.CaptureWinPairs
}

func (r Rules) collectLine(board Board, start Move, dx, dy int) []Move {
	line := []Move{}
	target := board.At(start.X, start.Y)
	x := start.X
	y := start.Y
	for board.InBounds(x-dx, y-dy) && board.At(x-dx, y-dy) == target {
		x -= dx
		y -= dy
	}
	for board.InBounds(x, y) && board.At(x, y) == target {
		line = append(line, Move{X: x, Y: y})
		x += dx
		y += dy
	}
	return line
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{win=%d, capture_pairs=%d}", r.settings.WinLength, r.settings.CaptureWinPairs)
}
