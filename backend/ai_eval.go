package main

import "math"

const (
	winScore  int64 = math.MaxInt64
	lossScore int64 = math.MinInt64
)

// terminalScore maps a decided game onto the extremes so that forced results
// outrank any heuristic magnitude.
func terminalScore(state GameState, perspective PlayerColor) int64 {
	winner, _ := state.Winner()
	if winner == perspective {
		return winScore
	}
	return lossScore
}

// EvaluateBoard scores a position for perspective. For every relevant empty
// cell and every direction, the run of same-coloured stones starting next to
// the cell adds its squared length when it belongs to perspective and
// subtracts it otherwise.
func EvaluateBoard(state GameState, perspective PlayerColor) int64 {
	if state.IsFinished() {
		return terminalScore(state, perspective)
	}
	own := CellFromPlayer(perspective)
	board := state.Board
	var score int64
	var buf [BoardSize * BoardSize]Move
	for _, move := range appendRelevantMoves(buf[:0], state) {
		for _, d := range directions {
			runColour := board.Piece(move.X+d[0], move.Y+d[1])
			if runColour == CellEmpty {
				continue
			}
			count := int64(runLength(board, move, d[0], d[1], runColour))
			if runColour == own {
				score += count * count
			} else {
				score -= count * count
			}
		}
	}
	return score
}

func runLength(board Board, from Move, dx, dy int, colour Cell) int {
	count := 0
	for board.Piece(from.X+dx*(count+1), from.Y+dy*(count+1)) == colour {
		count++
	}
	return count
}
