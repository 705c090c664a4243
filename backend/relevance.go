package main

// IsRelevant reports whether any of the eight neighbours of m holds a stone.
func IsRelevant(board Board, m Move) bool {
	for _, d := range directions {
		if board.Piece(m.X+d[0], m.Y+d[1]) != CellEmpty {
			return true
		}
	}
	return false
}

// RelevantMoves lists the empty relevant cells inside the dirty region in
// row-major order. The region's x and y ranges are walked independently.
func RelevantMoves(state GameState) []Move {
	return appendRelevantMoves(nil, state)
}

func appendRelevantMoves(out []Move, state GameState) []Move {
	for y := state.TopLeft.Y; y <= state.BottomRight.Y; y++ {
		for x := state.TopLeft.X; x <= state.BottomRight.X; x++ {
			if !state.Board.IsEmpty(x, y) {
				continue
			}
			move := Move{X: x, Y: y}
			if IsRelevant(state.Board, move) {
				out = append(out, move)
			}
		}
	}
	return out
}
