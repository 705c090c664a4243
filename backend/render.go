package main

import (
	"fmt"
	"strings"
)

// Render draws the board with column letters on top and row numbers on the
// right. Black stones show as [] and white stones as a solid block.
func Render(state GameState) string {
	var sb strings.Builder
	sb.WriteString("\n\n")
	for x := 0; x < BoardSize; x++ {
		fmt.Fprintf(&sb, " %c ", 'a'+x)
	}
	sb.WriteString("\n")
	sb.WriteString(gridRule("┌", "┬", "┐"))
	for y := 0; y < BoardSize; y++ {
		sb.WriteString("│")
		for x := 0; x < BoardSize; x++ {
			switch state.Board.At(x, y) {
			case CellBlack:
				sb.WriteString("[]│")
			case CellWhite:
				sb.WriteString("██│")
			default:
				sb.WriteString("  │")
			}
		}
		fmt.Fprintf(&sb, "%d\n", y)
		if y == BoardSize-1 {
			sb.WriteString(gridRule("└", "┴", "┘"))
		} else {
			sb.WriteString(gridRule("├", "┼", "┤"))
		}
	}
	limit := state.Rules().CaptureWinPairs() * 2
	fmt.Fprintf(&sb, "White Captures: %d/%d      Black Captures: %d/%d\n",
		state.CapturedWhite*2, limit, state.CapturedBlack*2, limit)
	return sb.String()
}

func gridRule(left, middle, right string) string {
	return left + strings.Repeat("──"+middle, BoardSize-1) + "──" + right + "\n"
}
