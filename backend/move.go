package main

import "fmt"

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// directions holds the eight unit vectors in scan order.
var directions = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}

func (m Move) IsValid() bool {
	return m.X >= 0 && m.Y >= 0 && m.X < BoardSize && m.Y < BoardSize
}

func (m Move) Offset(dx, dy, distance int) Move {
	return Move{X: m.X + dx*distance, Y: m.Y + dy*distance}
}

// String renders the move the way the console reads it: column letter then row.
func (m Move) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("(%d,%d)", m.X, m.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+rune(m.X), m.Y)
}
