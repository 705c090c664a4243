package main

const BoardSize = 19

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

type Board struct {
	cells []Cell
}

func NewBoard() Board {
	return Board{cells: make([]Cell, BoardSize*BoardSize)}
}

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

// Piece reads a cell without bounds errors: anything off the board is empty,
// so directional walks can run past the edge.
func (b Board) Piece(x, y int) Cell {
	if !b.InBounds(x, y) {
		return CellEmpty
	}
	return b.cells[b.index(x, y)]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[b.index(x, y)] = value
}

func (b *Board) Remove(x, y int) {
	b.cells[b.index(x, y)] = CellEmpty
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < BoardSize && y < BoardSize
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b Board) CountStones() int {
	count := 0
	for _, cell := range b.cells {
		if cell != CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Clone() Board {
	clone := Board{cells: make([]Cell, len(b.cells))}
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) Equals(other Board) bool {
	if len(b.cells) != len(other.cells) {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) index(x, y int) int {
	return cellIndex(x, y)
}

// cellIndex is the row-major position of (x, y) in the flat cell slice.
func cellIndex(x, y int) int {
	return x + y*BoardSize
}

func moveToIndex(m Move) (int, bool) {
	if !m.IsValid() {
		return 0, false
	}
	return cellIndex(m.X, m.Y), true
}

func MoveFromIndex(i int) (Move, bool) {
	if i < 0 || i >= BoardSize*BoardSize {
		return Move{}, false
	}
	return Move{X: i % BoardSize, Y: i / BoardSize}, true
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}
