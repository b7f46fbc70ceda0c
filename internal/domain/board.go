package domain

import (
	"fmt"
	"strings"
)

// Board is the 6x7 grid. Row 0 is the bottom row, pieces fall towards it.
// Board is a value type: assigning it copies every cell.
type Board [Rows][Columns]Piece

func NewBoard() Board {
	return Board{}
}

// BoardFromGrid converts a wire grid (grid[row][column], row 0 at the
// bottom) into a Board. The grid must be exactly Rows x Columns and hold
// only 0, 1 or 2.
func BoardFromGrid(grid [][]int) (Board, error) {
	var b Board
	if len(grid) != Rows {
		return b, fmt.Errorf("%w: got %d rows", ErrInvalidBoardShape, len(grid))
	}
	for r, row := range grid {
		if len(row) != Columns {
			return b, fmt.Errorf("%w: row %d has %d columns", ErrInvalidBoardShape, r, len(row))
		}
		for c, v := range row {
			p := Piece(v)
			if p != Empty && !p.IsPlayer() {
				return b, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoardShape, r, c, v)
			}
			b[r][c] = p
		}
	}
	return b, nil
}

// Grid converts the board back to its wire form.
func (b *Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for r := range grid {
		grid[r] = make([]int, Columns)
		for c := range grid[r] {
			grid[r][c] = int(b[r][c])
		}
	}
	return grid
}

// Key is a compact string of the 42 cells, bottom row first.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			sb.WriteByte(byte('0' + b[r][c]))
		}
	}
	return sb.String()
}

func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	// top row decides whether the column still has room
	return b[Rows-1][column] == Empty
}

// ValidColumns returns every playable column in ascending order.
func (b *Board) ValidColumns() []int {
	cols := make([]int, 0, Columns)
	for c := 0; c < Columns; c++ {
		if b[Rows-1][c] == Empty {
			cols = append(cols, c)
		}
	}
	return cols
}

// NextOpenRow returns the lowest empty row of column.
func (b *Board) NextOpenRow(column int) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}
	for r := 0; r < Rows; r++ {
		if b[r][column] == Empty {
			return r, nil
		}
	}
	return -1, ErrColumnFull
}

// PlacePiece returns a copy of the board with (row, column) set to piece.
// The receiver is left untouched.
func (b Board) PlacePiece(row, column int, piece Piece) Board {
	b[row][column] = piece
	return b
}

// Drop puts piece in the lowest empty row of column, in place, and returns
// that row. Use Lift with the same column to undo it.
func (b *Board) Drop(column int, piece Piece) (int, error) {
	row, err := b.NextOpenRow(column)
	if err != nil {
		return -1, err
	}
	b[row][column] = piece
	return row, nil
}

// Lift clears the given cell. It is the undo half of Drop.
func (b *Board) Lift(row, column int) {
	b[row][column] = Empty
}

// SimulateMove drops piece on a copy of the board.
func (b Board) SimulateMove(column int, piece Piece) (Board, int, error) {
	row, err := b.Drop(column, piece)
	if err != nil {
		return b, -1, err
	}
	return b, row, nil
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[Rows-1][c] == Empty {
			return false
		}
	}
	return true
}

// CountInColumn counts how many cells of column hold piece.
func (b *Board) CountInColumn(column int, piece Piece) int {
	count := 0
	for r := 0; r < Rows; r++ {
		if b[r][column] == piece {
			count++
		}
	}
	return count
}

// MoveCount is the number of occupied cells.
func (b *Board) MoveCount() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}
