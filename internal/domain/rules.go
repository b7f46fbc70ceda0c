package domain

import "iter"

// Window is a run of ToWin consecutive cells along one direction.
type Window [ToWin]Piece

// Count returns how many cells of the window hold piece.
func (w Window) Count(piece Piece) int {
	n := 0
	for _, p := range w {
		if p == piece {
			n++
		}
	}
	return n
}

// direction deltas as (row, column); row grows upwards
var (
	Vertical     = [2]int{1, 0}
	Horizontal   = [2]int{0, 1}
	DiagonalUp   = [2]int{1, 1}
	DiagonalDown = [2]int{-1, 1}
)

// Directions lists the four window directions in scan order.
var Directions = [4][2]int{Vertical, Horizontal, DiagonalUp, DiagonalDown}

// Windows yields every window on the board: vertical, then horizontal,
// then diagonal up-right, then diagonal down-right.
func (b *Board) Windows() iter.Seq[Window] {
	return func(yield func(Window) bool) {
		for _, d := range Directions {
			for r := 0; r < Rows; r++ {
				for c := 0; c < Columns; c++ {
					w, ok := b.window(r, c, d)
					if !ok {
						continue
					}
					if !yield(w) {
						return
					}
				}
			}
		}
	}
}

// window reads the ToWin cells starting at (row, column) along d.
func (b *Board) window(row, column int, d [2]int) (Window, bool) {
	var w Window
	endRow, endCol := row+d[0]*(ToWin-1), column+d[1]*(ToWin-1)
	if !inBounds(endRow, endCol) {
		return w, false
	}
	for i := 0; i < ToWin; i++ {
		w[i] = b[row+d[0]*i][column+d[1]*i]
	}
	return w, true
}

// IsWinningPosition reports whether piece owns any full window.
func (b *Board) IsWinningPosition(piece Piece) bool {
	for w := range b.Windows() {
		if w.Count(piece) == ToWin {
			return true
		}
	}
	return false
}

// IsTerminal reports whether either player has won or the board is full.
func (b *Board) IsTerminal() bool {
	return b.IsWinningPosition(Player1) || b.IsWinningPosition(Player2) || b.IsFull()
}

// CheckWin only looks at lines through (row, column), which is enough
// right after a piece was dropped there.
func CheckWin(b *Board, row, column int, piece Piece) bool {
	for _, d := range Directions {
		count := 1 + CountInDirection(b, row, column, d[0], d[1], piece) +
			CountInDirection(b, row, column, -d[0], -d[1], piece)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// CountInDirection counts consecutive cells holding piece, starting next
// to (row, column) and walking by (deltaRow, deltaCol).
func CountInDirection(b *Board, row, column, deltaRow, deltaCol int, piece Piece) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for inBounds(r, c) && b[r][c] == piece {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

func inBounds(row, column int) bool {
	return row >= 0 && row < Rows && column >= 0 && column < Columns
}
