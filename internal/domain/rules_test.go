package domain

import (
	"testing"

	"github.com/matryer/is"
)

func TestWindowCount(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	n := 0
	for range b.Windows() {
		n++
	}
	// 21 vertical, 24 horizontal, 12 + 12 diagonal
	is.Equal(n, 69)
}

func TestIsWinningPosition(t *testing.T) {
	tests := []struct {
		name  string
		cells [][2]int
		want  bool
	}{
		{"horizontal", [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}}, true},
		{"vertical", [][2]int{{2, 6}, {3, 6}, {4, 6}, {5, 6}}, true},
		{"diagonal up", [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, true},
		{"diagonal down", [][2]int{{5, 2}, {4, 3}, {3, 4}, {2, 5}}, true},
		{"three only", [][2]int{{0, 0}, {0, 1}, {0, 2}}, false},
		{"broken row", [][2]int{{0, 0}, {0, 1}, {0, 3}, {0, 4}}, false},
		{"no wrap", [][2]int{{0, 5}, {0, 6}, {1, 0}, {1, 1}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			b := NewBoard()
			for _, cell := range tc.cells {
				b[cell[0]][cell[1]] = Player2
			}
			is.Equal(b.IsWinningPosition(Player2), tc.want)
			is.True(!b.IsWinningPosition(Player1))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.True(!b.IsTerminal())

	b[0][0], b[1][0], b[2][0], b[3][0] = Player1, Player1, Player1, Player1
	is.True(b.IsTerminal())

	// a full board with no four in a row is a draw
	full := drawnBoard()
	is.True(!full.IsWinningPosition(Player1))
	is.True(!full.IsWinningPosition(Player2))
	is.True(full.IsFull())
	is.True(full.IsTerminal())
}

// drawnBoard fills the grid in a pattern with no run of four.
func drawnBoard() Board {
	var b Board
	pattern := [Rows][Columns]Piece{
		{1, 1, 2, 2, 1, 1, 2},
		{2, 2, 1, 1, 2, 2, 1},
		{1, 1, 2, 2, 1, 1, 2},
		{2, 2, 1, 1, 2, 2, 1},
		{1, 1, 2, 2, 1, 1, 2},
		{2, 2, 1, 1, 2, 2, 1},
	}
	for r := range pattern {
		for c := range pattern[r] {
			b[r][c] = pattern[r][c]
		}
	}
	return b
}

func TestCheckWinThroughLastMove(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	for c := 0; c < 3; c++ {
		_, err := b.Drop(c, Player1)
		is.NoErr(err)
	}
	row, err := b.Drop(3, Player1)
	is.NoErr(err)
	is.True(CheckWin(&b, row, 3, Player1))
	is.True(!CheckWin(&b, row, 3, Player2))
}

func TestGameMakeMove(t *testing.T) {
	is := is.New(t)
	g := NewGame(Player1)

	_, err := g.MakeMove(Player2, 0)
	is.Equal(err, ErrInvalidMove)

	for i := 0; i < 3; i++ {
		_, err = g.MakeMove(Player1, 0)
		is.NoErr(err)
		_, err = g.MakeMove(Player2, 1)
		is.NoErr(err)
	}
	row, err := g.MakeMove(Player1, 0)
	is.NoErr(err)
	is.Equal(row, 3)
	is.True(g.IsFinished())
	is.Equal(g.Status, StatusWon)
	is.Equal(g.Winner, Player1)
	is.Equal(g.MoveCount, 7)

	_, err = g.MakeMove(Player2, 1)
	is.Equal(err, ErrInvalidMove)
}

func TestUpdateRatings(t *testing.T) {
	is := is.New(t)
	a, b := UpdateRatings(1500, 1500, 1)
	is.Equal(a, 1516.0)
	is.Equal(b, 1484.0)

	a, b = UpdateRatings(1500, 1500, 0.5)
	is.Equal(a, 1500.0)
	is.Equal(b, 1500.0)
}
