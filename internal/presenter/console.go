package presenter

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
)

const (
	GlyphEmpty   = "⚪"
	GlyphPlayer1 = "🔴"
	GlyphPlayer2 = "🟢"
)

var (
	emptyColor   = color.New(color.FgWhite)
	player1Color = color.New(color.FgRed)
	player2Color = color.New(color.FgGreen)
)

// Render writes b top row first, one glyph per cell.
func Render(w io.Writer, b *domain.Board) error {
	for r := domain.Rows - 1; r >= 0; r-- {
		for c := 0; c < domain.Columns; c++ {
			if err := renderCell(w, b[r][c]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// RenderResult prints the winner line followed by the board.
func RenderResult(w io.Writer, b *domain.Board, winner domain.Piece) error {
	var err error
	switch winner {
	case domain.Player1:
		_, err = player1Color.Fprintf(w, "Winner: %d %s\n", winner, GlyphPlayer1)
	case domain.Player2:
		_, err = player2Color.Fprintf(w, "Winner: %d %s\n", winner, GlyphPlayer2)
	default:
		_, err = fmt.Fprintln(w, "Draw")
	}
	if err != nil {
		return err
	}
	return Render(w, b)
}

func renderCell(w io.Writer, p domain.Piece) error {
	var err error
	switch p {
	case domain.Player1:
		_, err = player1Color.Fprint(w, GlyphPlayer1+" ")
	case domain.Player2:
		_, err = player2Color.Fprint(w, GlyphPlayer2+" ")
	default:
		_, err = emptyColor.Fprint(w, GlyphEmpty+" ")
	}
	return err
}
