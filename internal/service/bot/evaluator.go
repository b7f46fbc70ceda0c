package bot

import (
	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
)

// Window weights, all from the point of view of the piece being scored.
const (
	ScoreFour          = 100
	ScoreThree         = 5
	ScoreTwo           = 2
	ScoreOpponentThree = -80
	ScoreOpponentTwo   = -2

	// CenterWeight is paid for every own piece in the center column.
	CenterWeight = 3
)

// ScoreWindow scores one run of four cells for piece.
func ScoreWindow(w domain.Window, piece domain.Piece) int {
	mine := w.Count(piece)
	theirs := w.Count(piece.Opponent())
	empty := w.Count(domain.Empty)

	score := 0
	switch {
	case mine == 4:
		score += ScoreFour
	case mine == 3 && empty == 1:
		score += ScoreThree
	case mine == 2 && empty == 2:
		score += ScoreTwo
	}

	switch {
	case theirs == 3 && empty == 1:
		score += ScoreOpponentThree
	case theirs == 2 && empty == 2:
		score += ScoreOpponentTwo
	}
	return score
}

// ScorePosition is the static evaluation used at the search horizon. It is
// only meaningful for boards that are not terminal.
func ScorePosition(b *domain.Board, piece domain.Piece) int {
	score := CenterWeight * b.CountInColumn(domain.CenterColumn, piece)
	for w := range b.Windows() {
		score += ScoreWindow(w, piece)
	}
	return score
}
