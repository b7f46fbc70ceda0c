package arena

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
)

func TestRunTallies(t *testing.T) {
	is := is.New(t)
	cfg := Config{Games: 6, DepthA: 2, DepthB: 1, Workers: 3, Seed: 11, OpeningMoves: 2}

	s, err := Run(context.Background(), cfg)
	is.NoErr(err)
	is.Equal(s.Games, 6)
	is.Equal(s.WinsA+s.WinsB+s.Draws, 6)
	is.Equal(len(s.Records), 6)

	moves := 0
	for i, rec := range s.Records {
		is.Equal(rec.Index, i)
		is.Equal(rec.AFirst, i%2 == 0)
		is.True(rec.Moves >= 7)
		is.True(rec.Board.IsTerminal())
		if rec.Winner != domain.Empty {
			is.True(rec.Board.IsWinningPosition(rec.Winner))
		}
		moves += rec.Moves
	}
	is.Equal(s.Moves, moves)

	// Elo is zero-sum
	is.True(math.Abs(s.RatingA+s.RatingB-2*InitialRating) < 1e-6)
	last := s.LastBoard()
	is.True(last.IsTerminal())
}

func TestRunIsRepeatable(t *testing.T) {
	is := is.New(t)
	cfg := Config{Games: 4, DepthA: 2, DepthB: 2, Workers: 4, Seed: 3, OpeningMoves: 3}

	a, err := Run(context.Background(), cfg)
	is.NoErr(err)
	cfg.Workers = 1
	b, err := Run(context.Background(), cfg)
	is.NoErr(err)

	for i := range a.Records {
		is.Equal(a.Records[i].Board, b.Records[i].Board)
		is.Equal(a.Records[i].Winner, b.Records[i].Winner)
	}
}

func TestRunErrors(t *testing.T) {
	is := is.New(t)
	_, err := Run(context.Background(), Config{})
	is.True(errors.Is(err, ErrNoGames))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Config{Games: 2, DepthA: 1, DepthB: 1})
	is.True(errors.Is(err, context.Canceled))
}

func TestWinnerIsA(t *testing.T) {
	is := is.New(t)
	is.True(GameRecord{AFirst: true, Winner: domain.Player1}.WinnerIsA())
	is.True(!GameRecord{AFirst: true, Winner: domain.Player2}.WinnerIsA())
	is.True(GameRecord{AFirst: false, Winner: domain.Player2}.WinnerIsA())
	is.True(!GameRecord{AFirst: false, Winner: domain.Empty}.WinnerIsA())
}
