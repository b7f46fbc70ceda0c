// Package arena plays engines against each other to compare search
// settings.
package arena

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/bot"
)

const InitialRating = 1500.0

type Config struct {
	Games   int
	DepthA  int
	DepthB  int
	Workers int
	// Seed drives the random opening of every game; game i uses Seed+i.
	Seed int64
	// OpeningMoves random plies are played before the engines take over,
	// otherwise every game with the same first mover would be identical.
	OpeningMoves    int
	AlternatePieces bool
}

// GameRecord is the outcome of one game. A plays first in even games.
type GameRecord struct {
	Index  int
	AFirst bool
	Winner domain.Piece
	Moves  int
	Board  domain.Board
}

// WinnerIsA reports whether engine A won this game.
func (g GameRecord) WinnerIsA() bool {
	return g.Winner != domain.Empty && (g.Winner == domain.Player1) == g.AFirst
}

type Summary struct {
	Games   int
	WinsA   int
	WinsB   int
	Draws   int
	Moves   int
	RatingA float64
	RatingB float64
	Elapsed time.Duration
	Records []GameRecord
}

// LastBoard returns the final position of the highest numbered game.
func (s *Summary) LastBoard() domain.Board {
	if len(s.Records) == 0 {
		return domain.NewBoard()
	}
	return s.Records[len(s.Records)-1].Board
}

var ErrNoGames = errors.New("arena: games must be positive")

// Run plays cfg.Games games with at most cfg.Workers in flight.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if cfg.Games <= 0 {
		return nil, ErrNoGames
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	start := time.Now()
	records := make([]GameRecord, cfg.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		g.Go(func() error {
			rec, err := playGame(gctx, cfg, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Summary{Games: cfg.Games, RatingA: InitialRating, RatingB: InitialRating, Records: records}
	for _, rec := range records {
		s.Moves += rec.Moves
		score := 0.5
		switch {
		case rec.Winner == domain.Empty:
			s.Draws++
		case rec.WinnerIsA():
			s.WinsA++
			score = 1
		default:
			s.WinsB++
			score = 0
		}
		s.RatingA, s.RatingB = domain.UpdateRatings(s.RatingA, s.RatingB, score)
	}
	s.Elapsed = time.Since(start)

	log.Info().Str("component", "arena").Int("games", s.Games).Int("wins_a", s.WinsA).
		Int("wins_b", s.WinsB).Int("draws", s.Draws).Dur("elapsed", s.Elapsed).Msg("arena finished")
	return s, nil
}

func playGame(ctx context.Context, cfg Config, index int) (GameRecord, error) {
	seed := cfg.Seed + int64(index)
	rng := newRNG(seed)
	engineA := bot.NewEngine(bot.WithDepth(cfg.DepthA), bot.WithSeed(seed), bot.WithAlternatingPieces(cfg.AlternatePieces))
	engineB := bot.NewEngine(bot.WithDepth(cfg.DepthB), bot.WithSeed(seed), bot.WithAlternatingPieces(cfg.AlternatePieces))

	rec := GameRecord{Index: index, AFirst: index%2 == 0}
	engines := map[domain.Piece]*bot.Engine{domain.Player1: engineA, domain.Player2: engineB}
	if !rec.AFirst {
		engines[domain.Player1], engines[domain.Player2] = engineB, engineA
	}

	game := domain.NewGame(domain.Player1)
	for ply := 0; !game.IsFinished(); ply++ {
		if err := ctx.Err(); err != nil {
			return rec, err
		}

		var col int
		if ply < cfg.OpeningMoves {
			valid := game.Board.ValidColumns()
			col = valid[rng.Intn(len(valid))]
		} else {
			choice, err := engines[game.CurrentPlayer].Play(ctx, game.Board, game.CurrentPlayer, 0)
			if err != nil {
				return rec, err
			}
			col = choice.Column
		}
		if _, err := game.MakeMove(game.CurrentPlayer, col); err != nil {
			return rec, err
		}
	}

	rec.Winner = game.Winner
	rec.Moves = game.MoveCount
	rec.Board = game.Board
	log.Debug().Str("component", "arena").Int("game", index).Int("winner", int(rec.Winner)).
		Int("moves", rec.Moves).Msg("game finished")
	return rec, nil
}

func newRNG(seed int64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, uint64(seed))
	return frand.NewCustom(key, 1024, 12)
}
