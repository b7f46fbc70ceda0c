// Command arena plays two engine depths against each other and prints
// the tally.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/bot/internal/config"
	"github.com/iamasit07/4-in-a-row/bot/internal/presenter"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/arena"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	games := flag.Int("games", cfg.ArenaGames, "number of games")
	depthA := flag.Int("a", cfg.ArenaDepthA, "search depth of engine A")
	depthB := flag.Int("b", cfg.ArenaDepthB, "search depth of engine B")
	workers := flag.Int("workers", cfg.ArenaWorkers, "games played concurrently")
	openings := flag.Int("openings", 2, "random opening plies")
	seed := flag.Int64("seed", int64(cfg.RandomSeed), "seed for openings and engines")
	flag.Parse()

	config.SetupLogging(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := arena.Run(ctx, arena.Config{
		Games:           *games,
		DepthA:          *depthA,
		DepthB:          *depthB,
		Workers:         *workers,
		Seed:            *seed,
		OpeningMoves:    *openings,
		AlternatePieces: cfg.AlternatePieces,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("arena failed")
	}

	fmt.Printf("A (depth %d): %d wins, rating %.0f\n", *depthA, summary.WinsA, summary.RatingA)
	fmt.Printf("B (depth %d): %d wins, rating %.0f\n", *depthB, summary.WinsB, summary.RatingB)
	fmt.Printf("draws: %d, moves: %d, elapsed: %s\n\n", summary.Draws, summary.Moves, summary.Elapsed)

	last := summary.Records[len(summary.Records)-1]
	board := summary.LastBoard()
	if err := presenter.RenderResult(os.Stdout, &board, last.Winner); err != nil {
		log.Error().Err(err).Msg("render failed")
	}
}
