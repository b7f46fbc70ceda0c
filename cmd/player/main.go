// Command player signs in to a tournament coordinator and plays every
// game it is offered.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/bot/internal/config"
	"github.com/iamasit07/4-in-a-row/bot/internal/repository/postgres"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/decision"
	"github.com/iamasit07/4-in-a-row/bot/internal/transport/websocket"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()
	config.SetupLogging(cfg.LogLevel, cfg.LogPretty)

	// the user name may also come as the first argument
	name := cfg.PlayerName
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcCfg := decision.Config{MoveTimeout: cfg.MoveTimeout}
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Warn().Err(err).Msg("playing without a game log")
		} else {
			defer db.Close()
			svcCfg.Recorder = postgres.NewMoveRepo(db)
		}
	}

	engine := bot.NewEngine(
		bot.WithDepth(cfg.SearchDepth),
		bot.WithSeed(int64(cfg.RandomSeed)),
		bot.WithAlternatingPieces(cfg.AlternatePieces),
	)
	player := websocket.NewPlayer(websocket.PlayerConfig{
		URL:          cfg.CoordinatorURL,
		UserName:     name,
		TournamentID: cfg.TournamentID,
		UserRole:     cfg.UserRole,
	}, decision.NewService(engine, svcCfg))

	if err := player.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("player stopped")
	}
}
