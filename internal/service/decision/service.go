package decision

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/bot"
)

// Cache stores finished decisions keyed by position. Any Get error is
// treated as a miss.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// Recorder persists decisions and finished games.
type Recorder interface {
	SaveDecision(ctx context.Context, d *Decision, board [][]int) error
	SaveResult(ctx context.Context, r *Result) error
}

// Publisher emits analytics events. It must not block on failure.
type Publisher interface {
	Publish(ctx context.Context, event string, payload map[string]any)
}

// Request is one "your turn" notification.
type Request struct {
	GameID       string  `json:"game_id"`
	PlayerTurnID int     `json:"player_turn_id"`
	Board        [][]int `json:"board"`
	Difficulty   string  `json:"difficulty,omitempty"`
}

// Decision is the answer to a Request.
type Decision struct {
	ID           string        `json:"id"`
	GameID       string        `json:"game_id,omitempty"`
	PlayerTurnID int           `json:"player_turn_id"`
	Column       int           `json:"column"`
	Blocked      bool          `json:"blocked"`
	Depth        int           `json:"depth"`
	Score        int64         `json:"score"`
	Nodes        int           `json:"nodes"`
	Cached       bool          `json:"cached"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Result is a finished game as reported by the coordination service.
type Result struct {
	GameID       string    `json:"game_id"`
	PlayerTurnID int       `json:"player_turn_id"`
	WinnerTurnID int       `json:"winner_turn_id"`
	Board        [][]int   `json:"board"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Won reports whether the recorded player won the game.
func (r *Result) Won() bool {
	return r.WinnerTurnID != 0 && r.WinnerTurnID == r.PlayerTurnID
}

type Config struct {
	Cache    Cache // Optional, can be nil
	CacheTTL time.Duration
	Recorder Recorder  // Optional, can be nil
	Events   Publisher // Optional, can be nil
	// MoveTimeout bounds each search; zero means search to full depth.
	MoveTimeout time.Duration
}

// Service is the entry point used by every transport: it validates the
// incoming grid, asks the engine and reports what happened.
type Service struct {
	engine *bot.Engine
	cfg    Config
}

func NewService(engine *bot.Engine, cfg Config) *Service {
	return &Service{engine: engine, cfg: cfg}
}

func (s *Service) Engine() *bot.Engine {
	return s.engine
}

// Decide answers a turn notification with a column.
func (s *Service) Decide(ctx context.Context, req Request) (*Decision, error) {
	start := time.Now()

	board, err := domain.BoardFromGrid(req.Board)
	if err != nil {
		return nil, err
	}
	piece := domain.Piece(req.PlayerTurnID)
	if !piece.IsPlayer() {
		return nil, fmt.Errorf("%w: player_turn_id %d", domain.ErrInvalidPiece, req.PlayerTurnID)
	}
	if len(board.ValidColumns()) == 0 {
		return nil, domain.ErrNoValidMove
	}

	depth := bot.ParseDifficulty(req.Difficulty).Depth(s.engine.Depth())
	key := cacheKey(piece, depth, &board)

	d := &Decision{
		ID:           uuid.NewString(),
		GameID:       req.GameID,
		PlayerTurnID: req.PlayerTurnID,
		Depth:        depth,
		CreatedAt:    start.UTC(),
	}

	if col, ok := s.lookup(ctx, key, &board); ok {
		d.Column = col
		d.Cached = true
	} else {
		searchCtx := ctx
		if s.cfg.MoveTimeout > 0 {
			var cancel context.CancelFunc
			searchCtx, cancel = context.WithTimeout(ctx, s.cfg.MoveTimeout)
			defer cancel()
		}
		choice, err := s.engine.Play(searchCtx, board, piece, depth)
		if err != nil {
			return nil, err
		}
		d.Column = choice.Column
		d.Blocked = choice.Blocked
		d.Score = choice.Score
		d.Nodes = choice.Nodes
		if !choice.Blocked {
			d.Depth = choice.Depth
		}
		// a search cut short by the deadline is not the answer for this key
		if choice.Blocked || choice.Depth == depth {
			s.store(ctx, key, d.Column)
		}
	}
	d.Elapsed = time.Since(start)

	log.Info().Str("component", "decision").Str("game_id", d.GameID).
		Int("player", d.PlayerTurnID).Int("column", d.Column).
		Bool("blocked", d.Blocked).Bool("cached", d.Cached).
		Int("depth", d.Depth).Dur("elapsed", d.Elapsed).Msg("move decided")

	if s.cfg.Recorder != nil {
		if err := s.cfg.Recorder.SaveDecision(ctx, d, req.Board); err != nil {
			log.Warn().Err(err).Str("decision_id", d.ID).Msg("failed to record decision")
		}
	}
	if s.cfg.Events != nil {
		s.cfg.Events.Publish(ctx, "move_decided", map[string]any{
			"decision_id":    d.ID,
			"game_id":        d.GameID,
			"player_turn_id": d.PlayerTurnID,
			"column":         d.Column,
			"blocked":        d.Blocked,
			"cached":         d.Cached,
			"depth":          d.Depth,
			"elapsed_ms":     d.Elapsed.Milliseconds(),
		})
	}
	return d, nil
}

// RecordResult stores a finished game and publishes it.
func (s *Service) RecordResult(ctx context.Context, r *Result) error {
	if _, err := domain.BoardFromGrid(r.Board); err != nil {
		return err
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now().UTC()
	}

	log.Info().Str("component", "decision").Str("game_id", r.GameID).
		Int("player", r.PlayerTurnID).Int("winner", r.WinnerTurnID).Msg("game finished")

	var saveErr error
	if s.cfg.Recorder != nil {
		if err := s.cfg.Recorder.SaveResult(ctx, r); err != nil {
			saveErr = fmt.Errorf("failed to save result for game %s: %w", r.GameID, err)
		}
	}
	if s.cfg.Events != nil {
		s.cfg.Events.Publish(ctx, "game_finished", map[string]any{
			"game_id":        r.GameID,
			"player_turn_id": r.PlayerTurnID,
			"winner_turn_id": r.WinnerTurnID,
			"won":            r.Won(),
		})
	}
	return saveErr
}

func (s *Service) lookup(ctx context.Context, key string, board *domain.Board) (int, bool) {
	if s.cfg.Cache == nil {
		return 0, false
	}
	val, err := s.cfg.Cache.Get(ctx, key)
	if err != nil {
		return 0, false
	}
	col, err := strconv.Atoi(val)
	if err != nil || !board.IsValidMove(col) {
		log.Warn().Str("key", key).Str("value", val).Msg("ignoring unusable cached decision")
		return 0, false
	}
	return col, true
}

func (s *Service) store(ctx context.Context, key string, column int) {
	if s.cfg.Cache == nil {
		return
	}
	if err := s.cfg.Cache.Set(ctx, key, strconv.Itoa(column), s.cfg.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache decision")
	}
}

func cacheKey(piece domain.Piece, depth int, board *domain.Board) string {
	return fmt.Sprintf("decision:%d:%d:%s", piece, depth, board.Key())
}

// IsClientError reports whether err was caused by a malformed request.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidBoardShape) || errors.Is(err, domain.ErrInvalidPiece)
}
