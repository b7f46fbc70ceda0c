package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamasit07/4-in-a-row/bot/internal/service/decision"
)

// MoveRepo stores decisions and finished games. It satisfies
// decision.Recorder.
type MoveRepo struct {
	DB *sql.DB
}

func NewMoveRepo(db *sql.DB) *MoveRepo {
	return &MoveRepo{DB: db}
}

func (r *MoveRepo) SaveDecision(ctx context.Context, d *decision.Decision, board [][]int) error {
	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	query := `
	INSERT INTO decisions (id, game_id, player_turn_id, board_state, column_played, blocked, cached, depth, score, nodes, elapsed_ms, created_at)
	VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (id) DO NOTHING;
	`
	_, err = r.DB.ExecContext(ctx, query, d.ID, d.GameID, d.PlayerTurnID, boardJSON, d.Column,
		d.Blocked, d.Cached, d.Depth, d.Score, d.Nodes, d.Elapsed.Milliseconds(), d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert decision: %w", err)
	}
	return nil
}

// SaveResult upserts a finished game; the coordinator may send finish twice.
func (r *MoveRepo) SaveResult(ctx context.Context, res *decision.Result) error {
	boardJSON, err := json.Marshal(res.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	query := `
	INSERT INTO games (game_id, player_turn_id, winner_turn_id, won, board_state, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_turn_id = EXCLUDED.winner_turn_id,
		won = EXCLUDED.won,
		board_state = EXCLUDED.board_state,
		finished_at = EXCLUDED.finished_at;
	`
	_, err = r.DB.ExecContext(ctx, query, res.GameID, res.PlayerTurnID, res.WinnerTurnID,
		res.Won(), boardJSON, res.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

// DeleteDecisionsOlderThan removes decisions created before cutoff and
// returns how many rows went.
func (r *MoveRepo) DeleteDecisionsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM decisions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old decisions: %w", err)
	}
	return res.RowsAffected()
}

// Stats summarises the finished games this player recorded.
type Stats struct {
	Games int `json:"games"`
	Wins  int `json:"wins"`
	Draws int `json:"draws"`
}

func (r *MoveRepo) GetStats(ctx context.Context) (*Stats, error) {
	query := `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE won),
	       COUNT(*) FILTER (WHERE winner_turn_id = 0)
	FROM games;
	`
	var s Stats
	if err := r.DB.QueryRowContext(ctx, query).Scan(&s.Games, &s.Wins, &s.Draws); err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	return &s, nil
}
