package bot

import (
	"context"
	"math"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
)

const (
	// DefaultDepth is the search horizon in plies.
	DefaultDepth = 10

	// WinScore is returned for a position won by the searching piece. It
	// sits far above anything ScorePosition can produce.
	WinScore int64 = 10_000_000_000_000

	NegInf int64 = math.MinInt64
	PosInf int64 = math.MaxInt64

	// the context is polled once every this many nodes
	cancelCheckInterval = 1024
)

// SearchResult is what a search node hands back to its parent. Leaf and
// terminal nodes only carry a value; HasColumn is false for them.
type SearchResult struct {
	Column    int
	Score     int64
	HasColumn bool
}

// Searcher runs a depth-limited minimax with alpha-beta pruning. It works
// on a single private board and undoes every move on the way back up, so
// the caller's board is never touched.
//
// By default every ply drops the searching piece and only the maximizing
// flag alternates. With AlternatePieces the minimizing plies drop the
// opponent's piece instead and an opponent win scores -WinScore.
type Searcher struct {
	AlternatePieces bool

	// Nodes counts visited nodes across calls.
	Nodes int

	board   domain.Board
	piece   domain.Piece
	ctx     context.Context
	stopped bool
}

// Search returns the best column and its value for piece.
func (s *Searcher) Search(board domain.Board, depth int, alpha, beta int64, maximizing bool, piece domain.Piece) SearchResult {
	s.board = board
	s.piece = piece
	s.ctx = nil
	s.stopped = false
	return s.alphabeta(depth, alpha, beta, maximizing)
}

// SearchContext is Search with cancellation. When ctx is done before the
// tree is exhausted the partial result is discarded and ctx.Err() returned.
func (s *Searcher) SearchContext(ctx context.Context, board domain.Board, depth int, alpha, beta int64, maximizing bool, piece domain.Piece) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}
	s.board = board
	s.piece = piece
	s.ctx = ctx
	s.stopped = false
	res := s.alphabeta(depth, alpha, beta, maximizing)
	s.ctx = nil
	if s.stopped {
		return SearchResult{}, ctx.Err()
	}
	return res, nil
}

func (s *Searcher) alphabeta(depth int, alpha, beta int64, maximizing bool) SearchResult {
	s.Nodes++
	if s.ctx != nil && s.Nodes%cancelCheckInterval == 0 && s.ctx.Err() != nil {
		s.stopped = true
	}
	if s.stopped {
		return SearchResult{}
	}

	b := &s.board
	terminal := b.IsTerminal()
	if depth == 0 || terminal {
		return SearchResult{Score: s.leafScore(terminal)}
	}

	mover := s.piece
	if s.AlternatePieces && !maximizing {
		mover = s.piece.Opponent()
	}

	valid := b.ValidColumns()
	best := SearchResult{Column: valid[0], HasColumn: true}

	if maximizing {
		best.Score = NegInf
		for _, col := range valid {
			row, _ := b.Drop(col, mover)
			score := s.alphabeta(depth-1, alpha, beta, false).Score
			b.Lift(row, col)

			// ties keep the earlier column
			if score > best.Score {
				best.Score = score
				best.Column = col
			}
			alpha = max(alpha, best.Score)
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best.Score = PosInf
	for _, col := range valid {
		row, _ := b.Drop(col, mover)
		score := s.alphabeta(depth-1, alpha, beta, true).Score
		b.Lift(row, col)

		if score < best.Score {
			best.Score = score
			best.Column = col
		}
		beta = min(beta, best.Score)
		if alpha >= beta {
			break
		}
	}
	return best
}

func (s *Searcher) leafScore(terminal bool) int64 {
	b := &s.board
	if !terminal {
		return int64(ScorePosition(b, s.piece))
	}
	if b.IsWinningPosition(s.piece) {
		return WinScore
	}
	if s.AlternatePieces && b.IsWinningPosition(s.piece.Opponent()) {
		return -WinScore
	}
	// draw, or an opponent win in the default mode
	return 0
}
