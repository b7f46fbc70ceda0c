package bot

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
)

// Choice is a decided move plus how it was reached.
type Choice struct {
	Column int
	// Blocked is set when the column was picked to stop an immediate
	// opponent win and no search ran.
	Blocked bool
	Score   int64
	Depth   int
	Nodes   int
}

// Engine picks columns: first it blocks any one-move opponent win, then it
// falls back to alpha-beta search.
type Engine struct {
	depth     int
	alternate bool

	mu  sync.Mutex // frand.RNG is not safe for concurrent use
	rng *frand.RNG
}

type Option func(*Engine)

// WithDepth sets the search horizon. Values below 1 are ignored.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

// WithSeed makes the engine's random choices reproducible. A zero seed
// keeps the default entropy-seeded source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = seededRNG(seed)
		}
	}
}

// WithAlternatingPieces switches the search to drop the opponent's piece on
// minimizing plies.
func WithAlternatingPieces(on bool) Option {
	return func(e *Engine) {
		e.alternate = on
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		depth: DefaultDepth,
		rng:   frand.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func seededRNG(seed int64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, uint64(seed))
	return frand.NewCustom(key, 1024, 12)
}

func (e *Engine) Depth() int {
	return e.depth
}

// Decide returns the column piece should play on board.
func (e *Engine) Decide(board domain.Board, piece domain.Piece) (int, error) {
	choice, err := e.Choose(board, piece)
	if err != nil {
		return -1, err
	}
	return choice.Column, nil
}

// Choose is Decide with the search details attached.
func (e *Engine) Choose(board domain.Board, piece domain.Piece) (Choice, error) {
	return e.Play(context.Background(), board, piece, e.depth)
}

// DecideContext searches with iterative deepening when ctx carries a
// deadline and returns the deepest fully searched answer once it expires.
func (e *Engine) DecideContext(ctx context.Context, board domain.Board, piece domain.Piece) (Choice, error) {
	return e.Play(ctx, board, piece, e.depth)
}

// Play decides a move at the given depth. Without a deadline on ctx the
// search is a single pass at depth; with one it deepens from 1 up to depth.
func (e *Engine) Play(ctx context.Context, board domain.Board, piece domain.Piece, depth int) (Choice, error) {
	if !piece.IsPlayer() {
		return Choice{}, fmt.Errorf("%w: got %d", domain.ErrInvalidPiece, piece)
	}
	valid := board.ValidColumns()
	if len(valid) == 0 {
		return Choice{}, domain.ErrNoValidMove
	}
	if depth < 1 {
		depth = e.depth
	}

	if col, ok := FindBlockingMove(board, piece.Opponent()); ok {
		log.Debug().Int("player", int(piece)).Int("column", col).Msg("blocking opponent win")
		return Choice{Column: col, Blocked: true}, nil
	}

	var (
		res   SearchResult
		nodes int
	)
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		res, depth, nodes = e.deepen(ctx, board, piece, depth)
	} else {
		s := &Searcher{AlternatePieces: e.alternate}
		res = s.Search(board, depth, NegInf, PosInf, true, piece)
		nodes = s.Nodes
	}

	choice := Choice{Column: res.Column, Score: res.Score, Depth: depth, Nodes: nodes}
	if !res.HasColumn {
		// terminal root: the search has no move to report
		choice.Column = valid[e.intn(len(valid))]
	}
	log.Debug().Int("player", int(piece)).Int("column", choice.Column).
		Int64("score", choice.Score).Int("depth", depth).Int("nodes", nodes).
		Msg("search finished")
	return choice, nil
}

// FindBlockingMove returns the first column, in ascending order, where
// opponent would complete four in a row.
func FindBlockingMove(board domain.Board, opponent domain.Piece) (int, bool) {
	for _, col := range board.ValidColumns() {
		sim, _, err := board.SimulateMove(col, opponent)
		if err != nil {
			continue
		}
		if sim.IsWinningPosition(opponent) {
			return col, true
		}
	}
	return -1, false
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}
