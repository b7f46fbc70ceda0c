package bot

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
)

// deepen searches depth 1, 2, ... maxDepth until ctx expires and returns
// the result of the deepest search that finished, with that depth and the
// total node count. Depth 1 always runs to completion so there is always
// an answer.
func (e *Engine) deepen(ctx context.Context, board domain.Board, piece domain.Piece, maxDepth int) (SearchResult, int, int) {
	s := &Searcher{AlternatePieces: e.alternate}
	best := s.Search(board, 1, NegInf, PosInf, true, piece)
	reached := 1

	for depth := 2; depth <= maxDepth; depth++ {
		res, err := s.SearchContext(ctx, board, depth, NegInf, PosInf, true, piece)
		if err != nil {
			log.Debug().Int("completed-depth", reached).Int("nodes", s.Nodes).
				Err(err).Msg("deadline hit during iterative deepening")
			break
		}
		best = res
		reached = depth
	}
	return best, reached, s.Nodes
}
