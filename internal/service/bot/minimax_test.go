package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
)

// fullMinimax is the unpruned reference search.
func fullMinimax(b domain.Board, depth int, maximizing bool, piece domain.Piece, alternate bool) int64 {
	terminal := b.IsTerminal()
	if depth == 0 || terminal {
		switch {
		case !terminal:
			return int64(ScorePosition(&b, piece))
		case b.IsWinningPosition(piece):
			return WinScore
		case alternate && b.IsWinningPosition(piece.Opponent()):
			return -WinScore
		default:
			return 0
		}
	}
	mover := piece
	if alternate && !maximizing {
		mover = piece.Opponent()
	}
	best := PosInf
	if maximizing {
		best = NegInf
	}
	for _, col := range b.ValidColumns() {
		child, _, _ := b.SimulateMove(col, mover)
		v := fullMinimax(child, depth-1, !maximizing, piece, alternate)
		if maximizing {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}
	return best
}

// randomBoard plays up to moves random legal moves from an empty board,
// stopping early if the game ends.
func randomBoard(rng interface{ Intn(int) int }, moves int) domain.Board {
	g := domain.NewGame(domain.Player1)
	for i := 0; i < moves && !g.IsFinished(); i++ {
		valid := g.Board.ValidColumns()
		_, _ = g.MakeMove(g.CurrentPlayer, valid[rng.Intn(len(valid))])
	}
	return g.Board
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	rng := seededRNG(42)
	for i := 0; i < 25; i++ {
		b := randomBoard(rng, 6+rng.Intn(18))
		for _, piece := range []domain.Piece{domain.Player1, domain.Player2} {
			for _, alternate := range []bool{false, true} {
				is := is.New(t)
				s := &Searcher{AlternatePieces: alternate}
				got := s.Search(b, 4, NegInf, PosInf, true, piece)
				want := fullMinimax(b, 4, true, piece, alternate)
				is.Equal(got.Score, want)
			}
		}
	}
}

func TestSearchDoesNotTouchBoard(t *testing.T) {
	is := is.New(t)
	b := randomBoard(seededRNG(7), 10)
	before := b
	s := &Searcher{}
	s.Search(b, 4, NegInf, PosInf, true, domain.Player1)
	is.Equal(b, before)
	is.True(s.Nodes > 1)
}

func TestSearchLeafHasNoColumn(t *testing.T) {
	is := is.New(t)
	s := &Searcher{}
	res := s.Search(domain.NewBoard(), 0, NegInf, PosInf, true, domain.Player1)
	is.True(!res.HasColumn)
	is.Equal(res.Score, int64(0))

	won := domain.NewBoard()
	for c := 0; c < 4; c++ {
		won[0][c] = domain.Player2
	}
	res = s.Search(won, 5, NegInf, PosInf, true, domain.Player2)
	is.True(!res.HasColumn)
	is.Equal(res.Score, WinScore)

	// an opponent win is neutral unless pieces alternate
	res = s.Search(won, 5, NegInf, PosInf, true, domain.Player1)
	is.Equal(res.Score, int64(0))
	strict := &Searcher{AlternatePieces: true}
	res = strict.Search(won, 5, NegInf, PosInf, true, domain.Player1)
	is.Equal(res.Score, -WinScore)
}

func TestSearchPrefersCenterAtDepthOne(t *testing.T) {
	is := is.New(t)
	s := &Searcher{}
	res := s.Search(domain.NewBoard(), 1, NegInf, PosInf, true, domain.Player1)
	is.True(res.HasColumn)
	is.Equal(res.Column, domain.CenterColumn)
	is.Equal(res.Score, int64(CenterWeight))
}

func TestSearchTiesKeepFirstColumn(t *testing.T) {
	is := is.New(t)
	// piece 1 can win in column 0 or column 4; both score WinScore
	b := domain.NewBoard()
	for c := 1; c <= 3; c++ {
		b[0][c] = domain.Player1
	}
	s := &Searcher{}
	res := s.Search(b, 1, NegInf, PosInf, true, domain.Player1)
	is.Equal(res.Column, 0)
	is.Equal(res.Score, WinScore)
}

func TestSearchContextCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Searcher{}
	_, err := s.SearchContext(ctx, domain.NewBoard(), 8, NegInf, PosInf, true, domain.Player1)
	is.True(errors.Is(err, context.Canceled))

	ctx, cancel = context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	res, err := s.SearchContext(ctx, domain.NewBoard(), 1, NegInf, PosInf, true, domain.Player1)
	is.NoErr(err)
	is.Equal(res.Column, domain.CenterColumn)
}
