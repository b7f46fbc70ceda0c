package domain

// Game tracks a full match between two players on one board.
type Game struct {
	Board         Board
	CurrentPlayer Piece
	Status        GameStatus
	Winner        Piece
	MoveCount     int
}

// NewGame starts an empty game where first moves first.
func NewGame(first Piece) *Game {
	if !first.IsPlayer() {
		first = Player1
	}
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: first,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

// MakeMove drops the current player's piece into column and advances the
// turn. It returns the row the piece landed on.
func (g *Game) MakeMove(player Piece, column int) (int, error) {
	if g.Status != StatusActive || player != g.CurrentPlayer {
		return -1, ErrInvalidMove
	}
	if !g.Board.IsValidMove(column) {
		return -1, ErrInvalidMove
	}

	row, err := g.Board.Drop(column, player)
	if err != nil {
		return -1, err
	}
	g.MoveCount++

	if CheckWin(&g.Board, row, column, player) {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}
	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
