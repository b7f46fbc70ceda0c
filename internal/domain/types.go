package domain

// Piece is the content of a board cell. On the wire it is a plain integer.
type Piece int

const (
	Empty   Piece = 0
	Player1 Piece = 1
	Player2 Piece = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4

	// CenterColumn gets a bonus from the evaluator.
	CenterColumn = Columns / 2
)

// IsPlayer reports whether p identifies one of the two players.
func (p Piece) IsPlayer() bool {
	return p == Player1 || p == Player2
}

// Opponent returns the other player's piece. Anything that is not
// Player2 is treated as Player1, so validate with IsPlayer first.
func (p Piece) Opponent() Piece {
	if p == Player2 {
		return Player1
	}
	return Player2
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidBoardShape Error = "board is not a 6x7 grid of empty, player 1 or player 2 cells"
	ErrInvalidPiece      Error = "piece must be player 1 or player 2"
	ErrNoValidMove       Error = "no valid move: board is full"
	ErrColumnFull        Error = "column is full"
	ErrInvalidMove       Error = "invalid move"
)
