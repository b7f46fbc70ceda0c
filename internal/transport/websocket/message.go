package websocket

import (
	"bytes"
	"encoding/json"
)

// Message is the envelope for every frame exchanged with the
// coordination server.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound events
const (
	EventOKSignin = "ok_signin"
	EventReady    = "ready"
	EventFinish   = "finish"
)

// Outbound events
const (
	EventSignin      = "signin"
	EventPlay        = "play"
	EventPlayerReady = "player_ready"
)

type SigninData struct {
	UserName     string `json:"user_name"`
	TournamentID int    `json:"tournament_id"`
	UserRole     string `json:"user_role"`
}

// GameID is echoed back exactly as the server sent it, number or string.
type GameID json.RawMessage

func (g GameID) MarshalJSON() ([]byte, error) {
	if len(g) == 0 {
		return []byte("null"), nil
	}
	return []byte(g), nil
}

func (g *GameID) UnmarshalJSON(data []byte) error {
	*g = append((*g)[:0], data...)
	return nil
}

// String returns the id without JSON quoting.
func (g GameID) String() string {
	var s string
	if err := json.Unmarshal([]byte(g), &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace([]byte(g)))
}

type ReadyData struct {
	GameID       GameID  `json:"game_id"`
	PlayerTurnID int     `json:"player_turn_id"`
	Board        [][]int `json:"board"`
}

type FinishData struct {
	GameID       GameID  `json:"game_id"`
	PlayerTurnID int     `json:"player_turn_id"`
	WinnerTurnID int     `json:"winner_turn_id"`
	Board        [][]int `json:"board"`
}

type PlayData struct {
	TournamentID int    `json:"tournament_id"`
	PlayerTurnID int    `json:"player_turn_id"`
	GameID       GameID `json:"game_id"`
	Movement     int    `json:"movement"`
}

type PlayerReadyData struct {
	TournamentID int    `json:"tournament_id"`
	PlayerTurnID int    `json:"player_turn_id"`
	GameID       GameID `json:"game_id"`
}
