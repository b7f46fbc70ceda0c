package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
	"github.com/matryer/is"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/decision"
)

type results struct {
	saved []*decision.Result
}

func (r *results) SaveDecision(context.Context, *decision.Decision, [][]int) error { return nil }

func (r *results) SaveResult(_ context.Context, res *decision.Result) error {
	r.saved = append(r.saved, res)
	return nil
}

func blockGrid() [][]int {
	g := make([][]int, domain.Rows)
	for r := range g {
		g[r] = make([]int, domain.Columns)
	}
	g[0][0] = 1
	g[0][1], g[0][2], g[0][3] = 2, 2, 2
	return g
}

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

// coordinator plays one game against the client and reports every frame
// the client sent.
func coordinator(t *testing.T, got chan<- Message) *httptest.Server {
	upgrader := websocket.Upgrader{}
	grid := blockGrid()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		defer close(got)

		read := func() bool {
			var m Message
			if err := conn.ReadJSON(&m); err != nil {
				return false
			}
			got <- m
			return true
		}

		if !read() {
			return
		}
		conn.WriteJSON(Message{Event: EventOKSignin})
		conn.WriteJSON(Message{Event: EventReady, Data: mustRaw(t, map[string]any{
			"game_id": 17, "player_turn_id": 1, "board": grid,
		})})
		if !read() {
			return
		}
		conn.WriteJSON(Message{Event: "unknown"})
		conn.WriteJSON(Message{Event: EventFinish, Data: mustRaw(t, map[string]any{
			"game_id": 17, "player_turn_id": 1, "winner_turn_id": 2, "board": grid,
		})})
		if !read() {
			return
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		conn.ReadMessage()
	}))
}

func TestPlayerPlaysOneGame(t *testing.T) {
	is := is.New(t)
	color.NoColor = true

	got := make(chan Message, 8)
	srv := coordinator(t, got)
	defer srv.Close()

	rec := &results{}
	svc := decision.NewService(bot.NewEngine(bot.WithDepth(3), bot.WithSeed(1)), decision.Config{Recorder: rec})
	var out bytes.Buffer
	p := NewPlayer(PlayerConfig{
		URL:          "ws" + strings.TrimPrefix(srv.URL, "http"),
		UserName:     "bot",
		TournamentID: 80000,
		UserRole:     "player",
		Out:          &out,
	}, svc)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	is.NoErr(p.Run(ctx))

	var sent []Message
	for m := range got {
		sent = append(sent, m)
	}
	is.Equal(len(sent), 3)

	is.Equal(sent[0].Event, EventSignin)
	var signin SigninData
	is.NoErr(json.Unmarshal(sent[0].Data, &signin))
	is.Equal(signin, SigninData{UserName: "bot", TournamentID: 80000, UserRole: "player"})

	is.Equal(sent[1].Event, EventPlay)
	is.Equal(string(sent[1].Data), `{"tournament_id":80000,"player_turn_id":1,"game_id":17,"movement":4}`)

	is.Equal(sent[2].Event, EventPlayerReady)
	is.Equal(string(sent[2].Data), `{"tournament_id":80000,"player_turn_id":1,"game_id":17}`)

	is.True(strings.HasPrefix(out.String(), "Winner: 2"))
	is.Equal(len(rec.saved), 1)
	is.Equal(rec.saved[0].GameID, "17")
	is.True(!rec.saved[0].Won())
}

func TestPlayerStopsOnCancel(t *testing.T) {
	is := is.New(t)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	svc := decision.NewService(bot.NewEngine(bot.WithDepth(1)), decision.Config{})
	p := NewPlayer(PlayerConfig{URL: "ws" + strings.TrimPrefix(srv.URL, "http"), UserName: "bot"}, svc)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	is.NoErr(p.Run(ctx))
}

func TestPlayerDialFailure(t *testing.T) {
	is := is.New(t)
	svc := decision.NewService(bot.NewEngine(bot.WithDepth(1)), decision.Config{})
	p := NewPlayer(PlayerConfig{URL: "ws://127.0.0.1:1"}, svc)
	is.True(p.Run(context.Background()) != nil)
}

func TestGameIDKeepsItsJSONType(t *testing.T) {
	is := is.New(t)
	var num, str ReadyData
	is.NoErr(json.Unmarshal([]byte(`{"game_id":42}`), &num))
	is.NoErr(json.Unmarshal([]byte(`{"game_id":"abc"}`), &str))
	is.Equal(num.GameID.String(), "42")
	is.Equal(str.GameID.String(), "abc")

	out, err := json.Marshal(PlayerReadyData{GameID: str.GameID})
	is.NoErr(err)
	is.Equal(string(out), `{"tournament_id":0,"player_turn_id":0,"game_id":"abc"}`)
}
