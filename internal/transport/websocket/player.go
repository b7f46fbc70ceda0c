package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/bot/internal/domain"
	"github.com/iamasit07/4-in-a-row/bot/internal/presenter"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/decision"
)

const writeWait = 10 * time.Second

// Decider picks a column for a turn notification.
type Decider interface {
	Decide(ctx context.Context, req decision.Request) (*decision.Decision, error)
	RecordResult(ctx context.Context, r *decision.Result) error
}

type PlayerConfig struct {
	URL          string
	UserName     string
	TournamentID int
	UserRole     string
	Out          io.Writer // finished boards are rendered here; defaults to stdout
}

// Player is a tournament client: it signs in, answers every ready with a
// play and acknowledges every finish with player_ready.
type Player struct {
	cfg     PlayerConfig
	decider Decider
	dialer  *websocket.Dialer

	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewPlayer(cfg PlayerConfig, decider Decider) *Player {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	return &Player{
		cfg:     cfg,
		decider: decider,
		dialer:  websocket.DefaultDialer,
	}
}

// Run connects and serves events until ctx is done or the server closes
// the connection. A normal close returns nil.
func (p *Player) Run(ctx context.Context) error {
	conn, _, err := p.dialer.DialContext(ctx, p.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", p.cfg.URL, err)
	}
	p.conn = conn
	defer conn.Close()
	log.Info().Str("component", "player").Str("url", p.cfg.URL).Msg("connected to server")

	stop := context.AfterFunc(ctx, func() {
		p.writeMu.Lock()
		defer p.writeMu.Unlock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		_ = conn.Close()
	})
	defer stop()

	if err := p.send(EventSignin, SigninData{
		UserName:     p.cfg.UserName,
		TournamentID: p.cfg.TournamentID,
		UserRole:     p.cfg.UserRole,
	}); err != nil {
		return err
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info().Str("component", "player").Msg("connection closed")
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		if err := p.handle(ctx, msg); err != nil {
			return err
		}
	}
}

func (p *Player) handle(ctx context.Context, msg Message) error {
	switch msg.Event {
	case EventOKSignin:
		log.Info().Str("component", "player").Str("user", p.cfg.UserName).Msg("login")
		return nil
	case EventReady:
		var data ReadyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Warn().Str("component", "player").Err(err).Msg("bad ready payload")
			return nil
		}
		return p.onReady(ctx, data)
	case EventFinish:
		var data FinishData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Warn().Str("component", "player").Err(err).Msg("bad finish payload")
			return nil
		}
		return p.onFinish(ctx, data)
	default:
		log.Debug().Str("component", "player").Str("event", msg.Event).Msg("ignoring event")
		return nil
	}
}

func (p *Player) onReady(ctx context.Context, data ReadyData) error {
	d, err := p.decider.Decide(ctx, decision.Request{
		GameID:       data.GameID.String(),
		PlayerTurnID: data.PlayerTurnID,
		Board:        data.Board,
	})
	if err != nil {
		// no play is sent; the server decides what a missing move means
		log.Error().Str("component", "player").Err(err).Str("game_id", data.GameID.String()).Msg("could not decide move")
		return nil
	}

	return p.send(EventPlay, PlayData{
		TournamentID: p.cfg.TournamentID,
		PlayerTurnID: data.PlayerTurnID,
		GameID:       data.GameID,
		Movement:     d.Column,
	})
}

func (p *Player) onFinish(ctx context.Context, data FinishData) error {
	log.Info().Str("component", "player").Str("game_id", data.GameID.String()).
		Int("winner", data.WinnerTurnID).Msg("game finished")

	if board, err := domain.BoardFromGrid(data.Board); err == nil {
		if err := presenter.RenderResult(p.cfg.Out, &board, domain.Piece(data.WinnerTurnID)); err != nil {
			log.Warn().Str("component", "player").Err(err).Msg("render failed")
		}
	}

	if err := p.decider.RecordResult(ctx, &decision.Result{
		GameID:       data.GameID.String(),
		PlayerTurnID: data.PlayerTurnID,
		WinnerTurnID: data.WinnerTurnID,
		Board:        data.Board,
	}); err != nil && !errors.Is(err, domain.ErrInvalidBoardShape) {
		log.Warn().Str("component", "player").Err(err).Msg("failed to record result")
	}

	return p.send(EventPlayerReady, PlayerReadyData{
		TournamentID: p.cfg.TournamentID,
		PlayerTurnID: data.PlayerTurnID,
		GameID:       data.GameID,
	})
}

func (p *Player) send(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.conn.WriteJSON(Message{Event: event, Data: raw}); err != nil {
		return fmt.Errorf("failed to send %s: %w", event, err)
	}
	return nil
}
