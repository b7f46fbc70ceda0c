package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestNewProducerWithoutBrokers(t *testing.T) {
	is := is.New(t)
	p := NewProducer(nil, "topic")
	is.True(p == nil)

	// a nil producer swallows everything
	p.Publish(context.Background(), "move_decided", map[string]any{"column": 3})
	p.Close()
}

func TestNewMessage(t *testing.T) {
	is := is.New(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	msg, err := NewMessage("move_decided", map[string]any{"game_id": "g1", "column": 4}, at)
	is.NoErr(err)
	is.Equal(string(msg.Key), "g1")
	is.Equal(msg.Time, at)

	var ev Event
	is.NoErr(json.Unmarshal(msg.Value, &ev))
	is.Equal(ev.Event, "move_decided")
	is.Equal(ev.Payload["column"], float64(4))
	is.True(ev.Timestamp.Equal(at))

	msg, err = NewMessage("game_finished", map[string]any{"won": true}, at)
	is.NoErr(err)
	is.True(msg.Key == nil)
}
