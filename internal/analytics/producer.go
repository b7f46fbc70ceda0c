package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Producer publishes decision events to Kafka. A nil *Producer is valid
// and drops every event.
type Producer struct {
	writer *kafka.Writer
}

// Event is the message body written to the topic.
type Event struct {
	Event     string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn().Str("component", "kafka").Err(err).Int("messages", len(messages)).Msg("publish failed")
			}
		},
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, event string, payload map[string]any) {
	if p == nil || p.writer == nil {
		return
	}
	msg, err := NewMessage(event, payload, time.Now().UTC())
	if err != nil {
		log.Warn().Str("component", "kafka").Err(err).Str("event", event).Msg("could not encode event")
		return
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Warn().Str("component", "kafka").Err(err).Str("event", event).Msg("publish failed")
	}
}

// NewMessage encodes an event, keyed by game so one game's events stay
// on one partition.
func NewMessage(event string, payload map[string]any, at time.Time) (kafka.Message, error) {
	data, err := json.Marshal(Event{Event: event, Payload: payload, Timestamp: at})
	if err != nil {
		return kafka.Message{}, err
	}
	msg := kafka.Message{Value: data, Time: at}
	if id, ok := payload["game_id"].(string); ok && id != "" {
		msg.Key = []byte(id)
	}
	return msg, nil
}

func (p *Producer) Close() {
	if p == nil || p.writer == nil {
		return
	}
	_ = p.writer.Close()
}
