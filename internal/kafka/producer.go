package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/RaikyD/orders-tracker/internal/domain"
)

// Producer publishes record change events.
type Producer struct {
	w messageWriter
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			Async:                  false,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// Publish writes ev keyed by "<entity>:<id>", so every change to one record
// lands on the same partition in order.
func (p *Producer) Publish(ctx context.Context, ev domain.ChangeEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s:%d", ev.Entity, ev.ID)
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-action", Value: []byte(ev.Action)},
		},
	})
}
