package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// SearchEventHandler receives every well-formed search event.
type SearchEventHandler func(ctx context.Context, event domain.SearchEvent) error

type Consumer struct {
	reader MessageReader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeSearchEvents decodes messages into search events and passes them to
// handler until ctx is canceled or handler fails. Payloads that are not search
// events are logged and skipped so one bad message never stalls the group.
func (c *Consumer) ConsumeSearchEvents(ctx context.Context, handler SearchEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, ok := decodeSearchEvent(msg)
		if !ok {
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeSearchEvent(msg kafka.Message) (domain.SearchEvent, bool) {
	var event domain.SearchEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("decode search event at offset %d: %v", msg.Offset, err)
		return event, false
	}
	if event.Type != domain.SearchEventRouteSearched {
		log.Printf("skipping event %q of type %q at offset %d", event.ID, event.Type, msg.Offset)
		return event, false
	}
	return event, true
}
