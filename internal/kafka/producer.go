package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	brokers    []string
	writer     MessageWriter
	maxRetries uint64
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return newProducer(brokers, writer)
}

func newProducer(brokers []string, writer MessageWriter) *Producer {
	return &Producer{
		brokers:    brokers,
		writer:     writer,
		maxRetries: 3,
	}
}

// Publish writes payload as JSON to topic. Transient write failures are
// retried with exponential backoff until ctx is done.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	attempt := 0
	operation := func() error {
		attempt++
		return p.writer.WriteMessages(ctx, message)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxElapsedTime = 5 * time.Second

	notify := func(err error, wait time.Duration) {
		log.Printf("Kafka publish attempt %d to %s failed: %v, retrying in %s", attempt, topic, err, wait)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, p.maxRetries), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection verifies the producer's brokers are reachable.
func (p *Producer) CheckConnection(ctx context.Context) error {
	return CheckConnection(ctx, p.brokers)
}

// CheckConnection dials the first broker and reads its partitions.
func CheckConnection(ctx context.Context, brokers []string) error {
	if len(brokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	log.Printf("Connected to Kafka, %d partitions available", len(partitions))
	return nil
}
