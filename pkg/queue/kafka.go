package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -destination=mock/publisher.go -package=mock github.com/feed-system/social-demo/pkg/queue Publisher

// Publisher delivers an event keyed by key. Services publish after a mutation
// has been applied, so implementations must not be relied on for rollback.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error {
	return nil
}

type KafkaProducer struct {
	writer *kafka.Writer
}

type KafkaConsumer struct {
	reader *kafka.Reader
}

// ProducerBatchTimeout caps how long a synchronous write waits for a batch
// to fill. Events are written one at a time, so the kafka-go default of one
// second would be added to every call.
const ProducerBatchTimeout = 10 * time.Millisecond

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: ProducerBatchTimeout,
		Async:        false,
	}

	return &KafkaProducer{writer: writer}
}

func NewKafkaConsumer(brokers []string, topic, groupID string) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1 * time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	return &KafkaConsumer{reader: reader}
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	return p.writer.WriteMessages(ctx, message)
}

// Subscribe reads until ctx is done or the reader fails. Messages that do
// not decode as an Event are passed to onError and skipped, as are handler
// failures.
func (c *KafkaConsumer) Subscribe(ctx context.Context, handler func(Message) error, onError func(error)) error {
	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		msg, err := DecodeMessage(message.Topic, message.Key, message.Value)
		if err != nil {
			onError(err)
			continue
		}

		if err := handler(msg); err != nil {
			onError(fmt.Errorf("failed to handle message: %w", err))
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

type Message struct {
	Key   string
	Event Event
	Topic string
}

func DecodeMessage(topic string, key, value []byte) (Message, error) {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		return Message{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return Message{Key: string(key), Event: event, Topic: topic}, nil
}
