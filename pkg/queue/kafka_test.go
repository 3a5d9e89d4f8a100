package queue

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestNewKafkaProducerBatchTimeout(t *testing.T) {
	p := NewKafkaProducer([]string{"localhost:9092"}, "social-events")
	defer p.Close()

	assert.Equal(t, ProducerBatchTimeout, p.writer.BatchTimeout)
	assert.Equal(t, "social-events", p.writer.Topic)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}
