package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// Kafka streams readings onto a topic, keyed by sensor index so one sensor's
// readings stay ordered within a partition.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (s *Kafka) Name() string { return "kafka" }

func (s *Kafka) Record(ctx context.Context, r Reading) error {
	value, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode reading: %w", err)
	}
	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(r.SensorIndex)),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", s.writer.Topic, err)
	}
	return nil
}

func (s *Kafka) Close() error { return s.writer.Close() }
