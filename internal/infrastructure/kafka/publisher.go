package publisher

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher pushes order lifecycle events onto one topic. Messages
// are keyed by order id so one order's events stay in partition order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
