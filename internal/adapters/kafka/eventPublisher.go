package kafka

import (
	"context"
	"encoding/json"
	"errors"

	fanoutPort "socialgraph/internal/ports/fanoutqueue"

	"github.com/segmentio/kafka-go"
)

// MessageWriter همان بخشی از *kafka.Writer که استفاده می‌شود
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventPublisherKafka رویدادهای پست را با کلید نویسنده منتشر می‌کند
type EventPublisherKafka struct {
	Writer MessageWriter
}

func NewEventPublisherKafka(w MessageWriter) *EventPublisherKafka {
	return &EventPublisherKafka{Writer: w}
}

func (p *EventPublisherKafka) Publish(ctx context.Context, msg fanoutPort.FanoutMessage) error {
	if p.Writer == nil {
		return errors.New("kafka writer is nil")
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	// کلید نویسنده ترتیب رویدادهای یک نویسنده را در یک پارتیشن نگه می‌دارد
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.AuthorID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(msg.Event)},
		},
	})
}

func (p *EventPublisherKafka) Close() error {
	if p.Writer == nil {
		return nil
	}
	return p.Writer.Close()
}
