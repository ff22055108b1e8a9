package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"fitness_chat_service/internal/chat/domain"

	"github.com/segmentio/kafka-go"
)

// KafkaEventPublisher write chat events to the event log topic
type KafkaEventPublisher struct {
	writer *kafka.Writer
}

// NewKafkaEventPublisher nil writer gives a publisher that drops events
func NewKafkaEventPublisher(writer *kafka.Writer) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer}
}

// PublishChatEvent events of one chat share a key, so they keep their order
func (p *KafkaEventPublisher) PublishChatEvent(ctx context.Context, ev domain.ChatEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.ChatID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Close flush and close the writer
func (p *KafkaEventPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
