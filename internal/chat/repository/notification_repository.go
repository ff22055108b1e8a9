package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"fitness_chat_service/internal/chat/domain"

	"github.com/streadway/amqp"
)

// AMQPPublisher the part of *amqp.Channel the notifier needs
type AMQPPublisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitNotifier queue notifications for members without a live socket
type RabbitNotifier struct {
	channel AMQPPublisher
	queue   string
}

// NewRabbitNotifier nil channel gives a notifier that drops notifications
func NewRabbitNotifier(channel AMQPPublisher, queue string) *RabbitNotifier {
	return &RabbitNotifier{channel: channel, queue: queue}
}

// Notify publish n as a persistent message on the default exchange
func (r *RabbitNotifier) Notify(_ context.Context, n domain.ChatNotification) error {
	if r == nil || r.channel == nil {
		return nil
	}
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := r.channel.Publish("", r.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    n.CreatedAt,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("notify %s: %w", n.RecipientID, err)
	}
	return nil
}
