package database

import (
	"fmt"
	"time"

	"fitness_chat_service/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// ConnectRabbitMQWithRetry dial RabbitMQ, retrying RetryCount times
func ConnectRabbitMQWithRetry(d Connection) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error

	retries := max(d.RetryCount, 1)
	for attempt := 1; attempt <= retries; attempt++ {
		conn, err = amqp.Dial(d.ConnectStr)
		if err == nil {
			logger.Log.Info("rabbitmq connected", zap.Int("attempt", attempt))
			return conn, nil
		}

		logger.Log.Warn("rabbitmq connect failed", zap.Int("attempt", attempt), zap.Int("max", retries), zap.Error(err))
		time.Sleep(d.RetryInterval)
	}

	return nil, fmt.Errorf("rabbitmq not reachable after %d attempts: %w", retries, err)
}

// GetRabbitMQChannelWithRetry open a channel on conn and declare the durable queue
func GetRabbitMQChannelWithRetry(conn *amqp.Connection, queue string, maxRetries int, delay time.Duration) (*amqp.Channel, error) {
	var ch *amqp.Channel
	var err error

	maxRetries = max(maxRetries, 1)
	for attempt := 1; attempt <= maxRetries; attempt++ {
		ch, err = conn.Channel()
		if err == nil {
			if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err == nil {
				return ch, nil
			}
			ch.Close()
		}

		logger.Log.Warn("rabbitmq channel failed", zap.Int("attempt", attempt), zap.Int("max", maxRetries), zap.Error(err))
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("rabbitmq channel not ready after %d attempts: %w", maxRetries, err)
}
