package config

import (
	"strings"
	"time"
)

// Chat definition chat_service YAML structure
type Chat struct {
	Port        string         `mapstructure:"port"`
	JWTSecret   string         `mapstructure:"jwt_secret"`
	PresenceTTL time.Duration  `mapstructure:"presence_ttl"`
	Pprof       bool           `mapstructure:"pprof"`
	MongoSQL    DatabaseConfig `mapstructure:"mongo"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	RabbitMQ    RabbitMQConfig `mapstructure:"rabbitmq"`
}

// RedisConfig definition redis setting.
// Addr selects a single node; when empty the sentinel list from .env is used.
type RedisConfig struct {
	RedisDB  int    `mapstructure:"redis_db"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// KafkaConfig definition chat event topic, empty Brokers disables publishing
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// RabbitMQConfig definition offline notification queue, empty URL disables it
type RabbitMQConfig struct {
	URL           string `mapstructure:"url"`
	Queue         string `mapstructure:"queue"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// normalizer cleans up values after unmarshal
type normalizer interface {
	normalize()
}

// normalize drops blank brokers left by unset ${VAR} list entries
func (c *Chat) normalize() {
	brokers := c.Kafka.Brokers[:0]
	for _, b := range c.Kafka.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.Kafka.Brokers = brokers
}
