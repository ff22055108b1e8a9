package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "fitness_chat_service/docs"
	"fitness_chat_service/internal/api/handlers"
	"fitness_chat_service/internal/chat/app"
	"fitness_chat_service/internal/chat/repository"
	"fitness_chat_service/internal/chat/router"
	"fitness_chat_service/pkg/config"
	"fitness_chat_service/pkg/database"
	"fitness_chat_service/pkg/logger"
	testtool "fitness_chat_service/pkg/test_tool"
	"fitness_chat_service/pkg/token"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultPresenceTTL = 2 * time.Minute

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	defer logger.Log.Sync()
	logger.Log.SetDebugMode(config.IsLocal())

	cfg, err := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)
	if err != nil {
		logger.Log.Fatal("load config", zap.Error(err))
	}
	if config.EnvConfig.ChatServicePort != "" {
		cfg.Port = config.EnvConfig.ChatServicePort
	}
	if cfg.PresenceTTL <= 0 {
		cfg.PresenceTTL = defaultPresenceTTL
	}
	token.SetSecret(cfg.JWTSecret)
	testtool.StartPprof(cfg.Pprof)

	ctx := context.Background()

	// mongo
	uri := mongoURI(cfg.MongoSQL)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval) * time.Second,
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal("Unable to connect to mongoDB database after retries",
			zap.String("host", cfg.MongoSQL.Host),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	chatRepo := repository.NewMongoChatRepository(mongo.Database)
	if err := chatRepo.EnsureIndexes(ctx); err != nil {
		logger.Log.Fatal("ensure chat indexes", zap.Error(err))
	}
	userRepo := repository.NewMongoUserRepository(mongo.Database)

	// redis
	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		logger.Log.Fatal("connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	pubsub := repository.NewRedisPubSub(redisClient)
	presence := repository.NewPresenceRepository(
		database.NewRedisRepository[string](redisClient),
		cfg.PresenceTTL,
	)

	// kafka, optional
	var writer *kafka.Writer
	if len(cfg.Kafka.Brokers) > 0 {
		writer, err = database.NewKafkaWriterWithRetry(ctx, database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval) * time.Second,
		})
		if err != nil {
			logger.Log.Fatal("connect kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.Error(err))
		}
	}
	events := repository.NewKafkaEventPublisher(writer)
	defer events.Close()

	// rabbitmq, optional
	var notifier *repository.RabbitNotifier
	if cfg.RabbitMQ.URL != "" {
		interval := time.Duration(cfg.RabbitMQ.RetryInterval) * time.Second
		conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
			ConnectStr:    cfg.RabbitMQ.URL,
			RetryCount:    cfg.RabbitMQ.RetryCount,
			RetryInterval: interval,
		})
		if err != nil {
			logger.Log.Fatal("connect rabbitmq", zap.Error(err))
		}
		defer conn.Close()

		ch, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.Queue, cfg.RabbitMQ.RetryCount, interval)
		if err != nil {
			logger.Log.Fatal("open rabbitmq channel", zap.String("queue", cfg.RabbitMQ.Queue), zap.Error(err))
		}
		defer ch.Close()
		notifier = repository.NewRabbitNotifier(ch, cfg.RabbitMQ.Queue)
	} else {
		notifier = repository.NewRabbitNotifier(nil, "")
	}

	// use cases
	chatUC := app.NewChatUseCase(chatRepo, userRepo, presence, events, notifier)
	relayUC := app.NewRelayUseCase(pubsub, presence, notifier)

	r := fiber.New(fiber.Config{
		AppName: config.EnvConfig.ChatService,
	})
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Log.Fatal("Failed to open access log file", zap.Error(err))
	}
	defer file.Close()

	r.Use(recover.New())
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r,
		handlers.NewChatHandler(chatUC),
		app.NewChatWebsocketHandler(relayUC, cfg.PresenceTTL/2),
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("shutting down chat service")
		if err := r.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.Error("shutdown", zap.Error(err))
		}
	}()

	port := ":" + cfg.Port
	logger.Log.Infof("Chat Service listening on", port)
	if err := r.Listen(port); err != nil {
		logger.Log.Error("Failed to start Fiber", zap.Error(err))
	}
}

func mongoURI(c config.DatabaseConfig) string {
	if c.User == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.Host, c.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", c.User, c.Password, c.Host, c.Port)
}

// newRedisClient single node when addr is set, otherwise sentinel from .env
func newRedisClient(c config.RedisConfig) (*redis.Client, error) {
	if c.Addr != "" {
		return database.NewRedisSingleClient(c.Addr, c.Password, c.RedisDB)
	}
	masterName, sentinel := config.GetRedisSetting()
	return database.NewRedisClient(masterName, sentinel, c.RedisDB)
}
