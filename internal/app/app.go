package app

import (
	"github.com/kamepallinandini997/leave-management-poc/internal/config"
	"github.com/kamepallinandini997/leave-management-poc/internal/middleware"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp wires middleware, optional Redis and Kafka clients, and every
// module onto router. The returned func releases the clients.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
	)

	var (
		redisClient *redis.Client
		kafkaWriter *kafkago.Writer
		err         error
	)

	if cfg.Redis.Addr != "" {
		redisClient, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
		if err != nil {
			return nil, err
		}
		log.Info("redis connection established, idempotency enabled")
	}

	if cfg.Kafka.Broker != "" {
		kafkaWriter, err = connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, 5)
		if err != nil {
			if redisClient != nil {
				_ = redisClient.Close()
			}
			return nil, err
		}
		log.Info("kafka connection established, events enabled")
	}

	if err := registerModules(router, cfg, redisClient, kafkaWriter, logger); err != nil {
		return nil, err
	}

	cleanup := func() {
		if kafkaWriter != nil {
			if err := kafkaWriter.Close(); err != nil {
				log.Warn("close kafka writer failed", zap.Error(err))
			}
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Warn("close redis client failed", zap.Error(err))
			}
		}
	}

	return cleanup, nil
}
