package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shahafle/costs-manager/config"
	"github.com/shahafle/costs-manager/handlers"
	"github.com/shahafle/costs-manager/kafka"
	"github.com/shahafle/costs-manager/logger"
	"github.com/shahafle/costs-manager/middleware"
	"github.com/shahafle/costs-manager/mongodb"
	"github.com/shahafle/costs-manager/worker"
)

func main() {
	cfg, err := config.Load("logs-service", "3003")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Development(), logger.LogLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Get().Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongodb.Disconnect(client)

	logs := mongodb.NewLogStore(client, cfg.MongoDatabase)
	if err := logs.EnsureIndexes(ctx); err != nil {
		logger.Get().Warn("failed to ensure log indexes", zap.Error(err))
	}

	// Drain the log topic into the logs collection. Entries the pool
	// cannot keep up with are dropped, never retried.
	pool := worker.NewPool(4, 256, logs.Ingest)
	pool.Start()
	defer pool.Stop()

	// This service's own entries skip the broker and go straight into
	// the pool.
	logger.AttachCore(logger.NewPipelineCore(cfg.ServiceName, pool, zapcore.InfoLevel))

	if cfg.KafkaBootstrapServers != "" {
		consumer, err := kafka.NewConsumer(cfg.KafkaBootstrapServers, cfg.ServiceName)
		if err != nil {
			logger.Get().Warn("log ingestion disabled", zap.Error(err))
		} else {
			defer consumer.Close()
			if err := consumer.Start(kafka.LogTopic, pool.Submit); err != nil {
				logger.Get().Warn("log ingestion disabled", zap.Error(err))
			}
		}
	}

	h := handlers.NewLogHandler(logs)

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CorsMiddleware)
	router.Use(middleware.RequestLogger())

	api := router.Group("/api")
	{
		api.GET("/logs", h.GetLogs)
	}
	router.NoRoute(handlers.NotFound)

	logger.Get().Info("logs service starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
