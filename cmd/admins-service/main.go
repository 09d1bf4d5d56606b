package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shahafle/costs-manager/config"
	"github.com/shahafle/costs-manager/handlers"
	"github.com/shahafle/costs-manager/kafka"
	"github.com/shahafle/costs-manager/logger"
	"github.com/shahafle/costs-manager/middleware"
)

func main() {
	cfg, err := config.Load("admins-service", "3004")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Development(), logger.LogLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.KafkaBootstrapServers != "" {
		producer, err := kafka.NewProducer(cfg.KafkaBootstrapServers)
		if err != nil {
			logger.Get().Warn("log pipeline disabled", zap.Error(err))
		} else {
			defer producer.Close()
			logger.AttachCore(logger.NewPipelineCore(cfg.ServiceName, producer, zapcore.InfoLevel))
		}
	}

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CorsMiddleware)
	router.Use(middleware.RequestLogger())

	api := router.Group("/api")
	{
		api.GET("/about", handlers.GetDevelopers)
	}
	router.NoRoute(handlers.NotFound)

	logger.Get().Info("admins service starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
