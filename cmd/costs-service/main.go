package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shahafle/costs-manager/clients"
	"github.com/shahafle/costs-manager/config"
	"github.com/shahafle/costs-manager/handlers"
	"github.com/shahafle/costs-manager/kafka"
	"github.com/shahafle/costs-manager/logger"
	"github.com/shahafle/costs-manager/middleware"
	"github.com/shahafle/costs-manager/mongodb"
)

func main() {
	cfg, err := config.Load("costs-service", "3002")
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

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Get().Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongodb.Disconnect(client)

	costs := mongodb.NewCostStore(client, cfg.MongoDatabase)
	reports := mongodb.NewReportStore(client, cfg.MongoDatabase)
	if err := costs.EnsureIndexes(ctx); err != nil {
		logger.Get().Warn("failed to ensure cost indexes", zap.Error(err))
	}
	if err := reports.EnsureIndexes(ctx); err != nil {
		logger.Get().Warn("failed to ensure report indexes", zap.Error(err))
	}

	users := clients.NewUsersClient(cfg.UsersServiceURL)
	h := handlers.NewCostHandler(costs, reports, users)

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CorsMiddleware)
	router.Use(middleware.RequestLogger())

	api := router.Group("/api")
	{
		api.POST("/add", h.CreateCost)
		api.GET("/report", h.GetMonthlyReport)
		api.GET("/costs", h.ListCosts)
		api.GET("/costs/total/:userId", h.GetTotal)
	}
	router.NoRoute(handlers.NotFound)

	logger.Get().Info("costs service starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
