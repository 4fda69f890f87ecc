package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fekuna/marketplace-service/internal/pkg/broker"
	"github.com/fekuna/marketplace-service/internal/pkg/cache"
	"github.com/fekuna/marketplace-service/internal/pkg/database/postgres"
	"github.com/fekuna/marketplace-service/internal/pkg/metrics"
	"github.com/fekuna/marketplace-service/internal/product"
	"github.com/fekuna/marketplace-service/internal/product/publisher"
	"github.com/fekuna/marketplace-service/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Load Configuration and Logger
	cfg, appLogger := bootstrap()
	defer appLogger.Sync()

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to Database
	db, err := openDB(cfg, appLogger)
	if err != nil {
		appLogger.Error("Could not connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			appLogger.Error("Could not apply schema", zap.Error(err))
			return err
		}
	}

	// 3. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Error("Could not connect to Redis", zap.Error(err))
		return err
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 4. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// 5. Initialize Kafka Producer
	var events product.EventPublisher = publisher.Nop{}
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		events = publisher.NewKafkaPublisher(producer, appMetrics, appLogger)
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 6. Wire Repositories, UseCases and Handlers
	router, err := server.New(server.Deps{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient.Client,
		Publisher: events,
		Registry:  registry,
		Metrics:   appMetrics,
		Logger:    appLogger,
	})
	if err != nil {
		appLogger.Error("Could not build router", zap.Error(err))
		return err
	}

	// 7. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:              port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}
