package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fekuna/marketplace-service/internal/pkg/broker"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"github.com/fekuna/marketplace-service/internal/seller/listener"
	vendorRepoPkg "github.com/fekuna/marketplace-service/internal/seller/repository"
	vendorUCPkg "github.com/fekuna/marketplace-service/internal/seller/usecase"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Consume subscription events and apply plan changes to vendors",
	RunE:  runListen,
}

func runListen(cmd *cobra.Command, _ []string) error {
	// 1. Load Configuration and Logger
	cfg, appLogger := bootstrap()
	defer appLogger.Sync()

	// 2. Connect to Database
	db, err := openDB(cfg, appLogger)
	if err != nil {
		appLogger.Error("Could not connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	vendorUC := vendorUCPkg.NewVendorUseCase(vendorRepoPkg.NewPGRepository(db), validation.New(), cfg.Server.Location(), appLogger)

	// 3. Initialize Kafka Consumer
	consumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.SubscriptionTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Starting subscription listener",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.SubscriptionTopic),
		zap.String("group_id", cfg.Kafka.GroupID),
	)
	listener.NewSubscriptionListener(consumer, vendorUC, appLogger).Start(ctx)
	appLogger.Info("Subscription listener stopped")
	return nil
}
