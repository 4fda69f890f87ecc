package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fekuna/marketplace-service/config"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:          "marketplace",
	Short:        "Multi-vendor marketplace service",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(listenCmd)

	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryCreateCmd)
	categoryCreateCmd.Flags().String("name", "", "Category name (required)")
	categoryCreateCmd.Flags().String("slug", "", "Slug; derived from the name when empty")
	_ = categoryCreateCmd.MarkFlagRequired("name")
	categoryCmd.AddCommand(categoryDeleteCmd)

	rootCmd.AddCommand(vendorCmd)
	vendorCmd.AddCommand(vendorVerifyCmd)
	vendorVerifyCmd.Flags().Bool("unverify", false, "Remove the verified flag instead of setting it")
	vendorCmd.AddCommand(vendorPlanCmd)
	vendorPlanCmd.Flags().String("plan", "premium", "Subscription plan (free, premium)")
	vendorPlanCmd.Flags().String("end", "", "Subscription end date, YYYY-MM-DD")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the process logger.
func bootstrap() (*config.Config, logger.ZapLogger) {
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if !cfg.Server.IsDevelopment() {
		logConfig.Encoding = "json"
	}
	return cfg, logger.NewZapLogger(logConfig)
}
