package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fekuna/marketplace-service/internal/category/dto"
	categoryRepoPkg "github.com/fekuna/marketplace-service/internal/category/repository"
	categoryUCPkg "github.com/fekuna/marketplace-service/internal/category/usecase"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/database/postgres"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"github.com/fekuna/marketplace-service/internal/seller"
	vendorRepoPkg "github.com/fekuna/marketplace-service/internal/seller/repository"
	vendorUCPkg "github.com/fekuna/marketplace-service/internal/seller/usecase"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, appLogger := bootstrap()
		defer appLogger.Sync()

		db, err := openDB(cfg, appLogger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		appLogger.Info("Schema applied")
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage product categories",
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		slug, _ := cmd.Flags().GetString("slug")

		cfg, appLogger := bootstrap()
		defer appLogger.Sync()

		db, err := openDB(cfg, appLogger)
		if err != nil {
			return err
		}
		defer db.Close()

		uc := categoryUCPkg.NewCategoryUseCase(categoryRepoPkg.NewPGRepository(db), appLogger)
		cat, err := uc.CreateCategory(cmd.Context(), &dto.CreateCategoryInput{Name: name, Slug: slug})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", cat.ID, cat.Name, cat.Slug)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <category-id>",
	Short: "Delete a category; its products become uncategorized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid category id %q", args[0])
		}

		cfg, appLogger := bootstrap()
		defer appLogger.Sync()

		db, err := openDB(cfg, appLogger)
		if err != nil {
			return err
		}
		defer db.Close()

		uc := categoryUCPkg.NewCategoryUseCase(categoryRepoPkg.NewPGRepository(db), appLogger)
		return uc.DeleteCategory(cmd.Context(), id)
	},
}

var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Administer vendors",
}

var vendorVerifyCmd = &cobra.Command{
	Use:   "verify <vendor-id>",
	Short: "Mark a vendor as verified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseVendorID(args[0])
		if err != nil {
			return err
		}
		unverify, _ := cmd.Flags().GetBool("unverify")

		return withVendorUseCase(cmd, func(uc seller.UseCase) error {
			return uc.SetVerified(cmd.Context(), id, !unverify)
		})
	},
}

var vendorPlanCmd = &cobra.Command{
	Use:   "plan <vendor-id>",
	Short: "Set a vendor's subscription plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseVendorID(args[0])
		if err != nil {
			return err
		}
		plan, _ := cmd.Flags().GetString("plan")
		endRaw, _ := cmd.Flags().GetString("end")

		var end *time.Time
		if endRaw != "" {
			d, err := time.Parse(time.DateOnly, endRaw)
			if err != nil {
				return fmt.Errorf("invalid --end %q: expected YYYY-MM-DD", endRaw)
			}
			end = &d
		}
		if plan == model.PlanFree {
			end = nil
		}

		return withVendorUseCase(cmd, func(uc seller.UseCase) error {
			return uc.SetPlan(cmd.Context(), id, plan, end)
		})
	},
}

func parseVendorID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid vendor id %q", raw)
	}
	return id, nil
}

func withVendorUseCase(cmd *cobra.Command, fn func(seller.UseCase) error) error {
	cfg, appLogger := bootstrap()
	defer appLogger.Sync()

	db, err := openDB(cfg, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	uc := vendorUCPkg.NewVendorUseCase(vendorRepoPkg.NewPGRepository(db), validation.New(), cfg.Server.Location(), appLogger)
	if err := fn(uc); err != nil {
		appLogger.Error("vendor command failed", zap.String("command", cmd.Name()), zap.Error(err))
		return err
	}
	return nil
}
