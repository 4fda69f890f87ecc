package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/fekuna/marketplace-service/config"
	authH "github.com/fekuna/marketplace-service/internal/auth/handler"
	authRepoPkg "github.com/fekuna/marketplace-service/internal/auth/repository"
	"github.com/fekuna/marketplace-service/internal/auth/session"
	authUCPkg "github.com/fekuna/marketplace-service/internal/auth/usecase"
	catalogH "github.com/fekuna/marketplace-service/internal/catalog/handler"
	catalogUCPkg "github.com/fekuna/marketplace-service/internal/catalog/usecase"
	catH "github.com/fekuna/marketplace-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/marketplace-service/internal/category/repository"
	catUCPkg "github.com/fekuna/marketplace-service/internal/category/usecase"
	"github.com/fekuna/marketplace-service/internal/pkg/httpx"
	"github.com/fekuna/marketplace-service/internal/pkg/i18n"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/metrics"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"github.com/fekuna/marketplace-service/internal/product"
	prodH "github.com/fekuna/marketplace-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/marketplace-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/marketplace-service/internal/product/usecase"
	vendorH "github.com/fekuna/marketplace-service/internal/seller/handler"
	vendorRepoPkg "github.com/fekuna/marketplace-service/internal/seller/repository"
	vendorUCPkg "github.com/fekuna/marketplace-service/internal/seller/usecase"
)

// Deps are the connections the HTTP service is assembled from.
type Deps struct {
	Config     *config.Config
	DB         *sqlx.DB
	Redis      *redis.Client
	Publisher  product.EventPublisher
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	BcryptCost int // 0 selects the bcrypt default
	Logger     logger.ZapLogger
}

// New wires repositories, usecases and handlers into a router.
func New(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	loc := cfg.Server.Location()

	messages, err := i18n.New(cfg.Server.Language)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	responder := httpx.NewResponder(messages, d.Logger)
	validator := validation.New()

	// Repositories
	userRepo := authRepoPkg.NewPGRepository(d.DB)
	vendorRepo := vendorRepoPkg.NewPGRepository(d.DB)
	catRepo := catRepoPkg.NewPGRepository(d.DB)
	prodRepo := prodRepoPkg.NewPGRepository(d.DB)

	sessions := session.NewRedisStore(d.Redis, session.Config{
		SecretKey: cfg.JWT.SecretKey,
		TTL:       cfg.JWT.SessionTTL,
	})

	// UseCases
	authUC := authUCPkg.NewAuthUseCase(userRepo, sessions, validator, d.BcryptCost, d.Logger)
	vendorUC := vendorUCPkg.NewVendorUseCase(vendorRepo, validator, loc, d.Logger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, d.Logger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, vendorRepo, catRepo, d.Publisher, validator, d.Metrics,
		prodUCPkg.Options{DashboardPageSize: cfg.Catalog.DashboardPageSize, Location: loc}, d.Logger)
	catalogUC := catalogUCPkg.NewCatalogUseCase(prodRepo, vendorRepo, catRepo,
		catalogUCPkg.Options{PageSize: cfg.Catalog.PageSize, VendorRailLimit: cfg.Catalog.VendorRailLimit}, d.Logger)

	// Handlers
	handlers := Handlers{
		Auth: authH.NewAuthHandler(authUC, responder, authH.CookieConfig{
			Name:   cfg.JWT.CookieName,
			TTL:    cfg.JWT.SessionTTL,
			Secure: cfg.Server.CookieSecure,
		}),
		Catalog: catalogH.NewCatalogHandler(catalogUC, responder, catalogH.Images{
			DefaultVendor:  cfg.Catalog.DefaultVendorImage,
			DefaultProduct: cfg.Catalog.DefaultProductImage,
		}),
		Category: catH.NewCategoryHandler(catUC, responder),
		Product:  prodH.NewProductHandler(prodUC, sessions, responder, d.Logger),
		Vendor:   vendorH.NewVendorHandler(vendorUC, sessions, responder, d.Logger),
	}

	return NewRouter(handlers, Options{
		Sessions:   sessions,
		CookieName: cfg.JWT.CookieName,
		Metrics:    d.Metrics,
		Gatherer:   d.Registry,
		Logger:     d.Logger,
	}), nil
}
