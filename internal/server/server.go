package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fekuna/marketplace-service/internal/auth"
	authH "github.com/fekuna/marketplace-service/internal/auth/handler"
	authMW "github.com/fekuna/marketplace-service/internal/auth/middleware"
	catalogH "github.com/fekuna/marketplace-service/internal/catalog/handler"
	catH "github.com/fekuna/marketplace-service/internal/category/handler"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/metrics"
	prodH "github.com/fekuna/marketplace-service/internal/product/handler"
	vendorH "github.com/fekuna/marketplace-service/internal/seller/handler"
)

type Handlers struct {
	Auth     *authH.AuthHandler
	Catalog  *catalogH.CatalogHandler
	Category *catH.CategoryHandler
	Product  *prodH.ProductHandler
	Vendor   *vendorH.VendorHandler
}

type Options struct {
	Sessions   auth.SessionStore
	CookieName string
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Logger     logger.ZapLogger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		requestID(),
		accessLog(opts.Logger),
		instrument(opts.Metrics),
		recovery(opts.Logger),
		authMW.CurrentUser(opts.Sessions, opts.CookieName, opts.Logger),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))

	// Public catalog
	r.GET("/", h.Catalog.Home)
	r.GET("/product/:id", h.Catalog.ProductDetail)
	r.GET("/vendor/:id", h.Catalog.VendorDetail)

	api := r.Group("/api")
	api.GET("/vendors", h.Catalog.ListVendors)
	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/categories", h.Category.ListCategories)
	api.GET("/categories/:id", h.Category.GetCategory)

	// Identity
	r.GET("/register", h.Auth.Form("username", "email", "password1", "password2", "name", "description", "whatsapp_number", "image_url"))
	r.POST("/register", h.Auth.Register())
	r.GET("/login", h.Auth.Form("username", "password"))
	r.POST("/login", h.Auth.Login())
	r.POST("/logout", h.Auth.Logout())

	// Vendor area
	vendorArea := r.Group("/", authMW.RequireLogin())
	vendorArea.GET("/dashboard", h.Product.Dashboard)
	vendorArea.POST("/product/add", h.Product.CreateProduct)
	vendorArea.POST("/product/edit/:id", h.Product.UpdateProduct)
	vendorArea.POST("/product/delete/:id", h.Product.DeleteProduct)
	vendorArea.GET("/premium", h.Vendor.Premium)
	vendorArea.POST("/profile", h.Vendor.UpdateProfile)

	return r
}
