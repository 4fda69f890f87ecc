package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/marketplace-service/internal/category"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/metrics"
	"github.com/fekuna/marketplace-service/internal/pkg/pagination"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"github.com/fekuna/marketplace-service/internal/product"
	"github.com/fekuna/marketplace-service/internal/product/dto"
	"github.com/fekuna/marketplace-service/internal/seller"
	"go.uber.org/zap"
)

type Options struct {
	DashboardPageSize int
	Location          *time.Location
}

type productUseCase struct {
	repo       product.Repository
	vendors    seller.Repository
	categories category.Repository
	publisher  product.EventPublisher
	validator  *validation.Validator
	metrics    *metrics.Metrics
	opts       Options
	now        func() time.Time
	logger     logger.ZapLogger
}

func NewProductUseCase(
	repo product.Repository,
	vendors seller.Repository,
	categories category.Repository,
	publisher product.EventPublisher,
	v *validation.Validator,
	m *metrics.Metrics,
	opts Options,
	log logger.ZapLogger,
) product.UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DashboardPageSize <= 0 {
		opts.DashboardPageSize = 10
	}
	return &productUseCase{
		repo:       repo,
		vendors:    vendors,
		categories: categories,
		publisher:  publisher,
		validator:  v,
		metrics:    m,
		opts:       opts,
		now:        time.Now,
		logger:     log,
	}
}

// CanCreateProduct compares the vendor's active product count with the plan limit.
// The check is not atomic with the insert that follows it: two concurrent creates may
// both pass and overshoot the limit by one.
func (uc *productUseCase) CanCreateProduct(ctx context.Context, v *model.Vendor) (bool, error) {
	count, err := uc.repo.CountActiveByVendor(ctx, v.ID)
	if err != nil {
		return false, fmt.Errorf("count active products: %w", err)
	}
	return count < v.ProductLimit(), nil
}

func (uc *productUseCase) vendorFor(ctx context.Context, userID int64) (*model.Vendor, error) {
	v, err := uc.vendors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find vendor by user: %w", err)
	}
	if v == nil {
		return nil, apperror.ErrNoVendor
	}
	return v, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	v, err := uc.vendorFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	allowed, err := uc.CanCreateProduct(ctx, v)
	if err != nil {
		return nil, err
	}
	if !allowed {
		uc.metrics.QuotaDeniedTotal.Inc()
		uc.logger.Info("product limit reached",
			zap.Int64("vendor_id", v.ID),
			zap.String("plan", v.SubscriptionPlan),
			zap.Int("limit", v.ProductLimit()),
		)
		return nil, apperror.ErrQuotaExceeded
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	p := &model.Product{
		BaseModel:   model.BaseModel{CreatedAt: uc.now().UTC()},
		VendorID:    v.ID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price.Round(2),
		ImageURL:    optional(input.ImageURL),
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	uc.metrics.ProductsCreatedTotal.Inc()
	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.Int64("vendor_id", v.ID))
	uc.publisher.Publish(ctx, product.EventProductCreated, p)

	return p, nil
}

// authorize loads the product and verifies that userID owns its vendor. A missing product
// is ErrNotFound, someone else's product is ErrForbidden.
func (uc *productUseCase) authorize(ctx context.Context, productID, userID int64, action string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if p == nil {
		return nil, apperror.ErrNotFound
	}

	owner, err := uc.vendors.FindByID(ctx, p.VendorID)
	if err != nil {
		return nil, fmt.Errorf("find product vendor: %w", err)
	}
	if owner == nil || owner.UserID != userID {
		uc.metrics.OwnershipDeniedTotal.WithLabelValues(action).Inc()
		uc.logger.Warn("product ownership mismatch",
			zap.Int64("product_id", productID),
			zap.Int64("user_id", userID),
			zap.String("action", action),
		)
		return nil, apperror.ErrForbidden
	}
	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.authorize(ctx, input.ID, input.UserID, "edit")
	if err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	p.CategoryID = input.CategoryID
	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price.Round(2)
	p.ImageURL = optional(input.ImageURL)
	p.IsActive = input.IsActive

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	uc.publisher.Publish(ctx, product.EventProductUpdated, p)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id, userID int64) error {
	p, err := uc.authorize(ctx, id, userID, "delete")
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	uc.logger.Info("product deleted", zap.Int64("product_id", id), zap.Int64("vendor_id", p.VendorID))
	uc.publisher.Publish(ctx, product.EventProductDeleted, p)
	return nil
}

func (uc *productUseCase) Dashboard(ctx context.Context, userID int64, page int) (*dto.Dashboard, error) {
	v, err := uc.vendorFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeCount, err := uc.repo.CountActiveByVendor(ctx, v.ID)
	if err != nil {
		return nil, fmt.Errorf("count active products: %w", err)
	}

	pageSize := uc.opts.DashboardPageSize
	number := pagination.Clamp(page, activeCount, pageSize)

	products, err := uc.repo.FindByVendor(ctx, &dto.VendorProductFilters{
		VendorID:   v.ID,
		ActiveOnly: true,
		Page:       number,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}

	return &dto.Dashboard{
		Vendor:          v,
		Products:        pagination.New(products, number, pageSize, activeCount),
		ActiveCount:     activeCount,
		ProductLimit:    v.ProductLimit(),
		CanAddProduct:   activeCount < v.ProductLimit(),
		IsPremiumActive: v.IsPremiumActive(uc.now().In(uc.opts.Location)),
	}, nil
}

func (uc *productUseCase) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	c, err := uc.categories.FindByID(ctx, *id)
	if err != nil {
		return fmt.Errorf("find category: %w", err)
	}
	if c == nil {
		return apperror.NewValidationError("category", validation.MsgUnknownCategory)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
