package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/marketplace-service/internal/catalog"
	"github.com/fekuna/marketplace-service/internal/catalog/dto"
	"github.com/fekuna/marketplace-service/internal/category"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/pagination"
	"github.com/fekuna/marketplace-service/internal/product"
	productdto "github.com/fekuna/marketplace-service/internal/product/dto"
	"github.com/fekuna/marketplace-service/internal/seller"
	"go.uber.org/zap"
)

type Options struct {
	PageSize        int
	VendorRailLimit int
}

type catalogUseCase struct {
	products   product.Repository
	vendors    seller.Repository
	categories category.Repository
	opts       Options
	logger     logger.ZapLogger
}

func NewCatalogUseCase(
	products product.Repository,
	vendors seller.Repository,
	categories category.Repository,
	opts Options,
	log logger.ZapLogger,
) catalog.UseCase {
	if opts.PageSize <= 0 {
		opts.PageSize = 12
	}
	if opts.VendorRailLimit <= 0 {
		opts.VendorRailLimit = 12
	}
	return &catalogUseCase{
		products:   products,
		vendors:    vendors,
		categories: categories,
		opts:       opts,
		logger:     log,
	}
}

// Browse lists active products matching the filters, one page at a time, along with the
// verified vendor rail and every category. Owner verification does not affect which
// products are listed; it only gates the rail.
func (uc *catalogUseCase) Browse(ctx context.Context, input *dto.BrowseInput) (*dto.BrowseResult, error) {
	filters := &productdto.CatalogFilters{
		SearchQuery:  strings.TrimSpace(input.Query),
		CategorySlug: input.CategorySlug,
		PageSize:     uc.opts.PageSize,
	}

	total, err := uc.products.CountCatalog(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count catalog: %w", err)
	}
	filters.Page = pagination.Clamp(input.Page, total, filters.PageSize)

	listings, err := uc.products.SearchCatalog(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	rail, err := uc.vendors.ListRail(ctx, uc.opts.VendorRailLimit)
	if err != nil {
		return nil, fmt.Errorf("list vendor rail: %w", err)
	}

	cats, err := uc.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	uc.logger.Debug("catalog browsed",
		zap.String("query", filters.SearchQuery),
		zap.String("category", filters.CategorySlug),
		zap.Int("page", filters.Page),
		zap.Int("total", total),
	)

	return &dto.BrowseResult{
		Products:        pagination.New(listings, filters.Page, filters.PageSize, total),
		Vendors:         nonNil(rail),
		Categories:      nonNil(cats),
		Query:           filters.SearchQuery,
		CurrentCategory: filters.CategorySlug,
	}, nil
}

func (uc *catalogUseCase) ProductDetail(ctx context.Context, id int64) (*model.ProductListing, error) {
	listing, err := uc.products.FindListingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if listing == nil || !listing.IsActive {
		return nil, apperror.ErrNotFound
	}
	return listing, nil
}

// VendorStorefront hides unverified vendors entirely.
func (uc *catalogUseCase) VendorStorefront(ctx context.Context, id int64) (*dto.Storefront, error) {
	v, err := uc.vendors.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	if v == nil || !v.IsVerified {
		return nil, apperror.ErrNotFound
	}

	listings, err := uc.products.FindByVendor(ctx, &productdto.VendorProductFilters{
		VendorID:   v.ID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}

	return &dto.Storefront{Vendor: v, Products: nonNil(listings)}, nil
}

func (uc *catalogUseCase) ListVerifiedVendors(ctx context.Context) ([]model.Vendor, error) {
	vendors, err := uc.vendors.ListVerified(ctx)
	if err != nil {
		return nil, fmt.Errorf("list verified vendors: %w", err)
	}
	return nonNil(vendors), nil
}

func (uc *catalogUseCase) ListActiveProducts(ctx context.Context) ([]model.ProductListing, error) {
	listings, err := uc.products.SearchCatalog(ctx, &productdto.CatalogFilters{})
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return nonNil(listings), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
