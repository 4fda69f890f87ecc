package product

import (
	"context"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindListingByID(ctx context.Context, id int64) (*model.ProductListing, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error

	CountActiveByVendor(ctx context.Context, vendorID int64) (int, error)
	// FindByVendor replaces lazy vendor.products traversal with an explicit lookup.
	FindByVendor(ctx context.Context, filters *dto.VendorProductFilters) ([]model.ProductListing, error)

	CountCatalog(ctx context.Context, filters *dto.CatalogFilters) (int, error)
	SearchCatalog(ctx context.Context, filters *dto.CatalogFilters) ([]model.ProductListing, error)
}
