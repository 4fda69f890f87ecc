package catalog

import (
	"context"

	"github.com/fekuna/marketplace-service/internal/catalog/dto"
	"github.com/fekuna/marketplace-service/internal/model"
)

// UseCase is the public, read-only side of the marketplace.
type UseCase interface {
	Browse(ctx context.Context, input *dto.BrowseInput) (*dto.BrowseResult, error)
	ProductDetail(ctx context.Context, id int64) (*model.ProductListing, error)
	VendorStorefront(ctx context.Context, id int64) (*dto.Storefront, error)
	ListVerifiedVendors(ctx context.Context) ([]model.Vendor, error)
	ListActiveProducts(ctx context.Context) ([]model.ProductListing, error)
}
