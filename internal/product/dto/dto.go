package dto

import (
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/pagination"
)

// CatalogFilters drives the public product query. Only active products are ever matched.
type CatalogFilters struct {
	SearchQuery  string // case-insensitive substring of product name, description or vendor name
	CategorySlug string
	Page         int
	PageSize     int // 0 means no limit
}

type VendorProductFilters struct {
	VendorID   int64
	ActiveOnly bool
	Page       int
	PageSize   int // 0 means no limit
}

type Dashboard struct {
	Vendor          *model.Vendor                         `json:"vendor"`
	Products        pagination.Page[model.ProductListing] `json:"products"`
	ActiveCount     int                                   `json:"active_products_count"`
	ProductLimit    int                                   `json:"product_limit"`
	CanAddProduct   bool                                  `json:"can_add_product"`
	IsPremiumActive bool                                  `json:"is_premium_active"`
}
