package dto

import (
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/pagination"
)

type BrowseInput struct {
	Query        string
	CategorySlug string
	Page         int // unclamped; out-of-range values fall back to the nearest page
}

type BrowseResult struct {
	Products        pagination.Page[model.ProductListing] `json:"products"`
	Vendors         []model.Vendor                        `json:"vendors"`
	Categories      []model.Category                      `json:"categories"`
	Query           string                                `json:"query"`
	CurrentCategory string                                `json:"current_category"`
}

type Storefront struct {
	Vendor   *model.Vendor          `json:"vendor"`
	Products []model.ProductListing `json:"products"`
}
