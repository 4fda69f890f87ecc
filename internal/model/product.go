package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	VendorID    int64           `db:"vendor_id" json:"vendor_id"`
	CategoryID  *int64          `db:"category_id" json:"category_id"` // Nullable
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	ImageURL    *string         `db:"image_url" json:"image_url"`
	IsActive    bool            `db:"is_active" json:"is_active"`
}

// ProductListing is a product joined with the vendor and category columns the catalog shows.
type ProductListing struct {
	Product
	VendorName           string  `db:"vendor_name" json:"vendor_name"`
	VendorWhatsAppNumber string  `db:"vendor_whatsapp_number" json:"vendor_whatsapp_number"`
	VendorPlan           string  `db:"vendor_subscription_plan" json:"vendor_subscription_plan"`
	CategoryName         *string `db:"category_name" json:"category_name"`
	CategorySlug         *string `db:"category_slug" json:"category_slug"`
}
