package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	UserID      int64           `json:"-"`
	CategoryID  *int64          `json:"category"` // Optional
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"price"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
}

type UpdateProductInput struct {
	ID          int64           `json:"-"`
	UserID      int64           `json:"-"` // For the ownership check
	CategoryID  *int64          `json:"category"`
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"price"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	IsActive    bool            `json:"is_active"`
}
