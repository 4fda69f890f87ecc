package product

import (
	"context"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/product/dto"
)

type UseCase interface {
	CanCreateProduct(ctx context.Context, vendor *model.Vendor) (bool, error)
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id, userID int64) error
	Dashboard(ctx context.Context, userID int64, page int) (*dto.Dashboard, error)
}

// EventPublisher receives product lifecycle notifications. Implementations must not fail the
// caller: delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, product *model.Product)
}

const (
	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"
)
