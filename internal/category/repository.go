package category

import (
	"context"

	"github.com/fekuna/marketplace-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id int64) error
}
