package auth

import (
	"context"

	"github.com/fekuna/marketplace-service/internal/model"
)

type Repository interface {
	// CreateUserWithVendor inserts the account and its vendor profile atomically.
	CreateUserWithVendor(ctx context.Context, user *model.User, vendor *model.Vendor) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
