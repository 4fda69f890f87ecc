package seller

import (
	"context"
	"time"

	"github.com/fekuna/marketplace-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*model.Vendor, error)
	FindByUserID(ctx context.Context, userID int64) (*model.Vendor, error)
	// ListRail returns verified vendors, premium plan first, newest first within a tier.
	ListRail(ctx context.Context, limit int) ([]model.Vendor, error)
	ListVerified(ctx context.Context) ([]model.Vendor, error)
	UpdateProfile(ctx context.Context, vendor *model.Vendor) error
	SetVerified(ctx context.Context, id int64, verified bool) error
	SetPlan(ctx context.Context, id int64, plan string, end *time.Time) error
}
