package seller

import (
	"context"
	"time"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/seller/dto"
)

type UseCase interface {
	GetByUser(ctx context.Context, userID int64) (*model.Vendor, error)
	UpdateProfile(ctx context.Context, input *dto.UpdateProfileInput) (*model.Vendor, error)
	PremiumStatus(ctx context.Context, userID int64) (*dto.PremiumStatus, error)
	SetVerified(ctx context.Context, vendorID int64, verified bool) error
	SetPlan(ctx context.Context, vendorID int64, plan string, end *time.Time) error
}
