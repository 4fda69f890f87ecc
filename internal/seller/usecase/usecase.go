package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"github.com/fekuna/marketplace-service/internal/seller"
	"github.com/fekuna/marketplace-service/internal/seller/dto"
	"go.uber.org/zap"
)

type vendorUseCase struct {
	repo      seller.Repository
	validator *validation.Validator
	loc       *time.Location
	now       func() time.Time
	logger    logger.ZapLogger
}

func NewVendorUseCase(repo seller.Repository, v *validation.Validator, loc *time.Location, log logger.ZapLogger) seller.UseCase {
	return &vendorUseCase{
		repo:      repo,
		validator: v,
		loc:       loc,
		now:       time.Now,
		logger:    log,
	}
}

func (uc *vendorUseCase) today() time.Time {
	return uc.now().In(uc.loc)
}

func (uc *vendorUseCase) GetByUser(ctx context.Context, userID int64) (*model.Vendor, error) {
	v, err := uc.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find vendor by user: %w", err)
	}
	if v == nil {
		return nil, apperror.ErrNoVendor
	}
	return v, nil
}

func (uc *vendorUseCase) UpdateProfile(ctx context.Context, input *dto.UpdateProfileInput) (*model.Vendor, error) {
	v, err := uc.GetByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	v.Name = input.Name
	v.Description = input.Description
	v.WhatsAppNumber = input.WhatsAppNumber
	if input.ImageURL != "" {
		img := input.ImageURL
		v.ImageURL = &img
	}

	if err := uc.repo.UpdateProfile(ctx, v); err != nil {
		return nil, fmt.Errorf("update vendor profile: %w", err)
	}
	return v, nil
}

func (uc *vendorUseCase) PremiumStatus(ctx context.Context, userID int64) (*dto.PremiumStatus, error) {
	v, err := uc.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.PremiumStatus{
		Vendor:          v,
		Plan:            v.SubscriptionPlan,
		SubscriptionEnd: v.SubscriptionEnd,
		IsPremiumActive: v.IsPremiumActive(uc.today()),
		ProductLimit:    v.ProductLimit(),
	}, nil
}

func (uc *vendorUseCase) SetVerified(ctx context.Context, vendorID int64, verified bool) error {
	if err := uc.repo.SetVerified(ctx, vendorID, verified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.ErrNotFound
		}
		return err
	}
	uc.logger.Info("vendor verification changed", zap.Int64("vendor_id", vendorID), zap.Bool("verified", verified))
	return nil
}

func (uc *vendorUseCase) SetPlan(ctx context.Context, vendorID int64, plan string, end *time.Time) error {
	if plan != model.PlanFree && plan != model.PlanPremium {
		return apperror.NewValidationError("subscription_plan", validation.MsgInvalid)
	}
	if err := uc.repo.SetPlan(ctx, vendorID, plan, end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.ErrNotFound
		}
		return err
	}
	uc.logger.Info("vendor plan changed", zap.Int64("vendor_id", vendorID), zap.String("plan", plan))
	return nil
}
