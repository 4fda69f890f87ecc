package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/marketplace-service/internal/category"
	"github.com/fekuna/marketplace-service/internal/category/dto"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError("name", validation.MsgRequired)
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = category.Slugify(name)
	}
	if slug == "" {
		return nil, apperror.NewValidationError("slug", validation.MsgInvalid)
	}

	existing, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewValidationError("slug", validation.MsgInvalid)
	}

	cat := &model.Category{Name: name, Slug: slug}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	uc.logger.Info("category created", zap.Int64("category_id", cat.ID), zap.String("slug", cat.Slug))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.ErrNotFound
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
