package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/marketplace-service/internal/category/dto"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	bySlug map[string]*model.Category
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bySlug: map[string]*model.Category{}}
}

func (f *fakeRepo) Create(_ context.Context, c *model.Category) error {
	f.nextID++
	c.ID = f.nextID
	f.bySlug[c.Slug] = c
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*model.Category, error) {
	for _, c := range f.bySlug {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	return f.bySlug[slug], nil
}

func (f *fakeRepo) FindAll(context.Context) ([]model.Category, error) { return nil, nil }
func (f *fakeRepo) Delete(context.Context, int64) error               { return nil }

func TestCreateCategory_DerivesSlug(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), logger.NewNop())

	cat, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "  Mode & Beauté "})
	require.NoError(t, err)
	assert.Equal(t, "Mode & Beauté", cat.Name)
	assert.Equal(t, "mode-beaute", cat.Slug)
}

func TestCreateCategory_KeepsExplicitSlug(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), logger.NewNop())

	cat, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "Fashion", Slug: "fashion-hub"})
	require.NoError(t, err)
	assert.Equal(t, "fashion-hub", cat.Slug)
}

func TestCreateCategory_Rejects(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "   "})
	_, ok := apperror.AsValidation(err)
	assert.True(t, ok)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Fashion"})
	require.NoError(t, err)
	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "FASHION"})
	_, ok = apperror.AsValidation(err)
	assert.True(t, ok, "duplicate slug must be a validation error")
}

func TestGetCategory_NotFound(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), logger.NewNop())

	_, err := uc.GetCategory(context.Background(), 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
