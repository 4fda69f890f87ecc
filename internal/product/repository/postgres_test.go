package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/database/sqlitetest"
	"github.com/fekuna/marketplace-service/internal/product/dto"
)

func TestPGRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.New(t)
	repo := NewPGRepository(db)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Shop"})
	cat := sqlitetest.InsertCategory(t, db, "Food", "food")

	p := &model.Product{
		BaseModel:   model.BaseModel{CreatedAt: sqlitetest.Epoch},
		VendorID:    v.ID,
		CategoryID:  &cat.ID,
		Name:        "Mango",
		Description: "Sweet",
		Price:       decimal.RequireFromString("3.5"),
		IsActive:    true,
	}
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mango", got.Name)
	assert.Equal(t, "3.50", got.Price.StringFixed(2))
	assert.True(t, got.CreatedAt.Equal(sqlitetest.Epoch))

	listing, err := repo.FindListingByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shop", listing.VendorName)
	require.NotNil(t, listing.CategorySlug)
	assert.Equal(t, "food", *listing.CategorySlug)

	got.Name = "Green mango"
	got.IsActive = false
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green mango", got.Name)
	assert.False(t, got.IsActive)

	require.NoError(t, repo.Delete(ctx, p.ID))
	got, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPGRepository_DeletingCategoryKeepsProducts(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.New(t)
	repo := NewPGRepository(db)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Shop"})
	cat := sqlitetest.InsertCategory(t, db, "Food", "food")
	p := sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, CategoryID: &cat.ID, Name: "Bread", IsActive: true})

	_, err := db.Exec(`DELETE FROM categories WHERE id = ?`, cat.ID)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CategoryID)
}

func TestPGRepository_CountActiveAndFindByVendor(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.New(t)
	repo := NewPGRepository(db)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Shop"})
	other := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Other"})

	for i, active := range []bool{true, true, false, true} {
		sqlitetest.InsertProduct(t, db, model.Product{
			BaseModel: model.BaseModel{CreatedAt: sqlitetest.Epoch.Add(time.Duration(i) * time.Hour)},
			VendorID:  v.ID,
			Name:      string(rune('a' + i)),
			IsActive:  active,
		})
	}
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: other.ID, Name: "z", IsActive: true})

	count, err := repo.CountActiveByVendor(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	all, err := repo.FindByVendor(ctx, &dto.VendorProductFilters{VendorID: v.ID})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page2, err := repo.FindByVendor(ctx, &dto.VendorProductFilters{VendorID: v.ID, ActiveOnly: true, Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "a", page2[0].Name)
}

func TestPGRepository_Catalog(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.New(t)
	repo := NewPGRepository(db)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Boutique"})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "Hat", IsActive: true})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "Cap", IsActive: true})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "Hat (old)", IsActive: false})

	f := &dto.CatalogFilters{SearchQuery: "HAT"}
	count, err := repo.CountCatalog(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	f = &dto.CatalogFilters{SearchQuery: "boutique", Page: 1, PageSize: 12}
	listings, err := repo.SearchCatalog(ctx, f)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}
