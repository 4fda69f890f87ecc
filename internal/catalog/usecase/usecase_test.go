package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/marketplace-service/internal/catalog"
	"github.com/fekuna/marketplace-service/internal/catalog/dto"
	catRepoPkg "github.com/fekuna/marketplace-service/internal/category/repository"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/database/sqlitetest"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	prodRepoPkg "github.com/fekuna/marketplace-service/internal/product/repository"
	vendorRepoPkg "github.com/fekuna/marketplace-service/internal/seller/repository"
)

func newUseCase(t *testing.T) (catalog.UseCase, *sqlx.DB) {
	t.Helper()
	db := sqlitetest.New(t)
	uc := NewCatalogUseCase(
		prodRepoPkg.NewPGRepository(db),
		vendorRepoPkg.NewPGRepository(db),
		catRepoPkg.NewPGRepository(db),
		Options{PageSize: 12, VendorRailLimit: 12},
		logger.NewNop(),
	)
	return uc, db
}

func names(listings []model.ProductListing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Name)
	}
	return out
}

func at(minutes int) model.BaseModel {
	return model.BaseModel{CreatedAt: sqlitetest.Epoch.Add(time.Duration(minutes) * time.Minute)}
}

func TestBrowse_OnlyActiveProductsRegardlessOfVendorVerification(t *testing.T) {
	uc, db := newUseCase(t)
	verified := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Verified", IsVerified: true})
	unverified := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Unverified"})

	sqlitetest.InsertProduct(t, db, model.Product{VendorID: verified.ID, Name: "Visible", IsActive: true, BaseModel: at(1)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: verified.ID, Name: "Hidden", IsActive: false, BaseModel: at(2)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: unverified.ID, Name: "Listed anyway", IsActive: true, BaseModel: at(3)})

	res, err := uc.Browse(context.Background(), &dto.BrowseInput{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Listed anyway", "Visible"}, names(res.Products.Items))
	require.Len(t, res.Vendors, 1)
	assert.Equal(t, "Verified", res.Vendors[0].Name)
}

func TestBrowse_VendorRailPremiumFirst(t *testing.T) {
	uc, db := newUseCase(t)
	end := sqlitetest.Epoch.AddDate(1, 0, 0)

	sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Old free", IsVerified: true, BaseModel: at(1)})
	sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Old premium", IsVerified: true, SubscriptionPlan: model.PlanPremium, SubscriptionEnd: &end, BaseModel: at(2)})
	sqlitetest.InsertVendor(t, db, model.Vendor{Name: "New free", IsVerified: true, BaseModel: at(3)})
	sqlitetest.InsertVendor(t, db, model.Vendor{Name: "New premium", IsVerified: true, SubscriptionPlan: model.PlanPremium, SubscriptionEnd: &end, BaseModel: at(4)})
	sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Unverified premium", SubscriptionPlan: model.PlanPremium, SubscriptionEnd: &end, BaseModel: at(5)})

	res, err := uc.Browse(context.Background(), &dto.BrowseInput{Page: 1})
	require.NoError(t, err)

	var got []string
	for _, v := range res.Vendors {
		got = append(got, v.Name)
	}
	assert.Equal(t, []string{"New premium", "Old premium", "New free", "Old free"}, got)
}

func TestBrowse_VendorRailLimit(t *testing.T) {
	uc, db := newUseCase(t)
	for i := 0; i < 15; i++ {
		sqlitetest.InsertVendor(t, db, model.Vendor{Name: fmt.Sprintf("v%02d", i), IsVerified: true, BaseModel: at(i)})
	}

	res, err := uc.Browse(context.Background(), &dto.BrowseInput{Page: 1})
	require.NoError(t, err)
	require.Len(t, res.Vendors, 12)
	assert.Equal(t, "v14", res.Vendors[0].Name)
}

func TestBrowse_Search(t *testing.T) {
	uc, db := newUseCase(t)
	shoeShop := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "ShoeCity"})
	other := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Grocer"})

	sqlitetest.InsertProduct(t, db, model.Product{VendorID: other.ID, Name: "Running Shoes", IsActive: true, BaseModel: at(1)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: other.ID, Name: "Sandals", Description: "Beach SHOE for summer", IsActive: true, BaseModel: at(2)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: shoeShop.ID, Name: "Laces", IsActive: true, BaseModel: at(3)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: other.ID, Name: "Rice", IsActive: true, BaseModel: at(4)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: other.ID, Name: "Old shoe", IsActive: false, BaseModel: at(5)})

	res, err := uc.Browse(context.Background(), &dto.BrowseInput{Query: "  shoe ", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Laces", "Sandals", "Running Shoes"}, names(res.Products.Items))
	assert.Equal(t, "shoe", res.Query)
}

func TestBrowse_SearchWildcardsAreLiteral(t *testing.T) {
	uc, db := newUseCase(t)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Shop"})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "100% cotton", IsActive: true, BaseModel: at(1)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "1000 beads", IsActive: true, BaseModel: at(2)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "snake_case mug", IsActive: true, BaseModel: at(3)})

	res, err := uc.Browse(context.Background(), &dto.BrowseInput{Query: "0%", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% cotton"}, names(res.Products.Items))

	res, err = uc.Browse(context.Background(), &dto.BrowseInput{Query: "e_c", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"snake_case mug"}, names(res.Products.Items))
}

func TestBrowse_CategoryFilter(t *testing.T) {
	uc, db := newUseCase(t)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Shop"})
	shoes := sqlitetest.InsertCategory(t, db, "Shoes", "shoes")
	food := sqlitetest.InsertCategory(t, db, "Food", "food")

	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, CategoryID: &shoes.ID, Name: "Boots", IsActive: true, BaseModel: at(1)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, CategoryID: &food.ID, Name: "Bread", IsActive: true, BaseModel: at(2)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "Uncategorized", IsActive: true, BaseModel: at(3)})

	res, err := uc.Browse(context.Background(), &dto.BrowseInput{CategorySlug: "shoes", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Boots"}, names(res.Products.Items))
	assert.Equal(t, "shoes", res.CurrentCategory)

	res, err = uc.Browse(context.Background(), &dto.BrowseInput{CategorySlug: "does-not-exist", Page: 1})
	require.NoError(t, err)
	assert.Empty(t, res.Products.Items)
	assert.Equal(t, 1, res.Products.NumPages)

	var catNames []string
	for _, c := range res.Categories {
		catNames = append(catNames, c.Name)
	}
	assert.Equal(t, []string{"Food", "Shoes"}, catNames)
}

func TestBrowse_Pagination(t *testing.T) {
	uc, db := newUseCase(t)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Shop"})
	for i := 0; i < 25; i++ {
		sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: fmt.Sprintf("p%02d", i), IsActive: true, BaseModel: at(i)})
	}

	tests := []struct {
		page      int
		wantPage  int
		wantCount int
		wantFirst string
	}{
		{page: 1, wantPage: 1, wantCount: 12, wantFirst: "p24"},
		{page: 2, wantPage: 2, wantCount: 12, wantFirst: "p12"},
		{page: 3, wantPage: 3, wantCount: 1, wantFirst: "p00"},
		{page: 0, wantPage: 1, wantCount: 12, wantFirst: "p24"},
		{page: -4, wantPage: 1, wantCount: 12, wantFirst: "p24"},
		{page: 99, wantPage: 3, wantCount: 1, wantFirst: "p00"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			res, err := uc.Browse(context.Background(), &dto.BrowseInput{Page: tt.page})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, res.Products.Number)
			assert.Equal(t, 3, res.Products.NumPages)
			assert.Equal(t, 25, res.Products.TotalItems)
			require.Len(t, res.Products.Items, tt.wantCount)
			assert.Equal(t, tt.wantFirst, res.Products.Items[0].Name)
		})
	}
}

func TestBrowse_EqualTimestampsNewestIDFirst(t *testing.T) {
	uc, db := newUseCase(t)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Shop"})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "first", IsActive: true})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "second", IsActive: true})

	res, err := uc.Browse(context.Background(), &dto.BrowseInput{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, names(res.Products.Items))
}

func TestBrowse_EmptyCatalog(t *testing.T) {
	uc, _ := newUseCase(t)

	res, err := uc.Browse(context.Background(), &dto.BrowseInput{Query: "anything", Page: 5})
	require.NoError(t, err)
	assert.NotNil(t, res.Products.Items)
	assert.Empty(t, res.Products.Items)
	assert.Equal(t, 1, res.Products.Number)
	assert.Equal(t, 1, res.Products.NumPages)
	assert.NotNil(t, res.Vendors)
	assert.NotNil(t, res.Categories)
}

func TestProductDetail(t *testing.T) {
	uc, db := newUseCase(t)
	v := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Shop", WhatsAppNumber: "+50937001122"})
	active := sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "On sale", IsActive: true})
	inactive := sqlitetest.InsertProduct(t, db, model.Product{VendorID: v.ID, Name: "Withdrawn", IsActive: false})

	got, err := uc.ProductDetail(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, "On sale", got.Name)
	assert.Equal(t, "Shop", got.VendorName)
	assert.Equal(t, "+50937001122", got.VendorWhatsAppNumber)

	_, err = uc.ProductDetail(context.Background(), inactive.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = uc.ProductDetail(context.Background(), 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestVendorStorefront(t *testing.T) {
	uc, db := newUseCase(t)
	verified := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Verified", IsVerified: true})
	unverified := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Unverified"})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: verified.ID, Name: "Old", IsActive: true, BaseModel: at(1)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: verified.ID, Name: "New", IsActive: true, BaseModel: at(2)})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: verified.ID, Name: "Off", IsActive: false, BaseModel: at(3)})

	sf, err := uc.VendorStorefront(context.Background(), verified.ID)
	require.NoError(t, err)
	assert.Equal(t, "Verified", sf.Vendor.Name)
	assert.Equal(t, []string{"New", "Old"}, names(sf.Products))

	_, err = uc.VendorStorefront(context.Background(), unverified.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = uc.VendorStorefront(context.Background(), 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListings(t *testing.T) {
	uc, db := newUseCase(t)
	verified := sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Verified", IsVerified: true})
	sqlitetest.InsertVendor(t, db, model.Vendor{Name: "Unverified"})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: verified.ID, Name: "Active", IsActive: true})
	sqlitetest.InsertProduct(t, db, model.Product{VendorID: verified.ID, Name: "Inactive", IsActive: false})

	vendors, err := uc.ListVerifiedVendors(context.Background())
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Verified", vendors[0].Name)

	products, err := uc.ListActiveProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Active"}, names(products))
}
