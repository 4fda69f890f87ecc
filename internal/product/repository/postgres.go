package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/pagination"
	"github.com/fekuna/marketplace-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, vendor_id, category_id, name, description, price, image_url, is_active, created_at`

const listingSelect = `
        SELECT p.id, p.vendor_id, p.category_id, p.name, p.description, p.price,
               p.image_url, p.is_active, p.created_at,
               v.name AS vendor_name,
               v.whatsapp_number AS vendor_whatsapp_number,
               v.subscription_plan AS vendor_subscription_plan,
               c.name AS category_name,
               c.slug AS category_slug
        FROM products p
        JOIN vendors v ON v.id = p.vendor_id
        LEFT JOIN categories c ON c.id = p.category_id`

// Newest first; equal timestamps fall back to the most recently inserted row.
const listingOrder = ` ORDER BY p.created_at DESC, p.id DESC`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            vendor_id, category_id, name, description, price, image_url, is_active, created_at
        )
        VALUES (
            :vendor_id, :category_id, :name, :description, :price, :image_url, :is_active, :created_at
        )
        RETURNING id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, &p.ID, p)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	query := r.DB.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	normalize(&product)
	return &product, nil
}

func (r *PGRepository) FindListingByID(ctx context.Context, id int64) (*model.ProductListing, error) {
	var listing model.ProductListing
	query := r.DB.Rebind(listingSelect + ` WHERE p.id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &listing, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	normalize(&listing.Product)
	return &listing, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            name = :name,
            description = :description,
            price = :price,
            image_url = :image_url,
            is_active = :is_active
        WHERE id = :id AND vendor_id = :vendor_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM products WHERE id = ?"), id)
	return err
}

func (r *PGRepository) CountActiveByVendor(ctx context.Context, vendorID int64) (int, error) {
	var count int
	query := r.DB.Rebind(`SELECT count(*) FROM products WHERE vendor_id = ? AND is_active = TRUE`)
	if err := r.DB.GetContext(ctx, &count, query, vendorID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepository) FindByVendor(ctx context.Context, f *dto.VendorProductFilters) ([]model.ProductListing, error) {
	conditions := []string{"p.vendor_id = :vendor_id"}
	args := map[string]interface{}{"vendor_id": f.VendorID}
	if f.ActiveOnly {
		conditions = append(conditions, "p.is_active = TRUE")
	}

	query := listingSelect + " WHERE " + strings.Join(conditions, " AND ") + listingOrder
	query += limitClause(f.Page, f.PageSize)

	return r.selectListings(ctx, query, args)
}

// catalogWhere builds the predicate shared by CountCatalog and SearchCatalog.
// Vendor verification is not part of it: unverified vendors' active
// products are still listed.
func catalogWhere(f *dto.CatalogFilters) (string, map[string]interface{}) {
	conditions := []string{"p.is_active = TRUE"}
	args := map[string]interface{}{}

	if f.CategorySlug != "" {
		conditions = append(conditions, "c.slug = :category_slug")
		args["category_slug"] = f.CategorySlug
	}
	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		conditions = append(conditions, `(LOWER(p.name) LIKE :search ESCAPE '\'`+
			` OR LOWER(p.description) LIKE :search ESCAPE '\'`+
			` OR LOWER(v.name) LIKE :search ESCAPE '\')`)
		args["search"] = "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PGRepository) CountCatalog(ctx context.Context, f *dto.CatalogFilters) (int, error) {
	whereClause, args := catalogWhere(f)
	countQuery := `
        SELECT count(*)
        FROM products p
        JOIN vendors v ON v.id = p.vendor_id
        LEFT JOIN categories c ON c.id = p.category_id` + whereClause

	nstmt, err := r.DB.PrepareNamedContext(ctx, countQuery)
	if err != nil {
		return 0, err
	}
	defer nstmt.Close()

	var count int
	if err := nstmt.GetContext(ctx, &count, args); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepository) SearchCatalog(ctx context.Context, f *dto.CatalogFilters) ([]model.ProductListing, error) {
	whereClause, args := catalogWhere(f)
	query := listingSelect + whereClause + listingOrder + limitClause(f.Page, f.PageSize)
	return r.selectListings(ctx, query, args)
}

func (r *PGRepository) selectListings(ctx context.Context, query string, args map[string]interface{}) ([]model.ProductListing, error) {
	listings := []model.ProductListing{}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &listings, args); err != nil {
		return nil, err
	}
	for i := range listings {
		normalize(&listings[i].Product)
	}
	return listings, nil
}

func limitClause(page, pageSize int) string {
	if pageSize <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, pagination.Offset(page, pageSize))
}

// normalize pins the price to two fractional digits regardless of how the driver returned it.
func normalize(p *model.Product) {
	p.Price = p.Price.Round(2)
}
