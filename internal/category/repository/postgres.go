package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `INSERT INTO categories (name, slug) VALUES (:name, :slug) RETURNING id`

	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, &c.ID, c)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.findOne(ctx, `SELECT id, name, slug FROM categories WHERE id = ? LIMIT 1`, id)
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.findOne(ctx, `SELECT id, name, slug FROM categories WHERE slug = ? LIMIT 1`, slug)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg any) (*model.Category, error) {
	var category model.Category
	err := r.DB.GetContext(ctx, &category, r.DB.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// FindAll returns every category ordered by name, for use as filter facets.
func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	err := r.DB.SelectContext(ctx, &categories, `SELECT id, name, slug FROM categories ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	// products.category_id is ON DELETE SET NULL, so products survive with no category.
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM categories WHERE id = ?"), id)
	return err
}
