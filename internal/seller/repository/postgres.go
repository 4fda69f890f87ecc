package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const vendorColumns = `id, user_id, name, description, whatsapp_number, image_url,
        subscription_plan, subscription_end, is_verified, created_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Vendor, error) {
	return r.findOne(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE id = ? LIMIT 1", id)
}

func (r *PGRepository) FindByUserID(ctx context.Context, userID int64) (*model.Vendor, error) {
	return r.findOne(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE user_id = ? LIMIT 1", userID)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg any) (*model.Vendor, error) {
	var v model.Vendor
	err := r.DB.GetContext(ctx, &v, r.DB.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// ListRail orders by two keys: the plan tier (premium before anything else), then
// recency. Ties on created_at fall back to the newest id.
func (r *PGRepository) ListRail(ctx context.Context, limit int) ([]model.Vendor, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM vendors
        WHERE is_verified = TRUE
        ORDER BY CASE WHEN subscription_plan = :premium THEN 0 ELSE 1 END ASC,
                 created_at DESC,
                 id DESC
        LIMIT %d`, vendorColumns, limit)

	return r.selectNamed(ctx, query, map[string]interface{}{"premium": model.PlanPremium})
}

func (r *PGRepository) ListVerified(ctx context.Context) ([]model.Vendor, error) {
	query := "SELECT " + vendorColumns + " FROM vendors WHERE is_verified = TRUE ORDER BY id ASC"
	return r.selectNamed(ctx, query, map[string]interface{}{})
}

func (r *PGRepository) selectNamed(ctx context.Context, query string, args map[string]interface{}) ([]model.Vendor, error) {
	vendors := []model.Vendor{}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &vendors, args); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *PGRepository) UpdateProfile(ctx context.Context, v *model.Vendor) error {
	query := `
        UPDATE vendors
        SET name = :name,
            description = :description,
            whatsapp_number = :whatsapp_number,
            image_url = :image_url
        WHERE id = :id AND user_id = :user_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	return r.execAffectingOne(ctx, "UPDATE vendors SET is_verified = ? WHERE id = ?", verified, id)
}

func (r *PGRepository) SetPlan(ctx context.Context, id int64, plan string, end *time.Time) error {
	return r.execAffectingOne(ctx, "UPDATE vendors SET subscription_plan = ?, subscription_end = ? WHERE id = ?", plan, end, id)
}

func (r *PGRepository) execAffectingOne(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
