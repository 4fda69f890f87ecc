package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateUserWithVendor(ctx context.Context, u *model.User, v *model.Vendor) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userQuery, userArgs, err := tx.BindNamed(`
        INSERT INTO users (username, email, password_hash, created_at)
        VALUES (:username, :email, :password_hash, :created_at)
        RETURNING id
    `, u)
	if err != nil {
		return err
	}
	if err := tx.GetContext(ctx, &u.ID, userQuery, userArgs...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	v.UserID = u.ID
	vendorQuery, vendorArgs, err := tx.BindNamed(`
        INSERT INTO vendors (
            user_id, name, description, whatsapp_number, image_url,
            subscription_plan, subscription_end, is_verified, created_at
        )
        VALUES (
            :user_id, :name, :description, :whatsapp_number, :image_url,
            :subscription_plan, :subscription_end, :is_verified, :created_at
        )
        RETURNING id
    `, v)
	if err != nil {
		return err
	}
	if err := tx.GetContext(ctx, &v.ID, vendorQuery, vendorArgs...); err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}

	return tx.Commit()
}

const userColumns = `id, username, email, password_hash, created_at`

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id)
}

func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE username = ? LIMIT 1", username)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT count(*) FROM users WHERE username = ?", username)
}

// EmailExists compares case-folded; emails are stored lower-cased.
func (r *PGRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT count(*) FROM users WHERE LOWER(email) = LOWER(?)", email)
}

func (r *PGRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(query), arg); err != nil {
		return false, err
	}
	return count > 0, nil
}
