package sqlitetest

import (
	"fmt"
	"testing"
	"time"

	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Epoch is the base timestamp fixtures count from, so ordering by created_at is deterministic.
var Epoch = time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

func InsertUser(t testing.TB, db *sqlx.DB, username string) int64 {
	t.Helper()
	var id int64
	err := db.Get(&id, `INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		username, username+"@example.com", "x", Epoch)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

// InsertVendor creates a user and its vendor. Zero values get sensible defaults.
func InsertVendor(t testing.TB, db *sqlx.DB, v model.Vendor) *model.Vendor {
	t.Helper()
	if v.UserID == 0 {
		v.UserID = InsertUser(t, db, fmt.Sprintf("user-%s-%d", v.Name, time.Now().UnixNano()))
	}
	if v.SubscriptionPlan == "" {
		v.SubscriptionPlan = model.PlanFree
	}
	if v.WhatsAppNumber == "" {
		v.WhatsAppNumber = "+50937000000"
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = Epoch
	}

	err := db.Get(&v.ID, `INSERT INTO vendors (user_id, name, description, whatsapp_number, image_url,
            subscription_plan, subscription_end, is_verified, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		v.UserID, v.Name, v.Description, v.WhatsAppNumber, v.ImageURL,
		v.SubscriptionPlan, v.SubscriptionEnd, v.IsVerified, v.CreatedAt)
	if err != nil {
		t.Fatalf("insert vendor: %v", err)
	}
	return &v
}

func InsertCategory(t testing.TB, db *sqlx.DB, name, slug string) *model.Category {
	t.Helper()
	c := model.Category{Name: name, Slug: slug}
	if err := db.Get(&c.ID, `INSERT INTO categories (name, slug) VALUES (?, ?) RETURNING id`, name, slug); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	return &c
}

// InsertProduct stores p as given; IsActive is taken literally, so callers set it explicitly.
func InsertProduct(t testing.TB, db *sqlx.DB, p model.Product) *model.Product {
	t.Helper()
	if p.Price.IsZero() {
		p.Price = decimal.NewFromInt(100)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = Epoch
	}

	err := db.Get(&p.ID, `INSERT INTO products (vendor_id, category_id, name, description, price, image_url, is_active, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		p.VendorID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.IsActive, p.CreatedAt)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return &p
}
