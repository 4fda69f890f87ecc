package model

import "time"

const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

const (
	FreeProductLimit    = 5
	PremiumProductLimit = 100
)

type Vendor struct {
	BaseModel
	UserID           int64      `db:"user_id" json:"-"`
	Name             string     `db:"name" json:"name"`
	Description      string     `db:"description" json:"description"`
	WhatsAppNumber   string     `db:"whatsapp_number" json:"whatsapp_number"`
	ImageURL         *string    `db:"image_url" json:"image_url"`
	SubscriptionPlan string     `db:"subscription_plan" json:"subscription_plan"`
	SubscriptionEnd  *time.Time `db:"subscription_end" json:"subscription_end"`
	IsVerified       bool       `db:"is_verified" json:"is_verified"`
}

// IsPremiumActive reports whether the premium plan is in effect on the calendar day of today,
// evaluated in today's location. An end date equal to today is still active.
func (v *Vendor) IsPremiumActive(today time.Time) bool {
	if v.SubscriptionPlan != PlanPremium || v.SubscriptionEnd == nil {
		return false
	}
	end := v.SubscriptionEnd
	y, m, d := today.Date()
	ey, em, ed := end.Date()
	if ey != y {
		return ey > y
	}
	if em != m {
		return em > m
	}
	return ed >= d
}

// ProductLimit is keyed on the declared plan, not on IsPremiumActive: a lapsed premium
// vendor keeps the premium limit.
func (v *Vendor) ProductLimit() int {
	if v.SubscriptionPlan == PlanFree {
		return FreeProductLimit
	}
	return PremiumProductLimit
}
