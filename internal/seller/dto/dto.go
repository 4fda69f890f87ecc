package dto

import (
	"time"

	"github.com/fekuna/marketplace-service/internal/model"
)

type PremiumStatus struct {
	Vendor          *model.Vendor `json:"vendor"`
	Plan            string        `json:"subscription_plan"`
	SubscriptionEnd *time.Time    `json:"subscription_end"`
	IsPremiumActive bool          `json:"is_premium_active"`
	ProductLimit    int           `json:"product_limit"`
}
