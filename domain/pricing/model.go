package pricing

import "time"

// Tier is one subscription tier offered in a country. Currency is derived
// from the locale catalog at write time, never supplied by the client.
type Tier struct {
	ID           int64     `db:"id" json:"id"`
	Country      string    `db:"country" json:"country"`
	Name         string    `db:"name" json:"name"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	Currency     string    `db:"currency" json:"currency"`
	BillingCycle string    `db:"billing_cycle" json:"billing_cycle"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Billing cycles
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// UpsertTierRequest is the payload for creating or editing a tier.
type UpsertTierRequest struct {
	Country      string `json:"country" validate:"required"`
	Name         string `json:"name" validate:"required"`
	PriceCents   int64  `json:"price_cents" validate:"gte=0"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
	Active       *bool  `json:"active"`
}
