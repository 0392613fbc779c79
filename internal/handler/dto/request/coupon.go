package request

import "time"

type CreateCouponRequest struct {
	Code string `json:"code" binding:"required"`

	// Exactly one of amount_off_cents / percent_off must be set.
	AmountOffCents *int64   `json:"amount_off_cents,omitempty" binding:"omitempty,min=0"`
	PercentOff     *float64 `json:"percent_off,omitempty" binding:"omitempty,gt=0,lte=100"`

	AllowedMemberships []string   `json:"allowed_memberships,omitempty"`
	MaxUses            *int32     `json:"max_uses,omitempty" binding:"omitempty,min=0"`
	MaxUsesPerUser     *int32     `json:"max_uses_per_user,omitempty" binding:"omitempty,min=1"`
	ValidFrom          *time.Time `json:"valid_from,omitempty"`
	ValidUntil         *time.Time `json:"valid_until,omitempty"`
	StripeCouponID     *string    `json:"stripe_coupon_id,omitempty"`
}
