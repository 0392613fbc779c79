package queries

import (
	"time"

	"github.com/google/uuid"
)

// CouponView represents read-optimized coupon data for the admin surface
type CouponView struct {
	ID                 uuid.UUID  `json:"id"`
	Code               string     `json:"code"`
	AmountOffCents     *int64     `json:"amount_off_cents,omitempty"`
	PercentOff         *float64   `json:"percent_off,omitempty"`
	AllowedMemberships []string   `json:"allowed_memberships"`
	MaxUses            *int32     `json:"max_uses,omitempty"`
	CurrentUses        int32      `json:"current_uses"`
	MaxUsesPerUser     int32      `json:"max_uses_per_user"`
	ValidFrom          *time.Time `json:"valid_from,omitempty"`
	ValidUntil         *time.Time `json:"valid_until,omitempty"`
	IsActive           bool       `json:"is_active"`
	StripeCouponID     *string    `json:"stripe_coupon_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CourseView represents read-optimized course data
type CourseView struct {
	ID          uuid.UUID `json:"id"`
	TrainerID   uuid.UUID `json:"trainer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	ModuleCount int32     `json:"module_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CourseListItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	PriceCents  int64     `json:"price_cents"`
	ModuleCount int32     `json:"module_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// EnrollmentView represents one course a member holds access to
type EnrollmentView struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	CourseTitle string    `json:"course_title"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthorizedMemberView represents read-optimized member identity with
// authorization info, independent of which category table it came from
type AuthorizedMemberView struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	MemberType string    `json:"member_type"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
}

// CouponUsageView represents one ledger entry for the admin surface
type CouponUsageView struct {
	ID              uuid.UUID `json:"id"`
	CouponID        uuid.UUID `json:"coupon_id"`
	MemberID        uuid.UUID `json:"member_id"`
	MemberType      string    `json:"member_type"`
	CourseID        uuid.UUID `json:"course_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	DiscountCents   int64     `json:"discount_cents"`
	OriginalCents   int64     `json:"original_cents"`
	FinalCents      int64     `json:"final_cents"`
	CreatedAt       time.Time `json:"created_at"`
}
