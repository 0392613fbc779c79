package coupon

import (
	"errors"
	"time"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"

	"github.com/google/uuid"
)

// Rejection reasons, in the order the redemption checks run. The order is
// part of the contract: an expired coupon must never surface as
// "usage limit reached".
var (
	ErrInactive          = errors.New("invalid code")
	ErrExpired           = errors.New("expired")
	ErrNotYetActive      = errors.New("not yet active")
	ErrNotEligible       = errors.New("not eligible for this membership")
	ErrUsageLimitReached = errors.New("usage limit reached")
	ErrAlreadyUsed       = errors.New("already used")
)

// MembershipWildcard opens a coupon to every membership category.
const MembershipWildcard = "all"

const DefaultMaxUsesPerUser = 1

type Coupon struct {
	id                 uuid.UUID
	code               Code
	discount           Discount
	allowedMemberships []string
	maxUses            *int32
	currentUses        int32
	maxUsesPerUser     int32
	validFrom          *time.Time
	validUntil         *time.Time
	isActive           bool
	stripeCouponID     *string
}

func NewCoupon(
	id uuid.UUID,
	code string,
	amountOffCents *int64,
	percentOff *float64,
	allowedMemberships []string,
	maxUses *int32,
	currentUses int32,
	maxUsesPerUser int32,
	validFrom, validUntil *time.Time,
	isActive bool,
	stripeCouponID *string,
) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	discount, err := NewDiscount(amountOffCents, percentOff)
	if err != nil {
		return nil, err
	}

	if len(allowedMemberships) == 0 {
		allowedMemberships = []string{MembershipWildcard}
	}
	if maxUsesPerUser <= 0 {
		maxUsesPerUser = DefaultMaxUsesPerUser
	}

	return &Coupon{
		id:                 id,
		code:               couponCode,
		discount:           discount,
		allowedMemberships: allowedMemberships,
		maxUses:            maxUses,
		currentUses:        currentUses,
		maxUsesPerUser:     maxUsesPerUser,
		validFrom:          validFrom,
		validUntil:         validUntil,
		isActive:           isActive,
		stripeCouponID:     stripeCouponID,
	}, nil
}

// ValidateRedemption runs the redemption checks in their fixed order and
// short-circuits on the first failure. It is read-only; counters move only
// after the payment provider confirms.
func (c *Coupon) ValidateRedemption(now time.Time, memberType member.Type, priorUserUses int32) error {
	if !c.isActive {
		return ErrInactive
	}

	if c.validFrom != nil && now.Before(*c.validFrom) {
		return ErrNotYetActive
	}
	if c.validUntil != nil && now.After(*c.validUntil) {
		return ErrExpired
	}

	if !c.EligibleFor(memberType) {
		return ErrNotEligible
	}

	// maxUses == 0 rejects even the first attempt.
	if c.maxUses != nil && c.currentUses >= *c.maxUses {
		return ErrUsageLimitReached
	}

	if priorUserUses >= c.maxUsesPerUser {
		return ErrAlreadyUsed
	}

	return nil
}

// ValidateAnonymousRedemption runs only the identity-independent checks.
// Used when the caller's bearer token could not be decoded: checkout must
// proceed, but eligibility and per-user history cannot be consulted.
func (c *Coupon) ValidateAnonymousRedemption(now time.Time) error {
	if !c.isActive {
		return ErrInactive
	}
	if c.validFrom != nil && now.Before(*c.validFrom) {
		return ErrNotYetActive
	}
	if c.validUntil != nil && now.After(*c.validUntil) {
		return ErrExpired
	}
	if c.maxUses != nil && c.currentUses >= *c.maxUses {
		return ErrUsageLimitReached
	}
	return nil
}

func (c *Coupon) EligibleFor(memberType member.Type) bool {
	for _, tag := range c.allowedMemberships {
		if tag == MembershipWildcard || tag == memberType.String() {
			return true
		}
	}
	return false
}

// Quote computes the discount for a price. finalCents + discountCents always
// equals originalCents, and finalCents is never negative.
type Quote struct {
	DiscountCents int64
	FinalCents    int64
	DiscountType  DiscountType
	DiscountValue float64
}

func (c *Coupon) Quote(originalCents int64) Quote {
	discountCents := c.discount.AmountFor(originalCents)
	return Quote{
		DiscountCents: discountCents,
		FinalCents:    originalCents - discountCents,
		DiscountType:  c.discount.Type(),
		DiscountValue: c.discount.Value(),
	}
}

func (c *Coupon) ID() uuid.UUID                 { return c.id }
func (c *Coupon) Code() Code                    { return c.code }
func (c *Coupon) Discount() Discount            { return c.discount }
func (c *Coupon) AllowedMemberships() []string  { return c.allowedMemberships }
func (c *Coupon) MaxUses() *int32               { return c.maxUses }
func (c *Coupon) CurrentUses() int32            { return c.currentUses }
func (c *Coupon) MaxUsesPerUser() int32         { return c.maxUsesPerUser }
func (c *Coupon) ValidFrom() *time.Time         { return c.validFrom }
func (c *Coupon) ValidUntil() *time.Time        { return c.validUntil }
func (c *Coupon) IsActive() bool                { return c.isActive }
func (c *Coupon) StripeCouponID() *string       { return c.stripeCouponID }

// HasProviderDiscount reports whether this coupon is mirrored into the
// payment provider's native discount primitive. When true, checkout sends the
// original price plus the provider-side discount object instead of a locally
// discounted price.
func (c *Coupon) HasProviderDiscount() bool {
	return c.stripeCouponID != nil && *c.stripeCouponID != ""
}
