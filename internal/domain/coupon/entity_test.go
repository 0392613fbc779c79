//go:build unit

package coupon

import (
	"testing"
	"time"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i32(v int32) *int32       { return &v }
func i64(v int64) *int64       { return &v }
func f64(v float64) *float64   { return &v }
func ts(t time.Time) *time.Time { return &t }

func mustCoupon(t *testing.T, opts func(c *couponParams)) *Coupon {
	t.Helper()

	p := &couponParams{
		code:           "STUDENT25",
		percentOff:     f64(25),
		allowed:        []string{MembershipWildcard},
		maxUsesPerUser: 1,
		isActive:       true,
	}
	if opts != nil {
		opts(p)
	}

	c, err := NewCoupon(
		uuid.New(),
		p.code,
		p.amountOffCents,
		p.percentOff,
		p.allowed,
		p.maxUses,
		p.currentUses,
		p.maxUsesPerUser,
		p.validFrom,
		p.validUntil,
		p.isActive,
		p.stripeCouponID,
	)
	require.NoError(t, err)
	return c
}

type couponParams struct {
	code           string
	amountOffCents *int64
	percentOff     *float64
	allowed        []string
	maxUses        *int32
	currentUses    int32
	maxUsesPerUser int32
	validFrom      *time.Time
	validUntil     *time.Time
	isActive       bool
	stripeCouponID *string
}

func TestValidateRedemption(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name          string
		opts          func(p *couponParams)
		memberType    member.Type
		priorUserUses int32
		wantErr       error
	}{
		{
			name:       "valid coupon passes all checks",
			memberType: member.TypeStudent,
		},
		{
			name:       "inactive coupon rejected as invalid code",
			opts:       func(p *couponParams) { p.isActive = false },
			memberType: member.TypeStudent,
			wantErr:    ErrInactive,
		},
		{
			name:       "not yet active before validFrom",
			opts:       func(p *couponParams) { p.validFrom = ts(future) },
			memberType: member.TypeStudent,
			wantErr:    ErrNotYetActive,
		},
		{
			name:       "expired after validUntil",
			opts:       func(p *couponParams) { p.validUntil = ts(past) },
			memberType: member.TypeStudent,
			wantErr:    ErrExpired,
		},
		{
			name: "within window passes",
			opts: func(p *couponParams) {
				p.validFrom = ts(past)
				p.validUntil = ts(future)
			},
			memberType: member.TypeStudent,
		},
		{
			name:       "membership restriction rejects other categories",
			opts:       func(p *couponParams) { p.allowed = []string{member.TypeStudent.String()} },
			memberType: member.TypeCorporate,
			wantErr:    ErrNotEligible,
		},
		{
			name:       "membership restriction admits listed category",
			opts:       func(p *couponParams) { p.allowed = []string{member.TypeStudent.String()} },
			memberType: member.TypeStudent,
		},
		{
			name: "global cap reached",
			opts: func(p *couponParams) {
				p.maxUses = i32(10)
				p.currentUses = 10
			},
			memberType: member.TypeStudent,
			wantErr:    ErrUsageLimitReached,
		},
		{
			name:       "maxUses zero rejects the first attempt",
			opts:       func(p *couponParams) { p.maxUses = i32(0) },
			memberType: member.TypeStudent,
			wantErr:    ErrUsageLimitReached,
		},
		{
			name:          "per-user cap reached",
			priorUserUses: 1,
			memberType:    member.TypeStudent,
			wantErr:       ErrAlreadyUsed,
		},
		{
			name: "expired wins over exhausted cap (check order)",
			opts: func(p *couponParams) {
				p.validUntil = ts(past)
				p.maxUses = i32(0)
			},
			memberType: member.TypeStudent,
			wantErr:    ErrExpired,
		},
		{
			name: "ineligibility wins over exhausted cap (check order)",
			opts: func(p *couponParams) {
				p.allowed = []string{member.TypeStudent.String()}
				p.maxUses = i32(0)
			},
			memberType: member.TypeCorporate,
			wantErr:    ErrNotEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCoupon(t, tt.opts)
			err := c.ValidateRedemption(now, tt.memberType, tt.priorUserUses)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name          string
		opts          func(p *couponParams)
		originalCents int64
		wantDiscount  int64
		wantFinal     int64
	}{
		{
			name:          "25 percent off 100 dollars",
			originalCents: 10000,
			wantDiscount:  2500,
			wantFinal:     7500,
		},
		{
			name:          "percentage of zero price",
			originalCents: 0,
			wantDiscount:  0,
			wantFinal:     0,
		},
		{
			name:          "100 percent off yields free checkout",
			opts:          func(p *couponParams) { p.percentOff = f64(100) },
			originalCents: 4999,
			wantDiscount:  4999,
			wantFinal:     0,
		},
		{
			name: "fixed discount below price",
			opts: func(p *couponParams) {
				p.percentOff = nil
				p.amountOffCents = i64(1500)
			},
			originalCents: 10000,
			wantDiscount:  1500,
			wantFinal:     8500,
		},
		{
			name: "fixed discount clamped to price",
			opts: func(p *couponParams) {
				p.percentOff = nil
				p.amountOffCents = i64(20000)
			},
			originalCents: 10000,
			wantDiscount:  10000,
			wantFinal:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCoupon(t, tt.opts)
			q := c.Quote(tt.originalCents)

			assert.Equal(t, tt.wantDiscount, q.DiscountCents)
			assert.Equal(t, tt.wantFinal, q.FinalCents)
			assert.Equal(t, tt.originalCents, q.FinalCents+q.DiscountCents,
				"final + discount must equal original exactly")
			assert.GreaterOrEqual(t, q.FinalCents, int64(0))
		})
	}
}

func TestDiscountAmountForClampsMisconfiguredPercentage(t *testing.T) {
	// A >100% value is rejected at creation; AmountFor still clamps in case
	// such a record reaches the domain from older data.
	d := Discount{percentOff: f64(150)}
	assert.Equal(t, int64(10000), d.AmountFor(10000))
}

func TestNewDiscountValidation(t *testing.T) {
	tests := []struct {
		name           string
		amountOffCents *int64
		percentOff     *float64
		wantErr        error
	}{
		{name: "valid percentage", percentOff: f64(25)},
		{name: "valid fixed", amountOffCents: i64(500)},
		{name: "both set", amountOffCents: i64(500), percentOff: f64(25), wantErr: ErrAmbiguousDiscount},
		{name: "neither set", wantErr: ErrMissingDiscount},
		{name: "percentage above 100", percentOff: f64(150), wantErr: ErrInvalidDiscountPercent},
		{name: "negative percentage", percentOff: f64(-1), wantErr: ErrInvalidDiscountPercent},
		{name: "negative fixed amount", amountOffCents: i64(-500), wantErr: ErrInvalidDiscountAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDiscount(tt.amountOffCents, tt.percentOff)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Code
		wantErr bool
	}{
		{name: "lower case is canonicalized", input: "student25", want: Code("STUDENT25")},
		{name: "surrounding whitespace trimmed", input: "  SAVE10  ", want: Code("SAVE10")},
		{name: "too short", input: "AB", wantErr: true},
		{name: "invalid characters", input: "HALF OFF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCouponCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCouponDefaults(t *testing.T) {
	c := mustCoupon(t, func(p *couponParams) {
		p.allowed = nil
		p.maxUsesPerUser = 0
	})

	assert.Equal(t, []string{MembershipWildcard}, c.AllowedMemberships())
	assert.Equal(t, int32(DefaultMaxUsesPerUser), c.MaxUsesPerUser())
	assert.False(t, c.HasProviderDiscount())
}
