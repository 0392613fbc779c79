package response

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

// ValidateCouponResponse echoes the quote the checkout will charge. The
// final and discount amounts always sum to the original price.
type ValidateCouponResponse struct {
	Valid         bool      `json:"valid"`
	CouponID      uuid.UUID `json:"coupon_id"`
	Code          string    `json:"code"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	OriginalCents int64     `json:"original_cents"`
	DiscountCents int64     `json:"discount_cents"`
	FinalCents    int64     `json:"final_cents"`
}

func FromCouponQuote(q *commands.CouponQuoteResult) ValidateCouponResponse {
	return ValidateCouponResponse{
		Valid:         true,
		CouponID:      q.CouponID,
		Code:          q.Code,
		DiscountType:  string(q.DiscountType),
		DiscountValue: q.DiscountValue,
		OriginalCents: q.OriginalCents,
		DiscountCents: q.DiscountCents,
		FinalCents:    q.FinalCents,
	}
}

type CheckoutResponse struct {
	SessionID     string `json:"session_id"`
	RedirectURL   string `json:"redirect_url"`
	Free          bool   `json:"free"`
	OriginalCents int64  `json:"original_cents"`
	DiscountCents int64  `json:"discount_cents"`
	FinalCents    int64  `json:"final_cents"`
}

func FromCheckoutResult(r *commands.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		SessionID:     r.SessionID,
		RedirectURL:   r.RedirectURL,
		Free:          r.Free,
		OriginalCents: r.OriginalCents,
		DiscountCents: r.DiscountCents,
		FinalCents:    r.FinalCents,
	}
}
