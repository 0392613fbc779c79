package request

import (
	"strings"

	"github.com/google/uuid"
)

type ValidateCouponRequest struct {
	Code     string    `json:"code" binding:"required"`
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

type CreateCheckoutRequest struct {
	CourseID   uuid.UUID `json:"course_id" binding:"required"`
	CouponCode *string   `json:"coupon_code,omitempty"`
}

func (r CreateCheckoutRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
