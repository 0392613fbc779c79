package response

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateCouponResponse struct {
	ID uuid.UUID `json:"id"`
}

type ReconcileUsesResponse struct {
	CouponID     uuid.UUID `json:"coupon_id"`
	PreviousUses int32     `json:"previous_uses"`
	LedgerUses   int32     `json:"ledger_uses"`
	Corrected    bool      `json:"corrected"`
}

func FromReconcileResult(r *commands.ReconcileResult) ReconcileUsesResponse {
	return ReconcileUsesResponse{
		CouponID:     r.CouponID,
		PreviousUses: r.PreviousUses,
		LedgerUses:   r.LedgerUses,
		Corrected:    r.PreviousUses != r.LedgerUses,
	}
}
