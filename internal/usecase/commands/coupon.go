package commands

import (
	"context"
	"errors"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/coupon"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/clock"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound        = errs.New("course not found")
	ErrCourseNotAvailable    = errs.New("course not available for purchase")
	ErrCouponNotFound        = errs.New("coupon not found")
	ErrCouponInvalidCode     = errs.New("invalid code")
	ErrCouponNotYetActive    = errs.New("coupon not yet active")
	ErrCouponExpired         = errs.New("coupon expired")
	ErrCouponNotEligible     = errs.New("coupon not available for this membership")
	ErrCouponLimitReached    = errs.New("coupon usage limit reached")
	ErrCouponAlreadyUsed     = errs.New("coupon already used")
	ErrCouponInvalidInput    = errs.New("invalid coupon definition")
	ErrCouponDuplicateCode   = errs.New("coupon code already exists")
	ErrCouponOperationFailed = errs.New("coupon operation failed")
)

// Identity is the redeeming member as far as the flow could establish it.
// A nil Identity means the bearer token was absent or undecodable; the
// identity-dependent checks are then skipped and no usage is attributed.
type Identity struct {
	MemberID   uuid.UUID
	MemberType member.Type
}

// CouponQuoteResult is the validator's verdict: which coupon matched and the
// exact amounts the checkout builder must charge.
type CouponQuoteResult struct {
	CouponID       uuid.UUID
	Code           string
	DiscountType   coupon.DiscountType
	DiscountValue  float64
	OriginalCents  int64
	DiscountCents  int64
	FinalCents     int64
	StripeCouponID *string
}

type CouponCommands interface {
	ValidateCoupon(ctx context.Context, code string, courseID uuid.UUID, ident *Identity) (*CouponQuoteResult, error)
	CreateCoupon(ctx context.Context, req reqdto.CreateCouponRequest) (uuid.UUID, error)
	DeactivateCoupon(ctx context.Context, id uuid.UUID) error
	ReconcileUses(ctx context.Context, id uuid.UUID) (*ReconcileResult, error)
}

// ReconcileResult reports an admin-triggered counter repair: the counter is
// reset to the ledger's row count, which is the source of truth.
type ReconcileResult struct {
	CouponID     uuid.UUID
	PreviousUses int32
	LedgerUses   int32
}

type couponUseCaseImpl struct {
	couponRepo CouponRepository
	usageRepo  CouponUsageRepository
	courseRepo CourseRepository
	clock      clock.Clock
}

func NewCouponUseCase(
	couponRepo CouponRepository,
	usageRepo CouponUsageRepository,
	courseRepo CourseRepository,
	clock clock.Clock,
) CouponCommands {
	return &couponUseCaseImpl{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
		courseRepo: courseRepo,
		clock:      clock,
	}
}

// ValidateCoupon is the single discount computation for the whole purchase
// flow. The validation endpoint calls it directly and the checkout builder
// consumes its result, so a quote shown to the member is always the quote
// that gets charged.
func (u *couponUseCaseImpl) ValidateCoupon(ctx context.Context, code string, courseID uuid.UUID, ident *Identity) (*CouponQuoteResult, error) {
	courseSnap, err := u.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCourseNotFound)
		}
		return nil, errs.Mark(err, ErrCouponOperationFailed)
	}

	normalized, err := coupon.NewCode(code)
	if err != nil {
		return nil, errs.Mark(err, ErrCouponInvalidCode)
	}

	snap, err := u.couponRepo.FindByCode(ctx, normalized.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Indistinguishable from a deactivated coupon on purpose.
			return nil, ErrCouponInvalidCode
		}
		return nil, errs.Mark(err, ErrCouponOperationFailed)
	}

	entity, err := snap.ToEntity()
	if err != nil {
		return nil, errs.Mark(err, ErrCouponOperationFailed)
	}

	if ident == nil {
		err = entity.ValidateAnonymousRedemption(u.clock.Now())
	} else {
		var priorUses int32
		priorUses, err = u.usageRepo.CountByCouponAndMember(ctx, entity.ID(), ident.MemberID)
		if err != nil {
			return nil, errs.Mark(err, ErrCouponOperationFailed)
		}
		err = entity.ValidateRedemption(u.clock.Now(), ident.MemberType, priorUses)
	}
	if err != nil {
		return nil, markRedemptionError(err)
	}

	quote := entity.Quote(courseSnap.PriceCents)
	return &CouponQuoteResult{
		CouponID:       entity.ID(),
		Code:           entity.Code().String(),
		DiscountType:   quote.DiscountType,
		DiscountValue:  quote.DiscountValue,
		OriginalCents:  courseSnap.PriceCents,
		DiscountCents:  quote.DiscountCents,
		FinalCents:     quote.FinalCents,
		StripeCouponID: snap.StripeCouponID,
	}, nil
}

func markRedemptionError(err error) error {
	switch {
	case errors.Is(err, coupon.ErrInactive):
		return errs.Mark(err, ErrCouponInvalidCode)
	case errors.Is(err, coupon.ErrNotYetActive):
		return errs.Mark(err, ErrCouponNotYetActive)
	case errors.Is(err, coupon.ErrExpired):
		return errs.Mark(err, ErrCouponExpired)
	case errors.Is(err, coupon.ErrNotEligible):
		return errs.Mark(err, ErrCouponNotEligible)
	case errors.Is(err, coupon.ErrUsageLimitReached):
		return errs.Mark(err, ErrCouponLimitReached)
	case errors.Is(err, coupon.ErrAlreadyUsed):
		return errs.Mark(err, ErrCouponAlreadyUsed)
	default:
		return errs.Mark(err, ErrCouponOperationFailed)
	}
}

func (u *couponUseCaseImpl) CreateCoupon(ctx context.Context, req reqdto.CreateCouponRequest) (uuid.UUID, error) {
	maxUsesPerUser := coupon.DefaultMaxUsesPerUser
	if req.MaxUsesPerUser != nil {
		maxUsesPerUser = int(*req.MaxUsesPerUser)
	}

	entity, err := coupon.NewCoupon(
		uuid.New(),
		req.Code,
		req.AmountOffCents,
		req.PercentOff,
		req.AllowedMemberships,
		req.MaxUses,
		0,
		int32(maxUsesPerUser),
		req.ValidFrom,
		req.ValidUntil,
		true,
		req.StripeCouponID,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrCouponInvalidInput)
	}

	for _, tag := range entity.AllowedMemberships() {
		if tag == coupon.MembershipWildcard {
			continue
		}
		if _, err := member.NewType(tag); err != nil {
			return uuid.Nil, errs.Mark(err, ErrCouponInvalidInput)
		}
	}

	id, err := u.couponRepo.Create(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrCouponDuplicateCode)
		}
		return uuid.Nil, errs.Mark(err, ErrCouponOperationFailed)
	}
	return id, nil
}

func (u *couponUseCaseImpl) DeactivateCoupon(ctx context.Context, id uuid.UUID) error {
	if err := u.couponRepo.Deactivate(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrCouponNotFound)
		}
		return errs.Mark(err, ErrCouponOperationFailed)
	}
	return nil
}

// ReconcileUses realigns the denormalized counter with the ledger. The
// counter can undercount when an increment was skipped at the cap while a
// ledger row still landed; the ledger always wins.
func (u *couponUseCaseImpl) ReconcileUses(ctx context.Context, id uuid.UUID) (*ReconcileResult, error) {
	snap, err := u.couponRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCouponNotFound)
		}
		return nil, errs.Mark(err, ErrCouponOperationFailed)
	}

	ledgerUses, err := u.usageRepo.CountByCoupon(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrCouponOperationFailed)
	}

	if ledgerUses != snap.CurrentUses {
		if err := u.couponRepo.SetCurrentUses(ctx, id, ledgerUses); err != nil {
			return nil, errs.Mark(err, ErrCouponOperationFailed)
		}
	}

	return &ReconcileResult{
		CouponID:     id,
		PreviousUses: snap.CurrentUses,
		LedgerUses:   ledgerUses,
	}, nil
}
