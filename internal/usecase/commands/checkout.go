package commands

import (
	"context"
	"strconv"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/course"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/enrollment"
	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/config"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAuthRequiredForFree = errs.New("authentication required for free enrollment")
	ErrCheckoutFailed      = errs.New("checkout session creation failed")
)

// Metadata keys carried on the provider session and read back by the webhook
// reconciler. They are the only channel tying a provider event back to local
// records, so both sides share these constants.
const (
	metaCourseID      = "course_id"
	metaCourseTitle   = "course_title"
	metaMemberID      = "member_id"
	metaMemberType    = "member_type"
	metaCouponID      = "coupon_id"
	metaCouponCode    = "coupon_code"
	metaDiscountCents = "discount_cents"
	metaOriginalCents = "original_cents"
)

// freeSessionPrefix marks synthetic session IDs for zero-amount checkouts
// that never reached the provider.
const freeSessionPrefix = "free_"

type CheckoutResult struct {
	SessionID     string
	RedirectURL   string
	Free          bool
	OriginalCents int64
	DiscountCents int64
	FinalCents    int64
}

type CheckoutCommands interface {
	CreateCheckout(ctx context.Context, req reqdto.CreateCheckoutRequest, ident *Identity) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	couponCommands CouponCommands
	gateway        PaymentGateway
	checkoutCfg    config.CheckoutConfig
}

func NewCheckoutUseCase(
	courseRepo CourseRepository,
	enrollmentRepo EnrollmentRepository,
	couponCommands CouponCommands,
	gateway PaymentGateway,
	checkoutCfg config.CheckoutConfig,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		couponCommands: couponCommands,
		gateway:        gateway,
		checkoutCfg:    checkoutCfg,
	}
}

// CreateCheckout builds a provider session for a course purchase. It never
// writes coupon usage or enrollments for paid flows; those happen only after
// the provider confirms via webhook. The zero-amount path skips the provider
// entirely and enrolls on the spot.
func (u *checkoutUseCaseImpl) CreateCheckout(ctx context.Context, req reqdto.CreateCheckoutRequest, ident *Identity) (*CheckoutResult, error) {
	courseSnap, err := u.courseRepo.FindByID(ctx, req.CourseID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCourseNotFound)
		}
		return nil, errs.Mark(err, ErrCheckoutFailed)
	}
	if courseSnap.Status != course.StatusApproved {
		return nil, ErrCourseNotAvailable
	}

	original := courseSnap.PriceCents
	var quote *CouponQuoteResult
	if req.CouponCode != nil && *req.CouponCode != "" {
		quote, err = u.couponCommands.ValidateCoupon(ctx, *req.CouponCode, req.CourseID, ident)
		if err != nil {
			return nil, err
		}
	}

	final := original
	var discount int64
	if quote != nil {
		final = quote.FinalCents
		discount = quote.DiscountCents
	}

	if final == 0 {
		return u.enrollFree(ctx, courseSnap, ident, discount)
	}

	metadata := map[string]string{
		metaCourseID:    courseSnap.ID.String(),
		metaCourseTitle: courseSnap.Title,
	}
	if ident != nil {
		metadata[metaMemberID] = ident.MemberID.String()
		metadata[metaMemberType] = ident.MemberType.String()
	}

	params := CheckoutSessionParams{
		AmountCents: final,
		CourseName:  courseSnap.Title,
		Metadata:    metadata,
		SuccessURL:  u.checkoutCfg.SuccessURL,
		CancelURL:   u.checkoutCfg.CancelURL,
	}

	if quote != nil {
		metadata[metaCouponID] = quote.CouponID.String()
		metadata[metaCouponCode] = quote.Code
		metadata[metaDiscountCents] = strconv.FormatInt(discount, 10)
		metadata[metaOriginalCents] = strconv.FormatInt(original, 10)

		// A provider-mirrored coupon discounts on the provider side, so the
		// session carries the undiscounted price. Otherwise the discount is
		// already folded into the amount.
		if quote.StripeCouponID != nil && *quote.StripeCouponID != "" {
			params.AmountCents = original
			params.ProviderCouponID = *quote.StripeCouponID
		}
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, errs.Mark(err, ErrCheckoutFailed)
	}

	return &CheckoutResult{
		SessionID:     session.SessionID,
		RedirectURL:   session.URL,
		OriginalCents: original,
		DiscountCents: discount,
		FinalCents:    final,
	}, nil
}

func (u *checkoutUseCaseImpl) enrollFree(ctx context.Context, courseSnap *CourseSnapshot, ident *Identity, discount int64) (*CheckoutResult, error) {
	if ident == nil {
		return nil, ErrAuthRequiredForFree
	}

	e := enrollment.NewEnrollment(uuid.New(), ident.MemberID, ident.MemberType, courseSnap.ID, enrollment.SourceFree)
	if _, err := u.enrollmentRepo.InsertIfAbsent(ctx, e); err != nil {
		return nil, errs.Mark(err, ErrCheckoutFailed)
	}

	sessionID := freeSessionPrefix + uuid.NewString()
	return &CheckoutResult{
		SessionID:     sessionID,
		RedirectURL:   u.checkoutCfg.SuccessURL + "?session_id=" + sessionID,
		Free:          true,
		OriginalCents: courseSnap.PriceCents,
		DiscountCents: discount,
		FinalCents:    0,
	}, nil
}
