package commands

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/enrollment"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrWebhookSignature = errs.New("webhook signature verification failed")

type WebhookCommands interface {
	HandleEvent(ctx context.Context, payload []byte, signatureHeader string) error
}

type webhookUseCaseImpl struct {
	verifier       WebhookVerifier
	enrollmentRepo EnrollmentRepository
	usageRepo      CouponUsageRepository
	couponRepo     CouponRepository
}

func NewWebhookUseCase(
	verifier WebhookVerifier,
	enrollmentRepo EnrollmentRepository,
	usageRepo CouponUsageRepository,
	couponRepo CouponRepository,
) WebhookCommands {
	return &webhookUseCaseImpl{
		verifier:       verifier,
		enrollmentRepo: enrollmentRepo,
		usageRepo:      usageRepo,
		couponRepo:     couponRepo,
	}
}

// HandleEvent reconciles a provider webhook delivery. Only signature failures
// surface as errors; once the event is authenticated every local failure is
// logged and swallowed so the provider stops retrying a delivery we can never
// process differently. Replays are absorbed by the ledger's payment-intent
// uniqueness and the enrollment no-op insert.
func (u *webhookUseCaseImpl) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := u.verifier.VerifyCheckoutCompleted(payload, signatureHeader)
	if err != nil {
		if errors.Is(err, ErrWebhookSignature) {
			return err
		}
		// The delivery authenticated but the payload could not be decoded.
		// Retrying cannot change the outcome, so acknowledge it.
		slog.Error("failed to decode authenticated webhook event", "error", err)
		return nil
	}
	if event == nil {
		return nil
	}

	log := slog.With("payment_intent_id", event.PaymentIntentID)

	ident, ok := u.memberIdentity(event.Metadata, log)
	courseID, courseOK := parseUUIDMeta(event.Metadata, metaCourseID)
	if !courseOK {
		log.Warn("webhook event missing course metadata, nothing to reconcile")
		return nil
	}

	if ok {
		e := enrollment.NewEnrollment(uuid.New(), ident.MemberID, ident.MemberType, courseID, enrollment.SourcePaid)
		if _, err := u.enrollmentRepo.InsertIfAbsent(ctx, e); err != nil {
			log.Error("failed to record enrollment from webhook", "error", err)
		}
	}

	couponID, couponOK := parseUUIDMeta(event.Metadata, metaCouponID)
	if !couponOK {
		return nil
	}
	if !ok {
		// The session was created without a decodable identity, so the
		// redemption cannot be attributed to anyone. The counter still
		// moves; only the per-member ledger entry is skipped.
		log.Warn("coupon redemption without member identity, skipping ledger entry", "coupon_id", couponID)
		u.incrementCounter(ctx, couponID, log)
		return nil
	}

	discount := parseInt64Meta(event.Metadata, metaDiscountCents)
	original := parseInt64Meta(event.Metadata, metaOriginalCents)

	inserted, err := u.usageRepo.InsertIfAbsent(ctx, UsageEntry{
		CouponID:        couponID,
		MemberID:        ident.MemberID,
		MemberType:      ident.MemberType,
		CourseID:        courseID,
		PaymentIntentID: event.PaymentIntentID,
		DiscountCents:   discount,
		OriginalCents:   original,
		FinalCents:      original - discount,
	})
	if err != nil {
		log.Error("failed to record coupon usage", "coupon_id", couponID, "error", err)
		return nil
	}
	if !inserted {
		log.Info("duplicate webhook delivery, usage already recorded", "coupon_id", couponID)
		return nil
	}

	u.incrementCounter(ctx, couponID, log)
	return nil
}

func (u *webhookUseCaseImpl) incrementCounter(ctx context.Context, couponID uuid.UUID, log *slog.Logger) {
	bumped, err := u.couponRepo.IncrementUsesIfBelowCap(ctx, couponID)
	if err != nil {
		log.Error("failed to increment coupon usage counter", "coupon_id", couponID, "error", err)
		return
	}
	if !bumped {
		// Validation passed before the cap filled. The payment already went
		// through, so the overshoot is accepted and left to reconciliation.
		log.Warn("coupon cap reached before counter increment", "coupon_id", couponID)
	}
}

func (u *webhookUseCaseImpl) memberIdentity(metadata map[string]string, log *slog.Logger) (*Identity, bool) {
	memberID, ok := parseUUIDMeta(metadata, metaMemberID)
	if !ok {
		return nil, false
	}
	memberType, err := member.NewType(metadata[metaMemberType])
	if err != nil {
		log.Warn("webhook metadata carries unknown member type", "member_type", metadata[metaMemberType])
		return nil, false
	}
	return &Identity{MemberID: memberID, MemberType: memberType}, true
}

func parseUUIDMeta(metadata map[string]string, key string) (uuid.UUID, bool) {
	raw, ok := metadata[key]
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseInt64Meta(metadata map[string]string, key string) int64 {
	v, err := strconv.ParseInt(metadata[key], 10, 64)
	if err != nil {
		return 0
	}
	return v
}
