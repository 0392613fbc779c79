package commands

import (
	"context"
	"time"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/course"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/coupon"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/enrollment"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type CouponSnapshot struct {
	ID                 uuid.UUID
	Code               string
	AmountOffCents     *int64
	PercentOff         *float64
	AllowedMemberships []string
	MaxUses            *int32
	CurrentUses        int32
	MaxUsesPerUser     int32
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	IsActive           bool
	StripeCouponID     *string
}

// ToEntity rebuilds the domain coupon from a persisted snapshot.
func (s *CouponSnapshot) ToEntity() (*coupon.Coupon, error) {
	return coupon.NewCoupon(
		s.ID, s.Code, s.AmountOffCents, s.PercentOff,
		s.AllowedMemberships, s.MaxUses, s.CurrentUses, s.MaxUsesPerUser,
		s.ValidFrom, s.ValidUntil, s.IsActive, s.StripeCouponID,
	)
}

type CourseSnapshot struct {
	ID          uuid.UUID
	TrainerID   uuid.UUID
	Title       string
	Description string
	PriceCents  int64
	ModuleCount int32
	Status      course.Status
}

// UsageEntry is one row of the redemption ledger, keyed by the provider's
// payment intent so replayed webhook deliveries collapse into one record.
type UsageEntry struct {
	CouponID        uuid.UUID
	MemberID        uuid.UUID
	MemberType      member.Type
	CourseID        uuid.UUID
	PaymentIntentID string
	DiscountCents   int64
	OriginalCents   int64
	FinalCents      int64
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*CouponSnapshot, error)
	Create(ctx context.Context, c *coupon.Coupon) (uuid.UUID, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// IncrementUsesIfBelowCap bumps current_uses only while the global cap
	// holds; it reports false when the cap was already reached.
	IncrementUsesIfBelowCap(ctx context.Context, id uuid.UUID) (bool, error)
	SetCurrentUses(ctx context.Context, id uuid.UUID, uses int32) error
}

type CouponUsageRepository interface {
	// InsertIfAbsent writes the ledger entry unless one already exists for
	// the payment intent; it reports whether a row was actually inserted.
	InsertIfAbsent(ctx context.Context, entry UsageEntry) (bool, error)
	CountByCouponAndMember(ctx context.Context, couponID, memberID uuid.UUID) (int32, error)
	CountByCoupon(ctx context.Context, couponID uuid.UUID) (int32, error)
}

type CourseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CourseSnapshot, error)
	Create(ctx context.Context, c *course.Course) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status course.Status) error
}

type EnrollmentRepository interface {
	// InsertIfAbsent enrolls the member unless an enrollment for the same
	// (member, course) pair already exists; the duplicate case is a no-op
	// success.
	InsertIfAbsent(ctx context.Context, e *enrollment.Enrollment) (bool, error)
}

type MemberRepository interface {
	Create(ctx context.Context, p member.Principal, passwordHash string) error
	// FindByEmail scans every membership category in registration order and
	// returns the first match with its stored password hash.
	FindByEmail(ctx context.Context, email string) (member.Principal, string, error)
	FindByID(ctx context.Context, memberType member.Type, id uuid.UUID) (member.Principal, error)
}

// CheckoutSessionParams is everything the payment provider needs to host the
// payment page. AmountCents is the price to charge; when ProviderCouponID is
// set the provider applies its own discount object on top, so AmountCents
// must then be the undiscounted price.
type CheckoutSessionParams struct {
	AmountCents      int64
	CourseName       string
	ProviderCouponID string
	Metadata         map[string]string
	SuccessURL       string
	CancelURL        string
}

type CheckoutSession struct {
	SessionID string
	URL       string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
}

// CheckoutCompletedEvent is the reconciler's view of a confirmed payment:
// the provider's payment intent plus the metadata bag attached at session
// creation.
type CheckoutCompletedEvent struct {
	PaymentIntentID string
	Metadata        map[string]string
}

type WebhookVerifier interface {
	// VerifyCheckoutCompleted authenticates the raw payload against the
	// signature header. It returns (nil, nil) for authentic events of types
	// the reconciler does not care about.
	VerifyCheckoutCompleted(payload []byte, signatureHeader string) (*CheckoutCompletedEvent, error)
}
