//go:build unit

package commands_test

import (
	"context"
	"errors"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/course"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/coupon"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/enrollment"
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, pgx.ErrNoRows, infra.KindNotFound)
}

// fakeCouponRepo keeps snapshots in memory so the conditional increment and
// counter reset behave like the real conditional UPDATEs.
type fakeCouponRepo struct {
	byCode     map[string]*commands.CouponSnapshot
	byID       map[uuid.UUID]*commands.CouponSnapshot
	createErr  error
	increments int
}

func newFakeCouponRepo(snaps ...*commands.CouponSnapshot) *fakeCouponRepo {
	r := &fakeCouponRepo{
		byCode: make(map[string]*commands.CouponSnapshot),
		byID:   make(map[uuid.UUID]*commands.CouponSnapshot),
	}
	for _, s := range snaps {
		r.byCode[s.Code] = s
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeCouponRepo) FindByCode(_ context.Context, code string) (*commands.CouponSnapshot, error) {
	s, ok := r.byCode[code]
	if !ok {
		return nil, notFoundErr("coupon not found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeCouponRepo) FindByID(_ context.Context, id uuid.UUID) (*commands.CouponSnapshot, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, notFoundErr("coupon not found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeCouponRepo) Create(_ context.Context, c *coupon.Coupon) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	if _, ok := r.byCode[c.Code().String()]; ok {
		return uuid.Nil, infra.WrapRepoErr("insert coupon", errors.New("duplicate"), infra.KindDuplicateKey)
	}
	snap := &commands.CouponSnapshot{ID: c.ID(), Code: c.Code().String(), IsActive: c.IsActive()}
	r.byCode[snap.Code] = snap
	r.byID[snap.ID] = snap
	return c.ID(), nil
}

func (r *fakeCouponRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	s, ok := r.byID[id]
	if !ok {
		return notFoundErr("coupon not found")
	}
	s.IsActive = false
	return nil
}

func (r *fakeCouponRepo) IncrementUsesIfBelowCap(_ context.Context, id uuid.UUID) (bool, error) {
	s, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	if s.MaxUses != nil && s.CurrentUses >= *s.MaxUses {
		return false, nil
	}
	s.CurrentUses++
	r.increments++
	return true, nil
}

func (r *fakeCouponRepo) SetCurrentUses(_ context.Context, id uuid.UUID, uses int32) error {
	s, ok := r.byID[id]
	if !ok {
		return notFoundErr("coupon not found")
	}
	s.CurrentUses = uses
	return nil
}

// fakeUsageRepo mirrors the ledger's payment-intent uniqueness.
type fakeUsageRepo struct {
	byIntent  map[string]commands.UsageEntry
	insertErr error
	countErr  error
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{byIntent: make(map[string]commands.UsageEntry)}
}

func (r *fakeUsageRepo) InsertIfAbsent(_ context.Context, entry commands.UsageEntry) (bool, error) {
	if r.insertErr != nil {
		return false, r.insertErr
	}
	if _, ok := r.byIntent[entry.PaymentIntentID]; ok {
		return false, nil
	}
	r.byIntent[entry.PaymentIntentID] = entry
	return true, nil
}

func (r *fakeUsageRepo) CountByCouponAndMember(_ context.Context, couponID, memberID uuid.UUID) (int32, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int32
	for _, e := range r.byIntent {
		if e.CouponID == couponID && e.MemberID == memberID {
			n++
		}
	}
	return n, nil
}

func (r *fakeUsageRepo) CountByCoupon(_ context.Context, couponID uuid.UUID) (int32, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int32
	for _, e := range r.byIntent {
		if e.CouponID == couponID {
			n++
		}
	}
	return n, nil
}

type fakeCourseRepo struct {
	byID map[uuid.UUID]*commands.CourseSnapshot
}

func newFakeCourseRepo(snaps ...*commands.CourseSnapshot) *fakeCourseRepo {
	r := &fakeCourseRepo{byID: make(map[uuid.UUID]*commands.CourseSnapshot)}
	for _, s := range snaps {
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id uuid.UUID) (*commands.CourseSnapshot, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, notFoundErr("course not found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, c *course.Course) (uuid.UUID, error) {
	r.byID[c.ID()] = &commands.CourseSnapshot{
		ID:          c.ID(),
		TrainerID:   c.TrainerID(),
		Title:       c.Title(),
		Description: c.Description(),
		PriceCents:  c.PriceCents(),
		ModuleCount: c.ModuleCount(),
		Status:      c.Status(),
	}
	return c.ID(), nil
}

func (r *fakeCourseRepo) UpdateStatus(_ context.Context, id uuid.UUID, status course.Status) error {
	s, ok := r.byID[id]
	if !ok {
		return notFoundErr("course not found")
	}
	s.Status = status
	return nil
}

type enrollmentKey struct {
	memberID uuid.UUID
	courseID uuid.UUID
}

type fakeEnrollmentRepo struct {
	rows      map[enrollmentKey]*enrollment.Enrollment
	insertErr error
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{rows: make(map[enrollmentKey]*enrollment.Enrollment)}
}

func (r *fakeEnrollmentRepo) InsertIfAbsent(_ context.Context, e *enrollment.Enrollment) (bool, error) {
	if r.insertErr != nil {
		return false, r.insertErr
	}
	key := enrollmentKey{memberID: e.MemberID(), courseID: e.CourseID()}
	if _, ok := r.rows[key]; ok {
		return false, nil
	}
	r.rows[key] = e
	return true, nil
}

// fakeGateway records the params of every session it was asked to create.
type fakeGateway struct {
	lastParams *commands.CheckoutSessionParams
	session    *commands.CheckoutSession
	err        error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, params commands.CheckoutSessionParams) (*commands.CheckoutSession, error) {
	g.lastParams = &params
	if g.err != nil {
		return nil, g.err
	}
	if g.session != nil {
		return g.session, nil
	}
	return &commands.CheckoutSession{SessionID: "cs_test_123", URL: "https://checkout.example.com/cs_test_123"}, nil
}

type fakeVerifier struct {
	event *commands.CheckoutCompletedEvent
	err   error
}

func (v *fakeVerifier) VerifyCheckoutCompleted(_ []byte, _ string) (*commands.CheckoutCompletedEvent, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.event, nil
}

func memberIdent(memberType member.Type) *commands.Identity {
	return &commands.Identity{MemberID: uuid.New(), MemberType: memberType}
}
