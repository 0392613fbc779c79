package queries

import (
	"context"

	"github.com/google/uuid"
)

type CouponReadStore interface {
	List(ctx context.Context) ([]*CouponView, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*CouponView, error)
}

type CouponUsageReadStore interface {
	ListByCoupon(ctx context.Context, couponID uuid.UUID) ([]*CouponUsageView, error)
}

type CouponQueries interface {
	List(ctx context.Context) ([]*CouponView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CouponView, error)
	ListUsages(ctx context.Context, couponID uuid.UUID) ([]*CouponUsageView, error)
}

type couponQueriesImpl struct {
	repo      CouponReadStore
	usageRepo CouponUsageReadStore
}

func NewCouponQueries(repo CouponReadStore, usageRepo CouponUsageReadStore) CouponQueries {
	return &couponQueriesImpl{repo: repo, usageRepo: usageRepo}
}

func (q *couponQueriesImpl) List(ctx context.Context) ([]*CouponView, error) {
	return q.repo.List(ctx)
}

func (q *couponQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CouponView, error) {
	return q.repo.FindViewByID(ctx, id)
}

func (q *couponQueriesImpl) ListUsages(ctx context.Context, couponID uuid.UUID) ([]*CouponUsageView, error) {
	return q.usageRepo.ListByCoupon(ctx, couponID)
}
