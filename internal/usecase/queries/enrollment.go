package queries

import (
	"context"

	"github.com/google/uuid"
)

type EnrollmentReadStore interface {
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*EnrollmentView, error)
}

type EnrollmentQueries interface {
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*EnrollmentView, error)
}

type enrollmentQueriesImpl struct {
	repo EnrollmentReadStore
}

func NewEnrollmentQueries(repo EnrollmentReadStore) EnrollmentQueries {
	return &enrollmentQueriesImpl{repo: repo}
}

func (q *enrollmentQueriesImpl) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*EnrollmentView, error) {
	return q.repo.ListByMember(ctx, memberID)
}
