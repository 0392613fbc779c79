package queries

import (
	"context"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/course"

	"github.com/google/uuid"
)

type CourseReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*CourseView, error)
	ListByStatus(ctx context.Context, status course.Status) ([]*CourseListItem, error)
}

type CourseQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CourseView, error)
	// ListApproved is the public catalogue: only approved courses appear.
	ListApproved(ctx context.Context) ([]*CourseListItem, error)
	// ListPending feeds the admin review queue.
	ListPending(ctx context.Context) ([]*CourseListItem, error)
}

type courseQueriesImpl struct {
	repo CourseReadStore
}

func NewCourseQueries(repo CourseReadStore) CourseQueries {
	return &courseQueriesImpl{repo: repo}
}

func (q *courseQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CourseView, error) {
	return q.repo.FindViewByID(ctx, id)
}

func (q *courseQueriesImpl) ListApproved(ctx context.Context) ([]*CourseListItem, error) {
	return q.repo.ListByStatus(ctx, course.StatusApproved)
}

func (q *courseQueriesImpl) ListPending(ctx context.Context) ([]*CourseListItem, error) {
	return q.repo.ListByStatus(ctx, course.StatusPending)
}
