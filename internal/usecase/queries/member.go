package queries

import (
	"context"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"

	"github.com/google/uuid"
)

type MemberReadStore interface {
	FindViewByID(ctx context.Context, memberType member.Type, id uuid.UUID) (*AuthorizedMemberView, error)
}

type MemberQueries interface {
	GetByID(ctx context.Context, memberType member.Type, id uuid.UUID) (*AuthorizedMemberView, error)
}

type memberQueriesImpl struct {
	repo MemberReadStore
}

func NewMemberQueries(repo MemberReadStore) MemberQueries {
	return &memberQueriesImpl{repo: repo}
}

func (q *memberQueriesImpl) GetByID(ctx context.Context, memberType member.Type, id uuid.UUID) (*AuthorizedMemberView, error) {
	return q.repo.FindViewByID(ctx, memberType, id)
}
