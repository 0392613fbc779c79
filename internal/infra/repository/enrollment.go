package repository

import (
	"context"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/enrollment"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/pgconv"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentRepository struct {
	db *pgxpool.Pool
}

func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// InsertIfAbsent grants access unless the member already holds it. The
// (member_id, course_id) unique constraint makes the duplicate case a
// zero-row insert rather than an error, so a webhook replay after a free
// enrollment cannot fail.
func (r *EnrollmentRepository) InsertIfAbsent(ctx context.Context, e *enrollment.Enrollment) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO enrollments (id, member_id, member_type, course_id, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (member_id, course_id) DO NOTHING`,
		e.ID(), e.MemberID(), e.MemberType().String(), e.CourseID(), e.Source().String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert enrollment", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EnrollmentRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*queries.EnrollmentView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.course_id, c.title, e.source, e.created_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.member_id = $1
		ORDER BY e.created_at DESC`, memberID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list enrollments", err)
	}
	defer rows.Close()

	var views []*queries.EnrollmentView
	for rows.Next() {
		var (
			id        pgtype.UUID
			courseID  pgtype.UUID
			createdAt pgtype.Timestamptz
			v         queries.EnrollmentView
		)
		if err := rows.Scan(&id, &courseID, &v.CourseTitle, &v.Source, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan enrollment row", err)
		}
		v.ID = pgconv.UUIDFromPgtype(id)
		v.CourseID = pgconv.UUIDFromPgtype(courseID)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list enrollments", err)
	}
	return views, nil
}
