package repository

import (
	"context"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/course"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/pgconv"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CourseRepository struct {
	db *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.CourseSnapshot, error) {
	var (
		courseID  pgtype.UUID
		trainerID pgtype.UUID
		snap      commands.CourseSnapshot
		status    string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, trainer_id, title, description, price_cents, module_count, status
		FROM courses WHERE id = $1`, id,
	).Scan(&courseID, &trainerID, &snap.Title, &snap.Description, &snap.PriceCents, &snap.ModuleCount, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("course not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find course by ID", err)
	}

	snap.ID = pgconv.UUIDFromPgtype(courseID)
	snap.TrainerID = pgconv.UUIDFromPgtype(trainerID)
	snap.Status = course.Status(status)
	return &snap, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *course.Course) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (id, trainer_id, title, description, price_cents, module_count, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		c.ID(), c.TrainerID(), c.Title(), c.Description(), c.PriceCents(), c.ModuleCount(), c.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create course", err)
	}
	return id, nil
}

func (r *CourseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status course.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE courses SET status = $2, updated_at = now() WHERE id = $1`,
		id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update course status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("course not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *CourseRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.CourseView, error) {
	var (
		courseID  pgtype.UUID
		trainerID pgtype.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		v         queries.CourseView
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, trainer_id, title, description, price_cents, module_count, status, created_at, updated_at
		FROM courses WHERE id = $1`, id,
	).Scan(&courseID, &trainerID, &v.Title, &v.Description, &v.PriceCents, &v.ModuleCount, &v.Status, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("course not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find course by ID", err)
	}

	v.ID = pgconv.UUIDFromPgtype(courseID)
	v.TrainerID = pgconv.UUIDFromPgtype(trainerID)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

func (r *CourseRepository) ListByStatus(ctx context.Context, status course.Status) ([]*queries.CourseListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, price_cents, module_count, status, created_at
		FROM courses WHERE status = $1
		ORDER BY created_at DESC`, status.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courses", err)
	}
	defer rows.Close()

	var items []*queries.CourseListItem
	for rows.Next() {
		var (
			courseID  pgtype.UUID
			createdAt pgtype.Timestamptz
			item      queries.CourseListItem
		)
		if err := rows.Scan(&courseID, &item.Title, &item.PriceCents, &item.ModuleCount, &item.Status, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan course row", err)
		}
		item.ID = pgconv.UUIDFromPgtype(courseID)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list courses", err)
	}
	return items, nil
}
