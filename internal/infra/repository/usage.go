package repository

import (
	"context"

	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/pgconv"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CouponUsageRepository struct {
	db *pgxpool.Pool
}

func NewCouponUsageRepository(db *pgxpool.Pool) *CouponUsageRepository {
	return &CouponUsageRepository{db: db}
}

// InsertIfAbsent appends to the ledger unless the payment intent was already
// recorded. ON CONFLICT DO NOTHING turns a webhook replay into a zero-row
// insert, which the caller sees as inserted == false.
func (r *CouponUsageRepository) InsertIfAbsent(ctx context.Context, entry commands.UsageEntry) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO coupon_usages (
			coupon_id, member_id, member_type, course_id,
			discount_cents, original_cents, final_cents, payment_intent_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (payment_intent_id) DO NOTHING`,
		entry.CouponID, entry.MemberID, entry.MemberType.String(), entry.CourseID,
		entry.DiscountCents, entry.OriginalCents, entry.FinalCents, entry.PaymentIntentID,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert coupon usage", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CouponUsageRepository) CountByCouponAndMember(ctx context.Context, couponID, memberID uuid.UUID) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM coupon_usages WHERE coupon_id = $1 AND member_id = $2`,
		couponID, memberID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon usages for member", err)
	}
	return count, nil
}

func (r *CouponUsageRepository) CountByCoupon(ctx context.Context, couponID uuid.UUID) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM coupon_usages WHERE coupon_id = $1`, couponID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon usages", err)
	}
	return count, nil
}

func (r *CouponUsageRepository) ListByCoupon(ctx context.Context, couponID uuid.UUID) ([]*queries.CouponUsageView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, coupon_id, member_id, member_type, course_id,
		       discount_cents, original_cents, final_cents, payment_intent_id, created_at
		FROM coupon_usages
		WHERE coupon_id = $1
		ORDER BY created_at DESC`, couponID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupon usages", err)
	}
	defer rows.Close()

	var views []*queries.CouponUsageView
	for rows.Next() {
		var (
			id        pgtype.UUID
			cID       pgtype.UUID
			memberID  pgtype.UUID
			courseID  pgtype.UUID
			createdAt pgtype.Timestamptz
			v         queries.CouponUsageView
		)
		err := rows.Scan(
			&id, &cID, &memberID, &v.MemberType, &courseID,
			&v.DiscountCents, &v.OriginalCents, &v.FinalCents, &v.PaymentIntentID, &createdAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon usage row", err)
		}
		v.ID = pgconv.UUIDFromPgtype(id)
		v.CouponID = pgconv.UUIDFromPgtype(cID)
		v.MemberID = pgconv.UUIDFromPgtype(memberID)
		v.CourseID = pgconv.UUIDFromPgtype(courseID)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list coupon usages", err)
	}
	return views, nil
}
