package repository

import (
	"context"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/coupon"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/pgconv"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const couponColumns = `id, code, amount_off_cents, percent_off, allowed_memberships,
	max_uses, current_uses, max_uses_per_user, valid_from, valid_until,
	is_active, stripe_coupon_id, created_at, updated_at`

type CouponRepository struct {
	db *pgxpool.Pool
}

func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*commands.CouponSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code)

	snap, _, err := scanCouponSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return snap, nil
}

func (r *CouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.CouponSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id)

	snap, _, err := scanCouponSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return snap, nil
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) (uuid.UUID, error) {
	var amountOff *int64
	var percentOff *float64
	if c.Discount().IsPercentage() {
		p := c.Discount().PercentOff()
		percentOff = &p
	} else {
		a := c.Discount().AmountOffCents()
		amountOff = &a
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO coupons (
			id, code, amount_off_cents, percent_off, allowed_memberships,
			max_uses, max_uses_per_user, valid_from, valid_until, is_active, stripe_coupon_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		c.ID(), c.Code().String(), amountOff, percentOff, c.AllowedMemberships(),
		c.MaxUses(), c.MaxUsesPerUser(), c.ValidFrom(), c.ValidUntil(), c.IsActive(), c.StripeCouponID(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create coupon", err)
	}
	return id, nil
}

func (r *CouponRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE coupons SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

// IncrementUsesIfBelowCap moves the counter atomically: the WHERE clause
// re-checks the cap inside the UPDATE, so concurrent confirmations can never
// push current_uses past max_uses.
func (r *CouponRepository) IncrementUsesIfBelowCap(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons
		SET current_uses = current_uses + 1, updated_at = now()
		WHERE id = $1 AND (max_uses IS NULL OR current_uses < max_uses)`, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment coupon uses", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CouponRepository) SetCurrentUses(ctx context.Context, id uuid.UUID, uses int32) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE coupons SET current_uses = $2, updated_at = now() WHERE id = $1`, id, uses)
	if err != nil {
		return infra.WrapRepoErr("failed to set coupon uses", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *CouponRepository) List(ctx context.Context) ([]*queries.CouponView, error) {
	rows, err := r.db.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	defer rows.Close()

	var views []*queries.CouponView
	for rows.Next() {
		_, view, err := scanCouponSnapshot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	return views, nil
}

func (r *CouponRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.CouponView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id)

	_, view, err := scanCouponSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return view, nil
}

// scanCouponSnapshot decodes one coupon row into both the write-side
// snapshot and the read-side view; callers discard the side they do not
// need.
func scanCouponSnapshot(row pgx.Row) (*commands.CouponSnapshot, *queries.CouponView, error) {
	var (
		id                 pgtype.UUID
		code               string
		amountOffCents     pgtype.Int8
		percentOff         pgtype.Numeric
		allowedMemberships []string
		maxUses            pgtype.Int4
		currentUses        int32
		maxUsesPerUser     int32
		validFrom          pgtype.Timestamptz
		validUntil         pgtype.Timestamptz
		isActive           bool
		stripeCouponID     pgtype.Text
		createdAt          pgtype.Timestamptz
		updatedAt          pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &code, &amountOffCents, &percentOff, &allowedMemberships,
		&maxUses, &currentUses, &maxUsesPerUser, &validFrom, &validUntil,
		&isActive, &stripeCouponID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, nil, err
	}

	percent, err := pgconv.Float64PtrFromNumeric(percentOff)
	if err != nil {
		return nil, nil, err
	}

	snap := &commands.CouponSnapshot{
		ID:                 pgconv.UUIDFromPgtype(id),
		Code:               code,
		AmountOffCents:     pgconv.Int64PtrFromPgtype(amountOffCents),
		PercentOff:         percent,
		AllowedMemberships: allowedMemberships,
		MaxUses:            pgconv.Int32PtrFromPgtype(maxUses),
		CurrentUses:        currentUses,
		MaxUsesPerUser:     maxUsesPerUser,
		ValidFrom:          pgconv.TimePtrFromPgtype(validFrom),
		ValidUntil:         pgconv.TimePtrFromPgtype(validUntil),
		IsActive:           isActive,
		StripeCouponID:     pgconv.StringPtrFromPgtype(stripeCouponID),
	}

	view := &queries.CouponView{
		ID:                 snap.ID,
		Code:               snap.Code,
		AmountOffCents:     snap.AmountOffCents,
		PercentOff:         snap.PercentOff,
		AllowedMemberships: snap.AllowedMemberships,
		MaxUses:            snap.MaxUses,
		CurrentUses:        snap.CurrentUses,
		MaxUsesPerUser:     snap.MaxUsesPerUser,
		ValidFrom:          snap.ValidFrom,
		ValidUntil:         snap.ValidUntil,
		IsActive:           snap.IsActive,
		StripeCouponID:     snap.StripeCouponID,
		CreatedAt:          pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:          pgconv.TimeFromPgtype(updatedAt),
	}

	return snap, view, nil
}
