package repository

import (
	"context"
	"strconv"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/errs"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/pgconv"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// memberTable describes how one membership category maps onto its own table.
// The shared identity columns are identical everywhere; only the profile
// columns and their decoding differ.
type memberTable struct {
	table          string
	profileColumns string
	scan           func(row pgx.Row) (member.Principal, string, error)
	insertArgs     func(p member.Principal) ([]string, []any, error)
}

type MemberRepository struct {
	db     *pgxpool.Pool
	tables map[member.Type]memberTable
}

func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{
		db: db,
		tables: map[member.Type]memberTable{
			member.TypeStudent: {
				table:          "student_members",
				profileColumns: "institution, student_no",
				scan:           scanStudent,
				insertArgs:     studentArgs,
			},
			member.TypeIndividual: {
				table:          "individual_members",
				profileColumns: "occupation",
				scan:           scanIndividual,
				insertArgs:     individualArgs,
			},
			member.TypeCorporate: {
				table:          "corporate_members",
				profileColumns: "company_name, company_size",
				scan:           scanCorporate,
				insertArgs:     corporateArgs,
			},
			member.TypeTrainer: {
				table:          "trainer_members",
				profileColumns: "expertise, bio",
				scan:           scanTrainer,
				insertArgs:     trainerArgs,
			},
			member.TypeBoard: {
				table:          "board_members",
				profileColumns: "organization, position",
				scan:           scanBoard,
				insertArgs:     boardArgs,
			},
		},
	}
}

const identityColumns = "id, email, password_hash, full_name, role, is_active"

func (r *MemberRepository) Create(ctx context.Context, p member.Principal, passwordHash string) error {
	t, ok := r.tables[p.Type()]
	if !ok {
		return infra.WrapRepoErr("unknown membership category", member.ErrInvalidType, infra.KindDBFailure)
	}

	profileCols, profileVals, err := t.insertArgs(p)
	if err != nil {
		return infra.WrapRepoErr("failed to build member insert", err, infra.KindDBFailure)
	}

	sql := `INSERT INTO ` + t.table + ` (id, email, password_hash, full_name, role, is_active`
	args := []any{p.ID(), p.Email().String(), passwordHash, p.FullName().String(), p.Role().String(), p.IsActive()}
	placeholder := 7
	for i, col := range profileCols {
		sql += ", " + col
		args = append(args, profileVals[i])
	}
	sql += `) VALUES ($1, $2, $3, $4, $5, $6`
	for range profileCols {
		sql += ", $" + strconv.Itoa(placeholder)
		placeholder++
	}
	sql += `)`

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return infra.WrapRepoErr("failed to create member", err)
	}
	return nil
}

// FindByEmail scans every category table in registration order. Emails are
// unique within a table but not across tables; the first match wins.
func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (member.Principal, string, error) {
	for _, memberType := range member.AllTypes() {
		t := r.tables[memberType]
		row := r.db.QueryRow(ctx,
			`SELECT `+identityColumns+`, `+t.profileColumns+` FROM `+t.table+` WHERE email = $1`, email)

		principal, hash, err := t.scan(row)
		if err != nil {
			if pgconv.IsNoRows(err) {
				continue
			}
			return nil, "", infra.WrapRepoErr("failed to find member by email", err)
		}
		return principal, hash, nil
	}
	return nil, "", infra.WrapRepoErr("member not found", pgx.ErrNoRows, infra.KindNotFound)
}

func (r *MemberRepository) FindByID(ctx context.Context, memberType member.Type, id uuid.UUID) (member.Principal, error) {
	t, ok := r.tables[memberType]
	if !ok {
		return nil, infra.WrapRepoErr("unknown membership category", member.ErrInvalidType, infra.KindNotFound)
	}

	row := r.db.QueryRow(ctx,
		`SELECT `+identityColumns+`, `+t.profileColumns+` FROM `+t.table+` WHERE id = $1`, id)

	principal, _, err := t.scan(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find member by ID", err)
	}
	return principal, nil
}

func (r *MemberRepository) FindViewByID(ctx context.Context, memberType member.Type, id uuid.UUID) (*queries.AuthorizedMemberView, error) {
	principal, err := r.FindByID(ctx, memberType, id)
	if err != nil {
		return nil, err
	}
	return &queries.AuthorizedMemberView{
		ID:         principal.ID(),
		Email:      principal.Email().String(),
		FullName:   principal.FullName().String(),
		MemberType: principal.Type().String(),
		Role:       principal.Role().String(),
		IsActive:   principal.IsActive(),
	}, nil
}

type memberIdentity struct {
	id       pgtype.UUID
	email    string
	hash     string
	fullName string
	role     string
	active   bool
}

func (m *memberIdentity) fields() []any {
	return []any{&m.id, &m.email, &m.hash, &m.fullName, &m.role, &m.active}
}

func scanStudent(row pgx.Row) (member.Principal, string, error) {
	var ident memberIdentity
	var institution string
	var studentNo pgtype.Text
	if err := row.Scan(append(ident.fields(), &institution, &studentNo)...); err != nil {
		return nil, "", err
	}
	p := member.NewStudent(
		pgconv.UUIDFromPgtype(ident.id), member.Email(ident.email), member.FullName(ident.fullName),
		member.Role(ident.role), ident.active, institution, pgconv.StringPtrFromPgtype(studentNo))
	return p, ident.hash, nil
}

func scanIndividual(row pgx.Row) (member.Principal, string, error) {
	var ident memberIdentity
	var occupation pgtype.Text
	if err := row.Scan(append(ident.fields(), &occupation)...); err != nil {
		return nil, "", err
	}
	p := member.NewIndividual(
		pgconv.UUIDFromPgtype(ident.id), member.Email(ident.email), member.FullName(ident.fullName),
		member.Role(ident.role), ident.active, pgconv.StringPtrFromPgtype(occupation))
	return p, ident.hash, nil
}

func scanCorporate(row pgx.Row) (member.Principal, string, error) {
	var ident memberIdentity
	var companyName string
	var companySize pgtype.Int4
	if err := row.Scan(append(ident.fields(), &companyName, &companySize)...); err != nil {
		return nil, "", err
	}
	p := member.NewCorporate(
		pgconv.UUIDFromPgtype(ident.id), member.Email(ident.email), member.FullName(ident.fullName),
		member.Role(ident.role), ident.active, companyName, pgconv.Int32PtrFromPgtype(companySize))
	return p, ident.hash, nil
}

func scanTrainer(row pgx.Row) (member.Principal, string, error) {
	var ident memberIdentity
	var expertise string
	var bio pgtype.Text
	if err := row.Scan(append(ident.fields(), &expertise, &bio)...); err != nil {
		return nil, "", err
	}
	p := member.NewTrainer(
		pgconv.UUIDFromPgtype(ident.id), member.Email(ident.email), member.FullName(ident.fullName),
		member.Role(ident.role), ident.active, expertise, pgconv.StringPtrFromPgtype(bio))
	return p, ident.hash, nil
}

func scanBoard(row pgx.Row) (member.Principal, string, error) {
	var ident memberIdentity
	var organization string
	var position pgtype.Text
	if err := row.Scan(append(ident.fields(), &organization, &position)...); err != nil {
		return nil, "", err
	}
	p := member.NewBoard(
		pgconv.UUIDFromPgtype(ident.id), member.Email(ident.email), member.FullName(ident.fullName),
		member.Role(ident.role), ident.active, organization, pgconv.StringPtrFromPgtype(position))
	return p, ident.hash, nil
}

func studentArgs(p member.Principal) ([]string, []any, error) {
	s, ok := p.(*member.Student)
	if !ok {
		return nil, nil, errs.New("principal is not a student member")
	}
	return []string{"institution", "student_no"}, []any{s.Institution(), s.StudentNo()}, nil
}

func individualArgs(p member.Principal) ([]string, []any, error) {
	i, ok := p.(*member.Individual)
	if !ok {
		return nil, nil, errs.New("principal is not an individual member")
	}
	return []string{"occupation"}, []any{i.Occupation()}, nil
}

func corporateArgs(p member.Principal) ([]string, []any, error) {
	c, ok := p.(*member.Corporate)
	if !ok {
		return nil, nil, errs.New("principal is not a corporate member")
	}
	return []string{"company_name", "company_size"}, []any{c.CompanyName(), c.CompanySize()}, nil
}

func trainerArgs(p member.Principal) ([]string, []any, error) {
	t, ok := p.(*member.Trainer)
	if !ok {
		return nil, nil, errs.New("principal is not a trainer member")
	}
	return []string{"expertise", "bio"}, []any{t.Expertise(), t.Bio()}, nil
}

func boardArgs(p member.Principal) ([]string, []any, error) {
	b, ok := p.(*member.Board)
	if !ok {
		return nil, nil, errs.New("principal is not a board member")
	}
	return []string{"organization", "position"}, []any{b.Organization(), b.Position()}, nil
}
