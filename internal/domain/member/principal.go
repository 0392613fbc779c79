package member

import (
	"github.com/google/uuid"
)

// Principal is the tagged union over every membership category. Each variant
// carries its own profile shape but exposes the same identity accessors, so
// eligibility checks and usage attribution never care which table a member
// came from.
type Principal interface {
	ID() uuid.UUID
	Email() Email
	FullName() FullName
	Type() Type
	Role() Role
	IsActive() bool
}

type base struct {
	id       uuid.UUID
	email    Email
	fullName FullName
	role     Role
	active   bool
}

func (b base) ID() uuid.UUID      { return b.id }
func (b base) Email() Email       { return b.email }
func (b base) FullName() FullName { return b.fullName }
func (b base) Role() Role         { return b.role }
func (b base) IsActive() bool     { return b.active }

func newBase(id uuid.UUID, email Email, fullName FullName, role Role, active bool) base {
	return base{id: id, email: email, fullName: fullName, role: role, active: active}
}

type Student struct {
	base
	institution string
	studentNo   *string
}

func NewStudent(id uuid.UUID, email Email, fullName FullName, role Role, active bool, institution string, studentNo *string) *Student {
	return &Student{base: newBase(id, email, fullName, role, active), institution: institution, studentNo: studentNo}
}

func (s *Student) Type() Type          { return TypeStudent }
func (s *Student) Institution() string { return s.institution }
func (s *Student) StudentNo() *string  { return s.studentNo }

type Individual struct {
	base
	occupation *string
}

func NewIndividual(id uuid.UUID, email Email, fullName FullName, role Role, active bool, occupation *string) *Individual {
	return &Individual{base: newBase(id, email, fullName, role, active), occupation: occupation}
}

func (i *Individual) Type() Type          { return TypeIndividual }
func (i *Individual) Occupation() *string { return i.occupation }

type Corporate struct {
	base
	companyName string
	companySize *int32
}

func NewCorporate(id uuid.UUID, email Email, fullName FullName, role Role, active bool, companyName string, companySize *int32) *Corporate {
	return &Corporate{base: newBase(id, email, fullName, role, active), companyName: companyName, companySize: companySize}
}

func (c *Corporate) Type() Type          { return TypeCorporate }
func (c *Corporate) CompanyName() string { return c.companyName }
func (c *Corporate) CompanySize() *int32 { return c.companySize }

type Trainer struct {
	base
	expertise string
	bio       *string
}

func NewTrainer(id uuid.UUID, email Email, fullName FullName, role Role, active bool, expertise string, bio *string) *Trainer {
	return &Trainer{base: newBase(id, email, fullName, role, active), expertise: expertise, bio: bio}
}

func (t *Trainer) Type() Type        { return TypeTrainer }
func (t *Trainer) Expertise() string { return t.expertise }
func (t *Trainer) Bio() *string      { return t.bio }

type Board struct {
	base
	organization string
	position     *string
}

func NewBoard(id uuid.UUID, email Email, fullName FullName, role Role, active bool, organization string, position *string) *Board {
	return &Board{base: newBase(id, email, fullName, role, active), organization: organization, position: position}
}

func (b *Board) Type() Type           { return TypeBoard }
func (b *Board) Organization() string { return b.organization }
func (b *Board) Position() *string    { return b.position }
