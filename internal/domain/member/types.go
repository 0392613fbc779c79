package member

import "errors"

var (
	ErrInvalidType = errors.New("invalid membership type")
	ErrInvalidRole = errors.New("invalid member role")
)

// Type tags one of the membership categories a principal can register under.
type Type string

const (
	TypeStudent    Type = "student_membership"
	TypeIndividual Type = "individual_membership"
	TypeCorporate  Type = "corporate_membership"
	TypeTrainer    Type = "trainer_membership"
	TypeBoard      Type = "board_membership"
)

// AllTypes returns every membership category in stable registration order.
// The order is load-bearing: cross-category lookups scan categories in this
// sequence, so the first match wins.
func AllTypes() []Type {
	return []Type{TypeStudent, TypeIndividual, TypeCorporate, TypeTrainer, TypeBoard}
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeStudent, TypeIndividual, TypeCorporate, TypeTrainer, TypeBoard:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
