package commands

import (
	"context"
	"errors"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/errs"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/jwt"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound         = errs.New("member not found")
	ErrInvalidCredentials     = errs.New("invalid credentials")
	ErrMemberInactive         = errs.New("member inactive")
	ErrEmailAlreadyRegistered = errs.New("email already registered")
	ErrInvalidRegistration    = errs.New("invalid registration")
	ErrRegistrationFailed     = errs.New("registration failed")
	ErrTokenGeneration        = errs.New("token generation failed")
	ErrTokenValidation        = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	MemberID   uuid.UUID
	MemberType member.Type
	Role       member.Role
	TokenPair  *TokenPair
}

type RegisterResult struct {
	MemberID   uuid.UUID
	MemberType member.Type
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	memberRepo MemberRepository
	jwtService *jwt.Service
}

func NewAuthCommands(memberRepo MemberRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		memberRepo: memberRepo,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*RegisterResult, error) {
	principal, err := buildPrincipal(req)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRegistration)
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrEmptyPassword) || errors.Is(err, password.ErrTooLong) {
			return nil, errs.Mark(err, ErrInvalidRegistration)
		}
		return nil, errs.Mark(err, ErrRegistrationFailed)
	}

	if err := a.memberRepo.Create(ctx, principal, hashed); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrEmailAlreadyRegistered)
		}
		return nil, errs.Mark(err, ErrRegistrationFailed)
	}

	return &RegisterResult{MemberID: principal.ID(), MemberType: principal.Type()}, nil
}

// buildPrincipal maps the flat registration payload onto the category's
// profile shape, enforcing the fields that category requires.
func buildPrincipal(req reqdto.RegisterRequest) (member.Principal, error) {
	memberType, err := member.NewType(req.MemberType)
	if err != nil {
		return nil, err
	}
	email, err := member.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	fullName, err := member.NewFullName(req.FullName)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	role := member.RoleMember

	switch memberType {
	case member.TypeStudent:
		if req.Institution == nil || *req.Institution == "" {
			return nil, errs.New("institution is required for student membership")
		}
		return member.NewStudent(id, email, fullName, role, true, *req.Institution, req.StudentNo), nil
	case member.TypeIndividual:
		return member.NewIndividual(id, email, fullName, role, true, req.Occupation), nil
	case member.TypeCorporate:
		if req.CompanyName == nil || *req.CompanyName == "" {
			return nil, errs.New("company name is required for corporate membership")
		}
		return member.NewCorporate(id, email, fullName, role, true, *req.CompanyName, req.CompanySize), nil
	case member.TypeTrainer:
		if req.Expertise == nil || *req.Expertise == "" {
			return nil, errs.New("expertise is required for trainer membership")
		}
		return member.NewTrainer(id, email, fullName, role, true, *req.Expertise, req.Bio), nil
	case member.TypeBoard:
		if req.Organization == nil || *req.Organization == "" {
			return nil, errs.New("organization is required for board membership")
		}
		return member.NewBoard(id, email, fullName, role, true, *req.Organization, req.Position), nil
	default:
		return nil, member.ErrInvalidType
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	email, err := member.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	principal, hashed, err := a.memberRepo.FindByEmail(ctx, email.String())
	if err != nil {
		// Same error as a password mismatch to prevent member enumeration
		return nil, ErrInvalidCredentials
	}

	if err := password.Verify(hashed, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !principal.IsActive() {
		return nil, ErrMemberInactive
	}

	pair, err := a.generatePair(principal.ID(), principal.Type(), principal.Role())
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		MemberID:   principal.ID(),
		MemberType: principal.Type(),
		Role:       principal.Role(),
		TokenPair:  pair,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	memberType, err := member.NewType(claims.MemberType)
	if err != nil {
		return nil, ErrTokenValidation
	}

	// The member must still exist and be active for the rotation to succeed
	principal, err := a.memberRepo.FindByID(ctx, memberType, claims.MemberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	if !principal.IsActive() {
		return nil, ErrMemberInactive
	}

	return a.generatePair(principal.ID(), principal.Type(), principal.Role())
}

func (a *authCommandsImpl) generatePair(id uuid.UUID, memberType member.Type, role member.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(id, memberType, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(id, memberType, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
