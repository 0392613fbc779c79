//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/jwt"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/password"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberRecord struct {
	principal    member.Principal
	passwordHash string
}

type fakeMemberRepo struct {
	byEmail   map[string]memberRecord
	createErr error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{byEmail: make(map[string]memberRecord)}
}

func (r *fakeMemberRepo) add(p member.Principal, hash string) {
	r.byEmail[p.Email().String()] = memberRecord{principal: p, passwordHash: hash}
}

func (r *fakeMemberRepo) Create(_ context.Context, p member.Principal, passwordHash string) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[p.Email().String()]; ok {
		return infra.WrapRepoErr("insert member", errors.New("duplicate"), infra.KindDuplicateKey)
	}
	r.add(p, passwordHash)
	return nil
}

func (r *fakeMemberRepo) FindByEmail(_ context.Context, email string) (member.Principal, string, error) {
	rec, ok := r.byEmail[email]
	if !ok {
		return nil, "", notFoundErr("member not found")
	}
	return rec.principal, rec.passwordHash, nil
}

func (r *fakeMemberRepo) FindByID(_ context.Context, memberType member.Type, id uuid.UUID) (member.Principal, error) {
	for _, rec := range r.byEmail {
		if rec.principal.ID() == id && rec.principal.Type() == memberType {
			return rec.principal, nil
		}
	}
	return nil, notFoundErr("member not found")
}

func testJWTService() *jwt.Service {
	return jwt.NewService("test-secret-key-for-unit-tests", 15*time.Minute, 24*time.Hour)
}

func studentPrincipal(t *testing.T, emailAddr string, active bool) member.Principal {
	t.Helper()
	email, err := member.NewEmail(emailAddr)
	require.NoError(t, err)
	fullName, err := member.NewFullName("Aiko Tanaka")
	require.NoError(t, err)
	return member.NewStudent(uuid.New(), email, fullName, member.RoleMember, active, "Tokyo Institute of AI", nil)
}

func registerReq(memberType string) reqdto.RegisterRequest {
	req := reqdto.RegisterRequest{
		Email:      "new@example.com",
		Password:   "password123",
		FullName:   "Kenji Sato",
		MemberType: memberType,
	}
	switch memberType {
	case member.TypeStudent.String():
		req.Institution = strp("Osaka University")
	case member.TypeCorporate.String():
		req.CompanyName = strp("Acme AI KK")
	case member.TypeTrainer.String():
		req.Expertise = strp("LLM fine tuning")
	case member.TypeBoard.String():
		req.Organization = strp("AI Standards Council")
	}
	return req
}

// =============================================================================
// Register Tests
// =============================================================================

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success: each membership category registers with its profile", func(t *testing.T) {
		for _, memberType := range member.AllTypes() {
			repo := newFakeMemberRepo()
			uc := commands.NewAuthCommands(repo, testJWTService())

			result, err := uc.Register(ctx, registerReq(memberType.String()))

			require.NoError(t, err, "member type %s", memberType)
			assert.Equal(t, memberType, result.MemberType)
			assert.NotEqual(t, uuid.Nil, result.MemberID)
		}
	})

	t.Run("error: category-required profile field missing", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(*reqdto.RegisterRequest)
		}{
			{name: "student without institution", mutate: func(r *reqdto.RegisterRequest) {
				r.MemberType = member.TypeStudent.String()
				r.Institution = nil
			}},
			{name: "corporate without company name", mutate: func(r *reqdto.RegisterRequest) {
				r.MemberType = member.TypeCorporate.String()
				r.CompanyName = strp("")
			}},
			{name: "trainer without expertise", mutate: func(r *reqdto.RegisterRequest) {
				r.MemberType = member.TypeTrainer.String()
				r.Expertise = nil
			}},
			{name: "board without organization", mutate: func(r *reqdto.RegisterRequest) {
				r.MemberType = member.TypeBoard.String()
				r.Organization = nil
			}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := registerReq(member.TypeIndividual.String())
				tc.mutate(&req)
				uc := commands.NewAuthCommands(newFakeMemberRepo(), testJWTService())

				_, err := uc.Register(ctx, req)

				assert.ErrorIs(t, err, commands.ErrInvalidRegistration)
			})
		}
	})

	t.Run("error: password exceeding the bcrypt limit", func(t *testing.T) {
		req := registerReq(member.TypeIndividual.String())
		req.Password = strings.Repeat("a", 73)
		uc := commands.NewAuthCommands(newFakeMemberRepo(), testJWTService())

		_, err := uc.Register(ctx, req)

		assert.ErrorIs(t, err, commands.ErrInvalidRegistration)
	})

	t.Run("error: unknown member type", func(t *testing.T) {
		req := registerReq(member.TypeIndividual.String())
		req.MemberType = "platinum_membership"
		uc := commands.NewAuthCommands(newFakeMemberRepo(), testJWTService())

		_, err := uc.Register(ctx, req)

		assert.ErrorIs(t, err, commands.ErrInvalidRegistration)
	})

	t.Run("error: duplicate email", func(t *testing.T) {
		repo := newFakeMemberRepo()
		repo.add(studentPrincipal(t, "new@example.com", true), "hash")
		uc := commands.NewAuthCommands(repo, testJWTService())

		_, err := uc.Register(ctx, registerReq(member.TypeStudent.String()))

		assert.ErrorIs(t, err, commands.ErrEmailAlreadyRegistered)
	})
}

// =============================================================================
// Login Tests
// =============================================================================

func TestLogin(t *testing.T) {
	ctx := context.Background()
	const plaintext = "password123"

	activeMember := func(t *testing.T, repo *fakeMemberRepo, emailAddr string, active bool) member.Principal {
		t.Helper()
		hash, err := password.Hash(plaintext)
		require.NoError(t, err)
		p := studentPrincipal(t, emailAddr, active)
		repo.add(p, hash)
		return p
	}

	t.Run("success: valid credentials yield a token pair", func(t *testing.T) {
		repo := newFakeMemberRepo()
		p := activeMember(t, repo, "member@example.com", true)
		svc := testJWTService()
		uc := commands.NewAuthCommands(repo, svc)

		result, err := uc.Login(ctx, reqdto.LoginRequest{Email: "member@example.com", Password: plaintext})

		require.NoError(t, err)
		assert.Equal(t, p.ID(), result.MemberID)
		assert.Equal(t, member.TypeStudent, result.MemberType)

		claims, err := svc.ValidateToken(result.TokenPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
		assert.Equal(t, p.ID(), claims.MemberID)
	})

	t.Run("error: unknown email and wrong password are indistinguishable", func(t *testing.T) {
		repo := newFakeMemberRepo()
		activeMember(t, repo, "member@example.com", true)
		uc := commands.NewAuthCommands(repo, testJWTService())

		_, unknownErr := uc.Login(ctx, reqdto.LoginRequest{Email: "ghost@example.com", Password: plaintext})
		_, wrongErr := uc.Login(ctx, reqdto.LoginRequest{Email: "member@example.com", Password: "wrongpassword"})

		assert.ErrorIs(t, unknownErr, commands.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, commands.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("error: inactive member", func(t *testing.T) {
		repo := newFakeMemberRepo()
		activeMember(t, repo, "dormant@example.com", false)
		uc := commands.NewAuthCommands(repo, testJWTService())

		_, err := uc.Login(ctx, reqdto.LoginRequest{Email: "dormant@example.com", Password: plaintext})

		assert.ErrorIs(t, err, commands.ErrMemberInactive)
	})
}

// =============================================================================
// RefreshToken Tests
// =============================================================================

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success: refresh token rotates into a new pair", func(t *testing.T) {
		repo := newFakeMemberRepo()
		p := studentPrincipal(t, "member@example.com", true)
		repo.add(p, "hash")
		svc := testJWTService()
		uc := commands.NewAuthCommands(repo, svc)

		refresh, err := svc.GenerateRefreshToken(p.ID(), p.Type(), p.Role())
		require.NoError(t, err)

		pair, err := uc.RefreshToken(ctx, refresh)

		require.NoError(t, err)
		claims, err := svc.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	})

	t.Run("error: access token rejected as refresh token", func(t *testing.T) {
		repo := newFakeMemberRepo()
		p := studentPrincipal(t, "member@example.com", true)
		repo.add(p, "hash")
		svc := testJWTService()
		uc := commands.NewAuthCommands(repo, svc)

		access, err := svc.GenerateAccessToken(p.ID(), p.Type(), p.Role())
		require.NoError(t, err)

		_, err = uc.RefreshToken(ctx, access)

		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("error: garbage token", func(t *testing.T) {
		uc := commands.NewAuthCommands(newFakeMemberRepo(), testJWTService())

		_, err := uc.RefreshToken(ctx, strings.Repeat("x", 32))

		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("error: member deleted since issuance", func(t *testing.T) {
		svc := testJWTService()
		uc := commands.NewAuthCommands(newFakeMemberRepo(), svc)

		refresh, err := svc.GenerateRefreshToken(uuid.New(), member.TypeStudent, member.RoleMember)
		require.NoError(t, err)

		_, err = uc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, commands.ErrMemberNotFound)
	})

	t.Run("error: member deactivated since issuance", func(t *testing.T) {
		repo := newFakeMemberRepo()
		p := studentPrincipal(t, "dormant@example.com", false)
		repo.add(p, "hash")
		svc := testJWTService()
		uc := commands.NewAuthCommands(repo, svc)

		refresh, err := svc.GenerateRefreshToken(p.ID(), p.Type(), p.Role())
		require.NoError(t, err)

		_, err = uc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, commands.ErrMemberInactive)
	})
}
