package usecase

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides access-token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, member.Type, member.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, member.Type, member.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", "", err
	}

	if claims.TokenType != jwt.TokenTypeAccess {
		return uuid.Nil, "", "", jwt.ErrInvalidToken
	}

	memberType, err := member.NewType(claims.MemberType)
	if err != nil {
		return uuid.Nil, "", "", err
	}

	role, err := member.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", "", err
	}

	return claims.MemberID, memberType, role, nil
}
