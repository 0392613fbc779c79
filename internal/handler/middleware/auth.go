package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/cookie"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxMemberIDKey   = "member_id"
	ctxMemberTypeKey = "member_type"
	ctxMemberRoleKey = "member_role"
)

var roleHierarchy = map[member.Role]int{
	member.RoleMember: 1,
	member.RoleAdmin:  2,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func extractToken(c *gin.Context) string {
	token := cookie.GetAccessToken(c)
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}
	}
	return token
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		memberID, memberType, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		setAuthContext(c, memberID, memberType, role)
		c.Next()
	}
}

// OptionalAuth authenticates the request when a token is present but never
// aborts. Checkout uses it: identity attaches coupon usage to a member, but
// an undecodable token must not block the purchase.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		memberID, memberType, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Debug("Optional auth token rejected, continuing anonymously", "error", err.Error())
			c.Next()
			return
		}

		setAuthContext(c, memberID, memberType, role)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole member.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetMemberRole(c)
		if !ok {
			// Unexpected: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireMemberType restricts a route to one membership category, e.g.
// course submission to trainers.
func (m *AuthMiddleware) RequireMemberType(allowed member.Type) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberType, ok := GetMemberType(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if memberType != allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "This action is not available for your membership",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func setAuthContext(c *gin.Context, memberID uuid.UUID, memberType member.Type, role member.Role) {
	c.Set(ctxMemberIDKey, memberID)
	c.Set(ctxMemberTypeKey, memberType)
	c.Set(ctxMemberRoleKey, role)
	c.Set("jwt_claims", map[string]any{
		"member_id":   memberID.String(),
		"member_type": memberType.String(),
		"role":        role.String(),
	})
}

func hasMinimumRole(memberRole, minRole member.Role) bool {
	memberLevel, memberExists := roleHierarchy[memberRole]
	minLevel, minExists := roleHierarchy[minRole]
	return memberExists && minExists && memberLevel >= minLevel
}

func GetMemberID(c *gin.Context) (uuid.UUID, bool) {
	memberID, exists := c.Get(ctxMemberIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := memberID.(uuid.UUID)
	return id, ok
}

func GetMemberType(c *gin.Context) (member.Type, bool) {
	memberType, exists := c.Get(ctxMemberTypeKey)
	if !exists {
		return "", false
	}

	t, ok := memberType.(member.Type)
	return t, ok
}

func GetMemberRole(c *gin.Context) (member.Role, bool) {
	memberRole, exists := c.Get(ctxMemberRoleKey)
	if !exists {
		return "", false
	}

	role, ok := memberRole.(member.Role)
	return role, ok
}
