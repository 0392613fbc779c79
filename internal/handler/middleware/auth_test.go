//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/member"
	"github.com/AI-Authority/AI-Authority-sub000/internal/handler/middleware"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/cookie"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/jwt"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase"
	"github.com/AI-Authority/AI-Authority-sub000/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*middleware.AuthMiddleware, *jwt.Service) {
	t.Helper()
	svc := jwt.NewService("test-secret-key-for-unit-tests", 15*time.Minute, 24*time.Hour)
	return middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc)), svc
}

func accessToken(t *testing.T, svc *jwt.Service, memberType member.Type, role member.Role) string {
	t.Helper()
	token, err := svc.GenerateAccessToken(uuid.New(), memberType, role)
	require.NoError(t, err)
	return token
}

func identityEcho(c *gin.Context) {
	memberID, hasID := middleware.GetMemberID(c)
	memberType, _ := middleware.GetMemberType(c)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": hasID,
		"member_id":     memberID.String(),
		"member_type":   memberType.String(),
	})
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, svc := newTestAuth(t)
	router := gin.New()
	router.GET("/protected", auth.RequireAuth(), identityEcho)

	t.Run("success: bearer token accepted", func(t *testing.T) {
		token := accessToken(t, svc, member.TypeStudent, member.RoleMember)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), member.TypeStudent.String())
	})

	t.Run("success: cookie token accepted", func(t *testing.T) {
		token := accessToken(t, svc, member.TypeStudent, member.RoleMember)
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: token}}

		rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/protected", nil, cookies, "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("error: 401 without a token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "")

		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("error: 401 on garbage token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, "not.a.token")

		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("error: 401 on refresh token used as access token", func(t *testing.T) {
		refresh, err := svc.GenerateRefreshToken(uuid.New(), member.TypeStudent, member.RoleMember)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/protected", nil, refresh)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, svc := newTestAuth(t)
	router := gin.New()
	router.POST("/checkout", auth.OptionalAuth(), identityEcho)

	t.Run("token present: identity attached", func(t *testing.T) {
		token := accessToken(t, svc, member.TypeIndividual, member.RoleMember)

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/checkout", nil, token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	})

	t.Run("no token: request proceeds anonymously", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/checkout", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})

	t.Run("undecodable token: request proceeds anonymously", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/checkout", nil, "expired.or.garbage")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, svc := newTestAuth(t)
	router := gin.New()
	router.GET("/admin", auth.RequireAuth(), auth.RequireRoleAtLeast(member.RoleAdmin), identityEcho)

	t.Run("success: admin passes", func(t *testing.T) {
		token := accessToken(t, svc, member.TypeBoard, member.RoleAdmin)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, token)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("error: 403 for plain member", func(t *testing.T) {
		token := accessToken(t, svc, member.TypeStudent, member.RoleMember)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, token)

		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func TestRequireMemberType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, svc := newTestAuth(t)
	router := gin.New()
	router.POST("/courses", auth.RequireAuth(), auth.RequireMemberType(member.TypeTrainer), identityEcho)

	t.Run("success: trainer passes", func(t *testing.T) {
		token := accessToken(t, svc, member.TypeTrainer, member.RoleMember)

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/courses", nil, token)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("error: 403 for any other category", func(t *testing.T) {
		token := accessToken(t, svc, member.TypeCorporate, member.RoleMember)

		rec := httptest.PerformRequest(t, router, http.MethodPost, "/courses", nil, token)

		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "not available for your membership")
	})
}
