package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"matunda/internal/core/apperror"
)

type stubValidator struct {
	claims *UserClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*UserClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newGuardedRouter(v JWTValidator, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(Auth(v))

	chain := []gin.HandlerFunc{}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("user_role")})
	})
	router.POST("/guarded", chain...)
	return router
}

func doGuarded(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	router := newGuardedRouter(stubValidator{claims: &UserClaims{UserID: "u1"}})

	w := doGuarded(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeUnauthorized)
}

func TestAuth_BadScheme(t *testing.T) {
	router := newGuardedRouter(stubValidator{claims: &UserClaims{UserID: "u1"}})

	w := doGuarded(router, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	router := newGuardedRouter(stubValidator{err: assert.AnError})

	w := doGuarded(router, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuth_AttachesUserRole(t *testing.T) {
	router := newGuardedRouter(stubValidator{
		claims: &UserClaims{UserID: "u1", Name: "Wanjiku", Role: "manager"},
	})

	w := doGuarded(router, "Bearer ok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"manager"`)
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	router := newGuardedRouter(stubValidator{
		claims: &UserClaims{UserID: "u1", Role: "manager"},
	}, "owner", "manager")

	w := doGuarded(router, "Bearer ok")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	router := newGuardedRouter(stubValidator{
		claims: &UserClaims{UserID: "u1", Role: "viewer"},
	}, "owner", "manager")

	w := doGuarded(router, "Bearer ok")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient permissions")
}
