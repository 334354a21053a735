package middleware

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-test-secret-test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims util.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func claimsFor(id string, role model.UserRole, ttl time.Duration) util.Claims {
	return util.Claims{
		UserID: id,
		Role:   role,
		Name:   "Ana",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
}

type lastSeen struct {
	mu  sync.Mutex
	ids []string
	wg  sync.WaitGroup
}

func (l *lastSeen) UpdateLastSeen(id string) error {
	defer l.wg.Done()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids = append(l.ids, id)
	return nil
}

func newRouter(activity UserActivityRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: secret}}
	r := gin.New()
	api := r.Group("/api", AuthMiddleware(cfg), ActivityMiddleware(activity))
	api.GET("/me", func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})
	api.GET("/admin", RoleMiddleware(model.Admin), func(c *gin.Context) {
		util.Success(c, "ok")
	})
	return r
}

func do(r *gin.Engine, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthMiddleware(t *testing.T) {
	seen := &lastSeen{}
	r := newRouter(seen)

	valid := sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("u1", model.Student, time.Hour))
	seen.wg.Add(1)
	assert.Equal(t, http.StatusOK, do(r, "/api/me", valid))
	seen.wg.Wait()
	assert.Equal(t, []string{"u1"}, seen.ids)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor("u1", model.Student, time.Hour))},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("u1", model.Student, -time.Hour))},
		{"other algorithm", sign(t, jwt.SigningMethodHS512, []byte(secret), claimsFor("u1", model.Student, time.Hour))},
		{"no subject", sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("", model.Student, time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", tt.token))
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	seen := &lastSeen{}
	r := newRouter(seen)

	studentToken := sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("u1", model.Student, time.Hour))
	adminToken := sign(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("root", model.Admin, time.Hour))

	seen.wg.Add(2)
	assert.Equal(t, http.StatusForbidden, do(r, "/api/admin", studentToken))
	assert.Equal(t, http.StatusOK, do(r, "/api/admin", adminToken))
	seen.wg.Wait()
}
