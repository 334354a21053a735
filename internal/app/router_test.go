package app

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/database"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "router-test-secret-router-test-secret"

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWT:         config.JWTConfig{Secret: testSecret},
		Storage:     config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		RateLimit:   config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
		Leaderboard: config.LeaderboardConfig{CacheTTLSeconds: 30, DefaultLimit: 20},
	}
	a := &App{Config: cfg, DB: db}
	repos := a.initRepositories(db, nil)
	a.services = a.initServices(repos, cfg)
	ctrls := a.initControllers(a.services, db, nil)

	a.Router = gin.New()
	a.setupMiddlewares(a.Router, cfg)
	t.Cleanup(a.limiter.Stop)
	a.registerRoutes(a.Router, ctrls, repos, cfg)
	a.registerReloadables()
	return a
}

func token(t *testing.T, role model.UserRole) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, util.Claims{
		UserID: "u-" + string(role),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func get(a *App, path, bearer string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w.Code
}

func TestRoutesAreProtected(t *testing.T) {
	a := newTestApp(t)
	studentToken := token(t, model.Student)
	adminToken := token(t, model.Admin)

	assert.Equal(t, http.StatusOK, get(a, "/api/health", ""))
	assert.Equal(t, http.StatusUnauthorized, get(a, "/api/leaderboard", ""))
	assert.Equal(t, http.StatusOK, get(a, "/api/leaderboard", studentToken))
	assert.Equal(t, http.StatusOK, get(a, "/api/progress", studentToken))
	assert.Equal(t, http.StatusNotFound, get(a, "/api/items/nope", studentToken))

	assert.Equal(t, http.StatusUnauthorized, get(a, "/api/admin/items/x/diagnose", ""))
	assert.Equal(t, http.StatusForbidden, get(a, "/api/admin/items/x/diagnose", studentToken))
	assert.Equal(t, http.StatusNotFound, get(a, "/api/admin/items/x/diagnose", adminToken))
}

func TestConfigCallbacksApplyReloadableSettings(t *testing.T) {
	a := newTestApp(t)
	require.Len(t, a.configCallbacks, 1)

	next := *a.Config
	next.Leaderboard.CacheTTLSeconds = 5
	for _, cb := range a.configCallbacks {
		cb(&next)
	}
	assert.Equal(t, 5*time.Second, a.services.leaderboard.CacheTTL())
}
