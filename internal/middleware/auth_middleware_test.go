package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenFromRequest(t *testing.T) {
	cases := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer header", "Bearer abc.def", "", "abc.def"},
		{"lowercase scheme", "bearer abc.def", "", "abc.def"},
		{"header wins over cookie", "Bearer from-header", "from-cookie", "from-header"},
		{"other scheme", "Basic dXNlcjpwYXNz", "from-cookie", ""},
		{"cookie only", "", "from-cookie", "from-cookie"},
		{"nothing", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/admin/me", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: tc.cookie})
			}
			assert.Equal(t, tc.want, tokenFromRequest(c))
		})
	}
}

func TestRequireOwner(t *testing.T) {
	run := func(principal *models.Principal) int {
		r := gin.New()
		r.GET("/owner", func(c *gin.Context) {
			if principal != nil {
				c.Set(principalKey, *principal)
			}
			c.Next()
		}, RequireOwner(), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/owner", nil))
		return w.Code
	}

	owner := models.Principal{Role: models.RoleOwner, Status: models.ProfileStatusActive}
	admin := models.Principal{Role: models.RoleAdmin, Status: models.ProfileStatusActive}
	lockedOwner := models.Principal{Role: models.RoleOwner, Status: models.ProfileStatusLocked}

	assert.Equal(t, http.StatusNoContent, run(&owner))
	assert.Equal(t, http.StatusForbidden, run(&admin))
	assert.Equal(t, http.StatusForbidden, run(&lockedOwner))
	assert.Equal(t, http.StatusForbidden, run(nil))
}

func newAccountService(t *testing.T) *services.AccountService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	return services.NewAccountService(db, "test-jwt-secret")
}

func TestAuthMiddlewareSetsOnlyPrincipal(t *testing.T) {
	accounts := newAccountService(t)
	ctx := context.Background()
	profile, err := accounts.CreateProfile(ctx, "admin@example.com", "admin-pass", models.RoleAdmin)
	require.NoError(t, err)
	token, _, err := accounts.Login(ctx, "admin@example.com", "admin-pass")
	require.NoError(t, err)

	for name, mw := range map[string]gin.HandlerFunc{
		"admin auth":        AdminAuthMiddleware(accounts, false),
		"optional identity": OptionalIdentity(accounts),
	} {
		t.Run(name, func(t *testing.T) {
			var keys []string
			var principal models.Principal
			r := gin.New()
			r.GET("/admin/me", mw, func(c *gin.Context) {
				for key := range c.Keys {
					keys = append(keys, key)
				}
				principal, _ = GetPrincipal(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, []string{principalKey}, keys)
			assert.Equal(t, profile.ID, principal.ID)
		})
	}
}
