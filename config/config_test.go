package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("GATEWAY_TIMEOUT", "5s")
	t.Setenv("VERIFICATION_TTL", "72h")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 72*time.Hour, cfg.VerificationTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 500, cfg.RestoreLimit)
	assert.Equal(t, "8080", cfg.Port)
}

func TestInitDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := InitDatabase(&Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestMigrateAndSeed(t *testing.T) {
	cfg := &Config{
		DBDriver:      DriverSQLite,
		DBPath:        filepath.Join(t.TempDir(), "studyverse.db"),
		JWTSecret:     "secret",
		OwnerEmail:    "Owner@Example.com",
		OwnerPassword: "owner-pass",
	}

	db, err := InitDatabase(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	ctx := context.Background()
	require.NoError(t, Seed(ctx, db, cfg))
	require.NoError(t, Seed(ctx, db, cfg))

	var owners []models.Profile
	require.NoError(t, db.Where("role = ?", models.RoleOwner).Find(&owners).Error)
	require.Len(t, owners, 1)
	assert.Equal(t, "owner@example.com", owners[0].Email)

	var enabled models.AdminSetting
	require.NoError(t, db.Where(map[string]interface{}{"key": models.SettingRazorpayEnabled}).First(&enabled).Error)
	assert.Equal(t, "false", enabled.Value)
}
