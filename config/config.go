package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	Port      string
	JWTSecret string

	OwnerEmail    string
	OwnerPassword string

	GatewayTimeout  time.Duration
	RestoreLimit    int
	VerificationTTL time.Duration
	CookieSecure    bool
	UploadDir       string
}

// LoadConfig reads the process configuration from the environment, with an
// optional config.yaml in the working directory underneath it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_PATH", "studyverse.db")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GATEWAY_TIMEOUT", services.DefaultGatewayTimeout)
	v.SetDefault("RESTORE_LIMIT", services.DefaultRestoreLimit)
	v.SetDefault("VERIFICATION_TTL", time.Duration(0))
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("UPLOAD_DIR", "./uploads")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBName:          v.GetString("DB_NAME"),
		DBPath:          v.GetString("DB_PATH"),
		Port:            v.GetString("PORT"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		OwnerEmail:      v.GetString("OWNER_EMAIL"),
		OwnerPassword:   v.GetString("OWNER_PASSWORD"),
		GatewayTimeout:  v.GetDuration("GATEWAY_TIMEOUT"),
		RestoreLimit:    v.GetInt("RESTORE_LIMIT"),
		VerificationTTL: v.GetDuration("VERIFICATION_TTL"),
		CookieSecure:    v.GetBool("COOKIE_SECURE"),
		UploadDir:       v.GetString("UPLOAD_DIR"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}
	return cfg, nil
}

func (cfg *Config) dialector() (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(cfg.DBPath), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// InitDatabase opens the database. Unique-constraint violations are translated
// to gorm.ErrDuplicatedKey.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver == DriverSQLite {
		// sqlite allows one writer; serialise through a single connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

var defaultSettings = map[string]string{
	models.SettingRazorpayEnabled: "false",
	models.SettingRazorpayMode:    "test",
	models.SettingUPIPayeeName:    "StudyVerse",
}

// Seed fills in default admin settings and the owner account when missing.
func Seed(ctx context.Context, db *gorm.DB, cfg *Config) error {
	if err := services.NewSettingsService(db).Seed(ctx, defaultSettings); err != nil {
		return err
	}
	return services.NewAccountService(db, cfg.JWTSecret).SeedOwner(ctx, cfg.OwnerEmail, cfg.OwnerPassword)
}
