package services

import (
	"context"
	"strings"
	"time"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/payments"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maskedSecret = "********"

// SettingsService reads and writes admin_settings. Nothing here is cached: every
// caller sees the values as they are in the table right now.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

func (s *SettingsService) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	var rows []models.AdminSetting
	query := s.db.WithContext(ctx)
	if len(keys) > 0 {
		query = query.Where(map[string]interface{}{"key": keys})
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, persistenceError("load settings", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

func (s *SettingsService) GatewayCredentials(ctx context.Context) (payments.Credentials, error) {
	values, err := s.Get(ctx,
		models.SettingRazorpayKeyID,
		models.SettingRazorpayKeySecret,
		models.SettingRazorpayEnabled,
		models.SettingRazorpayMode,
	)
	if err != nil {
		return payments.Credentials{}, err
	}

	return payments.Credentials{
		KeyID:     strings.TrimSpace(values[models.SettingRazorpayKeyID]),
		KeySecret: strings.TrimSpace(values[models.SettingRazorpayKeySecret]),
		Enabled:   values[models.SettingRazorpayEnabled] == "true",
		Mode:      values[models.SettingRazorpayMode],
	}, nil
}

// All returns every setting. The gateway secret is masked unless the caller is
// the owner.
func (s *SettingsService) All(ctx context.Context, principal models.Principal) (map[string]string, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	values, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if secret, ok := values[models.SettingRazorpayKeySecret]; ok && secret != "" && !principal.IsOwner() {
		values[models.SettingRazorpayKeySecret] = maskedSecret
	}
	return values, nil
}

func (s *SettingsService) Update(ctx context.Context, principal models.Principal, values map[string]string) error {
	if !principal.IsOwner() {
		return ErrForbidden
	}
	if len(values) == 0 {
		return validationError("no settings supplied")
	}

	known := make(map[string]bool, len(models.KnownSettings))
	for _, key := range models.KnownSettings {
		known[key] = true
	}

	now := time.Now()
	rows := make([]models.AdminSetting, 0, len(values))
	for key, value := range values {
		if !known[key] {
			return validationError("unknown setting %q", key)
		}
		if key == models.SettingRazorpayKeySecret && value == maskedSecret {
			continue
		}
		rows = append(rows, models.AdminSetting{Key: key, Value: strings.TrimSpace(value), UpdatedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return persistenceError("save settings", err)
	}
	return nil
}

// Seed inserts defaults for keys that have no row yet.
func (s *SettingsService) Seed(ctx context.Context, defaults map[string]string) error {
	rows := make([]models.AdminSetting, 0, len(defaults))
	for key, value := range defaults {
		rows = append(rows, models.AdminSetting{Key: key, Value: value})
	}
	if len(rows) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		return persistenceError("seed settings", err)
	}
	return nil
}
