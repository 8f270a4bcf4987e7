package models

import "time"

const (
	SettingRazorpayKeyID     = "razorpay_key_id"
	SettingRazorpayKeySecret = "razorpay_key_secret"
	SettingRazorpayEnabled   = "razorpay_enabled"
	SettingRazorpayMode      = "razorpay_mode"
	SettingUPIVPA            = "upi_vpa"
	SettingUPIPayeeName      = "upi_payee_name"
	SettingAdminEmail        = "admin_email"
)

// KnownSettings are the keys an owner may write.
var KnownSettings = []string{
	SettingRazorpayKeyID,
	SettingRazorpayKeySecret,
	SettingRazorpayEnabled,
	SettingRazorpayMode,
	SettingUPIVPA,
	SettingUPIPayeeName,
	SettingAdminEmail,
}

type AdminSetting struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"not null;default:''"`
	UpdatedAt time.Time
}

func (AdminSetting) TableName() string {
	return "admin_settings"
}
