package services

import "gorm.io/gorm"

// Services bundles every domain service over one database handle.
type Services struct {
	Purchases *PurchaseService
	Reviews   *ReviewService
	Support   *SupportService
	Accounts  *AccountService
	Settings  *SettingsService
	Downloads *DownloadService
}

func New(db *gorm.DB, jwtSecret string, opts PurchaseOptions) *Services {
	purchases := NewPurchaseService(db, opts)
	return &Services{
		Purchases: purchases,
		Reviews:   NewReviewService(db),
		Support:   NewSupportService(db),
		Accounts:  NewAccountService(db, jwtSecret),
		Settings:  purchases.settings,
		Downloads: NewDownloadService(db, purchases),
	}
}
