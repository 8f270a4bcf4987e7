package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

type ProfileStatus string

const (
	ProfileStatusActive ProfileStatus = "active"
	ProfileStatusLocked ProfileStatus = "locked"
)

// Profile is an administrator account.
type Profile struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Email          string        `gorm:"unique;not null" json:"email"`
	Password       string        `gorm:"not null" json:"-"`
	Role           Role          `gorm:"type:varchar(16);not null;default:'admin'" json:"role"`
	Status         ProfileStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	SessionVersion int           `gorm:"not null;default:1" json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (profile *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return
}

// Principal is the caller of an admin operation, loaded from its profile row at
// request time. Services take it explicitly instead of reading ambient state.
type Principal struct {
	ID     uuid.UUID
	Email  string
	Role   Role
	Status ProfileStatus
}

func (p Principal) IsAdmin() bool {
	return p.Status == ProfileStatusActive && (p.Role == RoleAdmin || p.Role == RoleOwner)
}

func (p Principal) IsOwner() bool {
	return p.Status == ProfileStatusActive && p.Role == RoleOwner
}

func (profile *Profile) Principal() Principal {
	return Principal{
		ID:     profile.ID,
		Email:  profile.Email,
		Role:   profile.Role,
		Status: profile.Status,
	}
}
