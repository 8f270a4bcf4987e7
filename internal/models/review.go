package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is unique per IdentityKey across every status: a rejected review still
// blocks a second submission.
type Review struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Rating      int          `gorm:"not null" json:"rating"`
	Comment     string       `gorm:"not null" json:"comment"`
	UserName    string       `gorm:"not null;default:'Anonymous'" json:"user_name"`
	IdentityKey string       `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	Status      ReviewStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	IsFeatured  bool         `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return
}
