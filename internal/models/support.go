package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportStatus string

const (
	SupportStatusPending  SupportStatus = "pending"
	SupportStatusResolved SupportStatus = "resolved"
)

type SupportRequest struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name      string        `gorm:"not null;default:'Anonymous'" json:"name"`
	Contact   string        `gorm:"not null" json:"contact"`
	IssueType string        `gorm:"not null" json:"issue_type"`
	Message   string        `gorm:"not null" json:"message"`
	Status    SupportStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (request *SupportRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	return
}
