package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null;unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (subject *Subject) BeforeCreate(tx *gorm.DB) (err error) {
	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}
	return
}
