package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PYQ is a paid previous-year-question solution. Its content is either an uploaded
// file (FilePath) or an external link (ExternalURL).
type PYQ struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	SubjectID   uuid.UUID `gorm:"type:uuid;index" json:"subject_id"`
	Subject     *Subject  `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Year        int       `json:"year"`
	Price       float64   `gorm:"not null" json:"price"`
	FilePath    string    `json:"-"`
	ExternalURL string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PYQ) TableName() string {
	return "pyqs"
}

func (pyq *PYQ) BeforeCreate(tx *gorm.DB) (err error) {
	if pyq.ID == uuid.Nil {
		pyq.ID = uuid.New()
	}
	return
}
