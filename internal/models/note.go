package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	SubjectID   uuid.UUID `gorm:"type:uuid;index" json:"subject_id"`
	FilePath    string    `json:"-"`
	ExternalURL string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (note *Note) BeforeCreate(tx *gorm.DB) (err error) {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	return
}

// Download records one fetch of a note or a purchased PYQ.
type Download struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserName  string     `gorm:"not null" json:"user_name"`
	NoteID    *uuid.UUID `gorm:"type:uuid;index" json:"note_id,omitempty"`
	Note      *Note      `gorm:"foreignKey:NoteID" json:"note,omitempty"`
	PYQID     *uuid.UUID `gorm:"column:pyq_id;type:uuid;index" json:"pyq_id,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (download *Download) BeforeCreate(tx *gorm.DB) (err error) {
	if download.ID == uuid.Nil {
		download.ID = uuid.New()
	}
	return
}
