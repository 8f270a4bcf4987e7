package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultActivityLimit = 100

type DownloadService struct {
	db        *gorm.DB
	purchases *PurchaseService
}

func NewDownloadService(db *gorm.DB, purchases *PurchaseService) *DownloadService {
	return &DownloadService{db: db, purchases: purchases}
}

// LogNoteDownload records a free-note download.
func (s *DownloadService) LogNoteDownload(ctx context.Context, userName, noteID string) error {
	userName = strings.TrimSpace(userName)
	if userName == "" || strings.TrimSpace(noteID) == "" {
		return validationError("userName and noteId are required")
	}

	id, err := uuid.Parse(strings.TrimSpace(noteID))
	if err != nil {
		return notFoundError("note %q", noteID)
	}

	var note models.Note
	if err := s.db.WithContext(ctx).First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("note %s", id)
		}
		return persistenceError("load note", err)
	}

	download := models.Download{UserName: userName, NoteID: &note.ID}
	if err := s.db.WithContext(ctx).Create(&download).Error; err != nil {
		return persistenceError("log download", err)
	}
	return nil
}

// AuthorizePYQDownload checks on the server that email paid for the PYQ before
// its content is released. The download is not logged here; callers record it
// with RecordPYQDownload once the content has actually been served.
func (s *DownloadService) AuthorizePYQDownload(ctx context.Context, email, productID string) (*models.PYQ, error) {
	if strings.TrimSpace(email) == "" {
		return nil, validationError("email is required")
	}

	pyq, err := s.purchases.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	ok, err := s.purchases.HasEntitlement(ctx, email, pyq.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return pyq, nil
}

// RecordPYQDownload logs a served PYQ download.
func (s *DownloadService) RecordPYQDownload(ctx context.Context, pyqID uuid.UUID, userName string) error {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		userName = "Purchased User"
	}
	download := models.Download{UserName: userName, PYQID: &pyqID}
	if err := s.db.WithContext(ctx).Create(&download).Error; err != nil {
		return persistenceError("log download", err)
	}
	return nil
}

type Activity struct {
	Orders    []models.Order    `json:"orders"`
	Downloads []models.Download `json:"downloads"`
}

// RecentActivity is the owner's audit view of orders and downloads.
func (s *DownloadService) RecentActivity(ctx context.Context, principal models.Principal, limit int) (*Activity, error) {
	if !principal.IsOwner() {
		return nil, ErrForbidden
	}
	if limit < 1 || limit > 500 {
		limit = defaultActivityLimit
	}

	activity := &Activity{}
	err := s.db.WithContext(ctx).Preload("Product").
		Order("created_at DESC").Limit(limit).
		Find(&activity.Orders).Error
	if err != nil {
		return nil, persistenceError("list orders", err)
	}

	err = s.db.WithContext(ctx).Preload("Note").
		Order("created_at DESC").Limit(limit).
		Find(&activity.Downloads).Error
	if err != nil {
		return nil, persistenceError("list downloads", err)
	}
	return activity, nil
}
