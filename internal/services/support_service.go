package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportService struct {
	db *gorm.DB
}

func NewSupportService(db *gorm.DB) *SupportService {
	return &SupportService{db: db}
}

type SupportInput struct {
	Name      string
	Contact   string
	IssueType string
	Message   string
}

func (s *SupportService) Submit(ctx context.Context, in SupportInput) (*models.SupportRequest, error) {
	contact := strings.TrimSpace(in.Contact)
	issueType := strings.TrimSpace(in.IssueType)
	message := strings.TrimSpace(in.Message)
	if contact == "" || issueType == "" || message == "" {
		return nil, validationError("contact, issueType and message are required")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = anonymousName
	}

	request := models.SupportRequest{
		Name:      name,
		Contact:   contact,
		IssueType: issueType,
		Message:   message,
		Status:    models.SupportStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, persistenceError("create support request", err)
	}
	return &request, nil
}

func (s *SupportService) List(ctx context.Context, principal models.Principal) ([]models.SupportRequest, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	var requests []models.SupportRequest
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, persistenceError("list support requests", err)
	}
	return requests, nil
}

func (s *SupportService) find(ctx context.Context, requestID string) (*models.SupportRequest, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, notFoundError("support request %q", requestID)
	}

	var request models.SupportRequest
	if err := s.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("support request %s", id)
		}
		return nil, persistenceError("load support request", err)
	}
	return &request, nil
}

func (s *SupportService) Resolve(ctx context.Context, principal models.Principal, requestID string) (*models.SupportRequest, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	request, err := s.find(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == models.SupportStatusResolved {
		return request, nil
	}
	if err := s.db.WithContext(ctx).Model(request).Update("status", models.SupportStatusResolved).Error; err != nil {
		return nil, persistenceError("resolve support request", err)
	}
	request.Status = models.SupportStatusResolved
	return request, nil
}

func (s *SupportService) Delete(ctx context.Context, principal models.Principal, requestID string) error {
	if !principal.IsAdmin() {
		return ErrForbidden
	}

	request, err := s.find(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(request).Error; err != nil {
		return persistenceError("delete support request", err)
	}
	return nil
}
