package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const anonymousName = "Anonymous"

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type ReviewInput struct {
	Rating      int
	Comment     string
	UserName    string
	IdentityKey string
}

// SubmitReview stores a pending review. An identity may review once, ever:
// an existing row in any status blocks the submission.
func (s *ReviewService) SubmitReview(ctx context.Context, in ReviewInput) (*models.Review, error) {
	comment := strings.TrimSpace(in.Comment)
	identity := strings.TrimSpace(in.IdentityKey)
	if in.Rating < 1 || in.Rating > 5 {
		return nil, validationError("rating must be between 1 and 5")
	}
	if comment == "" {
		return nil, validationError("comment is required")
	}
	if identity == "" {
		return nil, validationError("reviewer identity is missing")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Where("identity_key = ?", identity).Count(&existing).Error; err != nil {
		return nil, persistenceError("look up review", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyReviewed
	}

	userName := strings.TrimSpace(in.UserName)
	if userName == "" {
		userName = anonymousName
	}

	review := models.Review{
		Rating:      in.Rating,
		Comment:     comment,
		UserName:    userName,
		IdentityKey: identity,
		Status:      models.ReviewStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		// Lost a race with a concurrent submission for the same identity.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, persistenceError("create review", err)
	}
	return &review, nil
}

// ListApproved returns published reviews, featured first, newest first.
func (s *ReviewService) ListApproved(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("status = ?", models.ReviewStatusApproved).
		Order("is_featured DESC").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, persistenceError("list approved reviews", err)
	}
	return reviews, nil
}

func (s *ReviewService) ListAll(ctx context.Context, principal models.Principal) ([]models.Review, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}

	var reviews []models.Review
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, persistenceError("list reviews", err)
	}
	return reviews, nil
}

func (s *ReviewService) find(ctx context.Context, reviewID string) (*models.Review, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, notFoundError("review %q", reviewID)
	}

	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("review %s", id)
		}
		return nil, persistenceError("load review", err)
	}
	return &review, nil
}

func (s *ReviewService) SetStatus(ctx context.Context, principal models.Principal, reviewID string, status models.ReviewStatus) (*models.Review, error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	if status != models.ReviewStatusApproved && status != models.ReviewStatusRejected {
		return nil, validationError("status must be %s or %s", models.ReviewStatusApproved, models.ReviewStatusRejected)
	}

	review, err := s.find(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(review).Update("status", status).Error; err != nil {
		return nil, persistenceError("update review status", err)
	}
	review.Status = status
	return review, nil
}

// SetFeatured pins or unpins a review. Only the owner may do this.
func (s *ReviewService) SetFeatured(ctx context.Context, principal models.Principal, reviewID string, featured bool) (*models.Review, error) {
	if !principal.IsOwner() {
		return nil, ErrForbidden
	}

	review, err := s.find(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(review).Update("is_featured", featured).Error; err != nil {
		return nil, persistenceError("update review featured flag", err)
	}
	review.IsFeatured = featured
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, principal models.Principal, reviewID string) error {
	if !principal.IsAdmin() {
		return ErrForbidden
	}

	review, err := s.find(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(review).Error; err != nil {
		return persistenceError("delete review", err)
	}
	return nil
}
