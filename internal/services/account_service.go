package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Srijansendry/Srijan/internal/helpers"
	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenTTL          = 24 * time.Hour
	minPasswordLength = 6

	ActionResetPassword = "reset_password"
	ActionToggleLock    = "toggle_lock"
)

// AccountService manages administrator profiles and their session tokens.
type AccountService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAccountService(db *gorm.DB, jwtSecret string) *AccountService {
	return &AccountService{db: db, jwtSecret: []byte(jwtSecret)}
}

func (s *AccountService) Login(ctx context.Context, email, password string) (string, *models.Profile, error) {
	email = helpers.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, validationError("email and password are required")
	}

	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return "", nil, persistenceError("load profile", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if profile.Status == models.ProfileStatusLocked {
		return "", nil, ErrAccountLocked
	}

	token, err := s.IssueToken(&profile)
	if err != nil {
		return "", nil, err
	}
	return token, &profile, nil
}

func (s *AccountService) IssueToken(profile *models.Profile) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", errors.New("JWT_SECRET not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":         profile.ID.String(),
		"role":            string(profile.Role),
		"session_version": profile.SessionVersion,
		"exp":             time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *AccountService) parseToken(tokenString string) (uuid.UUID, int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, 0, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, 0, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("%w: invalid token subject", ErrUnauthorized)
	}

	version, _ := claims["session_version"].(float64)
	return userID, int(version), nil
}

// Authenticate resolves a token to the caller's current profile. Role and lock
// status always come from the profile row, never from the token.
func (s *AccountService) Authenticate(ctx context.Context, tokenString string) (*models.Profile, error) {
	userID, version, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown account", ErrUnauthorized)
		}
		return nil, persistenceError("load profile", err)
	}

	if profile.Status == models.ProfileStatusLocked {
		return &profile, ErrAccountLocked
	}
	if profile.SessionVersion != version {
		return nil, fmt.Errorf("%w: session revoked", ErrUnauthorized)
	}
	return &profile, nil
}

type ManageInput struct {
	Action      string
	UserID      string
	NewPassword string
}

type ManageResult struct {
	Profile   *models.Profile
	NewStatus models.ProfileStatus
}

// ManageAdmin lets the owner reset another administrator's password or lock and
// unlock their account. Both actions revoke the target's outstanding sessions.
func (s *AccountService) ManageAdmin(ctx context.Context, principal models.Principal, in ManageInput) (*ManageResult, error) {
	if !principal.IsOwner() {
		return nil, ErrForbidden
	}

	targetID, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, notFoundError("account %q", in.UserID)
	}

	var target models.Profile
	if err := s.db.WithContext(ctx).First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("account %s", targetID)
		}
		return nil, persistenceError("load account", err)
	}
	if target.Role == models.RoleOwner {
		return nil, fmt.Errorf("%w: owner accounts cannot be managed", ErrForbidden)
	}

	switch in.Action {
	case ActionResetPassword:
		if len(in.NewPassword) < minPasswordLength {
			return nil, validationError("password must be at least %d characters", minPasswordLength)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		err = s.db.WithContext(ctx).Model(&target).Updates(map[string]interface{}{
			"password":        string(hashed),
			"session_version": gorm.Expr("session_version + 1"),
		}).Error
		if err != nil {
			return nil, persistenceError("reset password", err)
		}
		return &ManageResult{Profile: &target, NewStatus: target.Status}, nil

	case ActionToggleLock:
		newStatus := models.ProfileStatusLocked
		if target.Status == models.ProfileStatusLocked {
			newStatus = models.ProfileStatusActive
		}
		res := s.db.WithContext(ctx).Model(&models.Profile{}).
			Where("id = ? AND status = ?", target.ID, target.Status).
			Updates(map[string]interface{}{
				"status":          newStatus,
				"session_version": gorm.Expr("session_version + 1"),
			})
		if res.Error != nil {
			return nil, persistenceError("toggle lock", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: account %s changed concurrently", ErrInvalidTransition, target.ID)
		}
		target.Status = newStatus
		return &ManageResult{Profile: &target, NewStatus: newStatus}, nil
	}

	return nil, validationError("unknown action %q", in.Action)
}

func (s *AccountService) ListAdmins(ctx context.Context, principal models.Principal) ([]models.Profile, error) {
	if !principal.IsOwner() {
		return nil, ErrForbidden
	}

	var profiles []models.Profile
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleAdmin).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, persistenceError("list admins", err)
	}
	return profiles, nil
}

// CreateProfile registers an administrator account. It is used to seed the
// owner at migration time and by the owner to add admins.
func (s *AccountService) CreateProfile(ctx context.Context, email, password string, role models.Role) (*models.Profile, error) {
	email = helpers.NormalizeEmail(email)
	if email == "" || len(password) < minPasswordLength {
		return nil, validationError("email and a password of at least %d characters are required", minPasswordLength)
	}
	if role != models.RoleAdmin && role != models.RoleOwner {
		return nil, validationError("invalid role %q", role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := models.Profile{
		Email:          email,
		Password:       string(hashed),
		Role:           role,
		Status:         models.ProfileStatusActive,
		SessionVersion: 1,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationError("account %s already exists", email)
		}
		return nil, persistenceError("create profile", err)
	}
	return &profile, nil
}

func (s *AccountService) AddAdmin(ctx context.Context, principal models.Principal, email, password string) (*models.Profile, error) {
	if !principal.IsOwner() {
		return nil, ErrForbidden
	}
	return s.CreateProfile(ctx, email, password, models.RoleAdmin)
}

// SeedOwner creates the owner account unless a profile with that email exists.
func (s *AccountService) SeedOwner(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("email = ?", helpers.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return persistenceError("look up owner", err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.CreateProfile(ctx, email, password, models.RoleOwner)
	return err
}
