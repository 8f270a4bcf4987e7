package services

import (
	"context"
	"testing"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccounts(t *testing.T) (*AccountService, *gorm.DB, *models.Profile, *models.Profile) {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewAccountService(db, "test-jwt-secret")

	owner, err := svc.CreateProfile(ctx, "owner@example.com", "owner-pass", models.RoleOwner)
	require.NoError(t, err)
	admin, err := svc.CreateProfile(ctx, "Admin@Example.com", "admin-pass", models.RoleAdmin)
	require.NoError(t, err)
	return svc, db, owner, admin
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _, _, admin := newAccounts(t)
	assert.Equal(t, "admin@example.com", admin.Email)

	token, profile, err := svc.Login(ctx, "ADMIN@example.com", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, profile.ID)

	current, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, current.Role)

	_, _, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(ctx, "ghost@example.com", "admin-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	other := NewAccountService(nil, "different-secret")
	forged, err := other.IssueToken(admin)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestManageAdminRequiresOwner(t *testing.T) {
	ctx := context.Background()
	svc, db, _, admin := newAccounts(t)
	second, err := svc.CreateProfile(ctx, "second@example.com", "second-pass", models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ManageAdmin(ctx, admin.Principal(), ManageInput{Action: ActionToggleLock, UserID: second.ID.String()})
	assert.ErrorIs(t, err, ErrForbidden)

	var reloaded models.Profile
	require.NoError(t, db.First(&reloaded, "id = ?", second.ID).Error)
	assert.Equal(t, models.ProfileStatusActive, reloaded.Status)
	assert.Equal(t, second.SessionVersion, reloaded.SessionVersion)
}

func TestToggleLockSignsOut(t *testing.T) {
	ctx := context.Background()
	svc, _, owner, admin := newAccounts(t)

	token, _, err := svc.Login(ctx, "admin@example.com", "admin-pass")
	require.NoError(t, err)

	result, err := svc.ManageAdmin(ctx, owner.Principal(), ManageInput{Action: ActionToggleLock, UserID: admin.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, models.ProfileStatusLocked, result.NewStatus)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrAccountLocked)

	_, _, err = svc.Login(ctx, "admin@example.com", "admin-pass")
	assert.ErrorIs(t, err, ErrAccountLocked)

	result, err = svc.ManageAdmin(ctx, owner.Principal(), ManageInput{Action: ActionToggleLock, UserID: admin.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, models.ProfileStatusActive, result.NewStatus)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(ctx, "admin@example.com", "admin-pass")
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, owner, admin := newAccounts(t)

	oldToken, _, err := svc.Login(ctx, "admin@example.com", "admin-pass")
	require.NoError(t, err)

	_, err = svc.ManageAdmin(ctx, owner.Principal(), ManageInput{Action: ActionResetPassword, UserID: admin.ID.String(), NewPassword: "short"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ManageAdmin(ctx, owner.Principal(), ManageInput{Action: ActionResetPassword, UserID: admin.ID.String(), NewPassword: "brand-new-pass"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, oldToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(ctx, "admin@example.com", "admin-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = svc.Login(ctx, "admin@example.com", "brand-new-pass")
	assert.NoError(t, err)
}

func TestManageAdminEdgeCases(t *testing.T) {
	ctx := context.Background()
	svc, _, owner, admin := newAccounts(t)

	_, err := svc.ManageAdmin(ctx, owner.Principal(), ManageInput{Action: ActionToggleLock, UserID: owner.ID.String()})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ManageAdmin(ctx, owner.Principal(), ManageInput{Action: "promote", UserID: admin.ID.String()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ManageAdmin(ctx, owner.Principal(), ManageInput{Action: ActionToggleLock, UserID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminRoster(t *testing.T) {
	ctx := context.Background()
	svc, _, owner, admin := newAccounts(t)

	_, err := svc.ListAdmins(ctx, admin.Principal())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AddAdmin(ctx, admin.Principal(), "x@example.com", "password")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AddAdmin(ctx, owner.Principal(), "new@example.com", "password")
	require.NoError(t, err)
	_, err = svc.AddAdmin(ctx, owner.Principal(), "NEW@example.com", "password")
	assert.ErrorIs(t, err, ErrValidation)

	admins, err := svc.ListAdmins(ctx, owner.Principal())
	require.NoError(t, err)
	assert.Len(t, admins, 2)
	for _, profile := range admins {
		assert.Equal(t, models.RoleAdmin, profile.Role)
	}
}

func TestSeedOwnerIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewAccountService(db, "secret")

	require.NoError(t, svc.SeedOwner(ctx, "Owner@Example.com", "owner-pass"))
	require.NoError(t, svc.SeedOwner(ctx, "owner@example.com", "other-pass"))
	require.NoError(t, svc.SeedOwner(ctx, "", ""))

	var profiles []models.Profile
	require.NoError(t, db.Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.Equal(t, models.RoleOwner, profiles[0].Role)

	_, _, err := svc.Login(ctx, "owner@example.com", "owner-pass")
	assert.NoError(t, err)
}
