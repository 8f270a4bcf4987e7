package services

import (
	"context"
	"testing"
	"time"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizePYQDownload(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	purchases := NewPurchaseService(db, PurchaseOptions{})
	svc := NewDownloadService(db, purchases)
	pyq := createPYQ(t, db, "DBMS 2023", 9)

	_, err := svc.AuthorizePYQDownload(ctx, "buyer@example.com", pyq.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	createOrder(t, db, pyq.ID, "buyer@example.com", models.OrderStatusPendingVerification, time.Now())
	_, err = svc.AuthorizePYQDownload(ctx, "buyer@example.com", pyq.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	createOrder(t, db, pyq.ID, "buyer@example.com", models.OrderStatusCompleted, time.Now())
	got, err := svc.AuthorizePYQDownload(ctx, "Buyer@Example.com", pyq.ID.String())
	require.NoError(t, err)
	assert.Equal(t, pyq.ID, got.ID)

	var count int64
	require.NoError(t, db.Model(&models.Download{}).Count(&count).Error)
	assert.Zero(t, count, "authorizing must not log a download")

	_, err = svc.AuthorizePYQDownload(ctx, "", pyq.ID.String())
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AuthorizePYQDownload(ctx, "buyer@example.com", uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPYQDownload(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewDownloadService(db, NewPurchaseService(db, PurchaseOptions{}))
	pyq := createPYQ(t, db, "DBMS 2023", 9)

	require.NoError(t, svc.RecordPYQDownload(ctx, pyq.ID, "  "))
	require.NoError(t, svc.RecordPYQDownload(ctx, pyq.ID, "Asha"))

	var downloads []models.Download
	require.NoError(t, db.Order("user_name ASC").Find(&downloads).Error)
	require.Len(t, downloads, 2)
	assert.Equal(t, "Asha", downloads[0].UserName)
	assert.Equal(t, "Purchased User", downloads[1].UserName)
	require.NotNil(t, downloads[1].PYQID)
	assert.Equal(t, pyq.ID, *downloads[1].PYQID)
}

func TestLogNoteDownloadAndActivity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewDownloadService(db, NewPurchaseService(db, PurchaseOptions{}))

	note := &models.Note{Title: "Unit 1"}
	require.NoError(t, db.Create(note).Error)

	assert.ErrorIs(t, svc.LogNoteDownload(ctx, "", note.ID.String()), ErrValidation)
	assert.ErrorIs(t, svc.LogNoteDownload(ctx, "Asha", uuid.NewString()), ErrNotFound)
	require.NoError(t, svc.LogNoteDownload(ctx, "Asha", note.ID.String()))

	_, err := svc.RecentActivity(ctx, adminPrincipal, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	activity, err := svc.RecentActivity(ctx, ownerPrincipal, 10)
	require.NoError(t, err)
	assert.Empty(t, activity.Orders)
	require.Len(t, activity.Downloads, 1)
	require.NotNil(t, activity.Downloads[0].Note)
	assert.Equal(t, "Unit 1", activity.Downloads[0].Note.Title)
}
