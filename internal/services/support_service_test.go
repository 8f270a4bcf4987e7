package services

import (
	"context"
	"testing"

	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewSupportService(newTestDB(t))

	_, err := svc.Submit(ctx, SupportInput{IssueType: "payment", Message: "Paid but no access"})
	assert.ErrorIs(t, err, ErrValidation)

	request, err := svc.Submit(ctx, SupportInput{Contact: "9876543210", IssueType: "payment", Message: "Paid but no access"})
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", request.Name)
	assert.Equal(t, models.SupportStatusPending, request.Status)

	_, err = svc.List(ctx, models.Principal{})
	assert.ErrorIs(t, err, ErrForbidden)

	resolved, err := svc.Resolve(ctx, adminPrincipal, request.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.SupportStatusResolved, resolved.Status)

	requests, err := svc.List(ctx, adminPrincipal)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.SupportStatusResolved, requests[0].Status)

	require.NoError(t, svc.Delete(ctx, ownerPrincipal, request.ID.String()))
	_, err = svc.Resolve(ctx, adminPrincipal, request.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}
