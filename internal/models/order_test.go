package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusFailed, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPendingVerification, OrderStatusCompleted, true},
		{OrderStatusPendingVerification, OrderStatusFailed, true},
		{OrderStatusPendingVerification, OrderStatusPaid, false},
		{OrderStatusPaid, OrderStatusCompleted, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusPaid, OrderStatusFailed, false},
		{OrderStatusCompleted, OrderStatusFailed, false},
		{OrderStatusCompleted, OrderStatusPendingVerification, false},
		{OrderStatusFailed, OrderStatusCompleted, false},
		{OrderStatusFailed, OrderStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestPrincipalRoles(t *testing.T) {
	owner := Principal{Role: RoleOwner, Status: ProfileStatusActive}
	admin := Principal{Role: RoleAdmin, Status: ProfileStatusActive}
	locked := Principal{Role: RoleOwner, Status: ProfileStatusLocked}

	assert.True(t, owner.IsOwner())
	assert.True(t, owner.IsAdmin())
	assert.False(t, admin.IsOwner())
	assert.True(t, admin.IsAdmin())
	assert.False(t, locked.IsOwner())
	assert.False(t, locked.IsAdmin())
	assert.False(t, Principal{}.IsAdmin())
}
