package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gomart/internal/models"
)

func TestAccountTransitions(t *testing.T) {
	assert.True(t, CanTransitionAccount(models.StatusInactive, models.StatusActive))
	assert.True(t, CanTransitionAccount(models.StatusActive, models.StatusLocked))
	assert.True(t, CanTransitionAccount(models.StatusActive, models.StatusSuspended))
	assert.True(t, CanTransitionAccount(models.StatusLocked, models.StatusActive))
	assert.True(t, CanTransitionAccount(models.StatusSuspended, models.StatusActive))

	assert.False(t, CanTransitionAccount(models.StatusInactive, models.StatusLocked))
	assert.False(t, CanTransitionAccount(models.StatusLocked, models.StatusSuspended))
	assert.False(t, CanTransitionAccount(models.StatusActive, models.StatusPending))
	assert.False(t, CanTransitionAccount("UNKNOWN", models.StatusActive))
}

func TestOrderTransitionChain(t *testing.T) {
	assert.True(t, CanTransitionOrder(models.OrderPending, models.OrderProcessing))
	assert.True(t, CanTransitionOrder(models.OrderPending, models.OrderCancelled))
	assert.True(t, CanTransitionOrder(models.OrderProcessing, models.OrderShipped))
	assert.True(t, CanTransitionOrder(models.OrderShipped, models.OrderDelivered))

	assert.False(t, CanTransitionOrder(models.OrderPending, models.OrderDelivered))
	assert.False(t, CanTransitionOrder(models.OrderShipped, models.OrderCancelled))
	assert.False(t, CanTransitionOrder(models.OrderDelivered, models.OrderPending))
	assert.False(t, CanTransitionOrder(models.OrderCancelled, models.OrderProcessing))
}
