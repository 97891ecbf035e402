package services

import "gomart/internal/models"

// Allowed status transitions.
// NB: INACTIVE -> ACTIVE normally happens through code verification, but an
// admin may also activate directly.
var AccountTransitions = map[models.AccountStatus]map[models.AccountStatus]bool{
	models.StatusPending:   {models.StatusActive: true, models.StatusInactive: true},
	models.StatusInactive:  {models.StatusActive: true},
	models.StatusActive:    {models.StatusLocked: true, models.StatusSuspended: true, models.StatusInactive: true},
	models.StatusLocked:    {models.StatusActive: true},
	models.StatusSuspended: {models.StatusActive: true},
}

var OrderTransitions = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.OrderPending:    {models.OrderProcessing: true, models.OrderCancelled: true},
	models.OrderProcessing: {models.OrderShipped: true, models.OrderCancelled: true},
	models.OrderShipped:    {models.OrderDelivered: true},
	models.OrderDelivered:  {},
	models.OrderCancelled:  {},
}

func CanTransitionAccount(current, to models.AccountStatus) bool {
	nexts, ok := AccountTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}

func CanTransitionOrder(current, to models.OrderStatus) bool {
	nexts, ok := OrderTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}
