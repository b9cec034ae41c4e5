package models

import "fmt"

// OrderStatus is the order aggregate status. Values are case sensitive and
// stored as-is in the database.
type OrderStatus string

const (
	OrderStatusPending            OrderStatus = "Pending"
	OrderStatusPartiallyDelivered OrderStatus = "Partially Delivered"
	OrderStatusDelivered          OrderStatus = "Delivered"
	OrderStatusCancelled          OrderStatus = "Cancelled"
	OrderStatusDispatched         OrderStatus = "Dispatched"
)

// Order line statuses. Lines only move Pending -> Delivered.
const (
	LineStatusPending   = "Pending"
	LineStatusDelivered = "Delivered"
)

// orderTransitions is the explicit transition table. Delivered and Cancelled
// are terminal; a dispatched order can only progress towards delivery.
var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending: {
		OrderStatusPartiallyDelivered: true,
		OrderStatusDelivered:          true,
		OrderStatusCancelled:          true,
		OrderStatusDispatched:         true,
	},
	OrderStatusPartiallyDelivered: {
		OrderStatusDelivered:  true,
		OrderStatusCancelled:  true,
		OrderStatusDispatched: true,
	},
	OrderStatusDispatched: {
		OrderStatusPartiallyDelivered: true,
		OrderStatusDelivered:          true,
	},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ToOrderStatus parses a status string, rejecting unknown values.
func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

// CanTransitionTo reports whether the transition table allows moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return orderTransitions[s][next]
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}
