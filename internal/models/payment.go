package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID        int           `json:"id"`
	OrderID   int           `json:"order_id"`
	Amount    float64       `json:"amount"`
	Method    string        `json:"method"` // cod, card, transfer
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
}
