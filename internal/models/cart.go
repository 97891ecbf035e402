package models

import "time"

type CartItem struct {
	ID         int       `json:"id"`
	CustomerID string    `json:"customer_id"`
	ProductID  int       `json:"product_id"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`

	Product *Product `json:"product,omitempty"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}
