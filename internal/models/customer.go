package models

// Customer links a user profile to shop data (orders, carts). CustomerID is a
// business code like CUST20250901A1B2C3D4.
type Customer struct {
	CustomerID string `json:"customer_id"`
	UserID     int    `json:"user_id"`

	// joined profile, populated by search/get queries
	User *User `json:"user,omitempty"`
}
