package models

import (
	"time"

	"gomart/internal/authz"
)

type AccountStatus string

const (
	StatusActive    AccountStatus = "ACTIVE"
	StatusPending   AccountStatus = "PENDING"
	StatusInactive  AccountStatus = "INACTIVE"
	StatusLocked    AccountStatus = "LOCKED"
	StatusSuspended AccountStatus = "SUSPENDED"
)

// Account holds the credential record. A registration starts INACTIVE and
// becomes ACTIVE after the verification code is confirmed; LOCKED/SUSPENDED
// are set by administrative action.
type Account struct {
	ID           int           `json:"id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"`
	Role         authz.Role    `json:"role"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}
