package services

import (
	"errors"
	"fmt"
	"strings"
)

// Business-rule failures are expected outcomes, not crashes. Handlers map each
// of these to a distinct HTTP status and error code; anything else is treated
// as an internal error and logged with context.
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrPhoneTaken    = errors.New("phone number already exists")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountNotActive   = errors.New("account is not active, please verify your account")
	ErrAccountLocked      = errors.New("account has been locked")
	ErrAccountSuspended   = errors.New("account has been suspended")

	ErrNoVerification  = errors.New("no verification code found")
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrTooManyAttempts = errors.New("maximum verification attempts exceeded")
	ErrResendThrottled = errors.New("please wait before requesting a new code")

	ErrNotFound         = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSamePassword     = errors.New("new password must differ from the current one")

	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOutOfStock        = errors.New("not enough stock")
)

// WeakPasswordError lists every violated strength rule.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password does not meet requirements: %s", strings.Join(e.Violations, "; "))
}

// InvalidCodeError is a code mismatch; AttemptsLeft tells the caller how many
// tries remain before the record is exhausted.
type InvalidCodeError struct {
	AttemptsLeft int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid verification code (%d attempts left)", e.AttemptsLeft)
}
