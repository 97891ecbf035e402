package security

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Policy describes the password strength rules. Zero value means "length only".
type Policy struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireDigit   bool
	RequireSpecial bool
}

func DefaultPolicy() Policy {
	return Policy{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireDigit:   true,
		RequireSpecial: true,
	}
}

type Hasher struct {
	Cost   int
	Policy Policy
}

func NewHasher(cost int, policy Policy) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if policy.MinLength <= 0 {
		policy.MinLength = 8
	}
	return &Hasher{Cost: cost, Policy: policy}
}

// Hash validates strength first and then bcrypts the password. The returned
// error wraps every violated rule, not just the first.
func (h *Hasher) Hash(password string) (string, error) {
	if ok, violations := h.ValidateStrength(password); !ok {
		return "", fmt.Errorf("password too weak: %s", strings.Join(violations, "; "))
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. A malformed hash is
// treated as a mismatch, never an error.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateStrength checks password against the policy and reports every unmet
// rule.
func (h *Hasher) ValidateStrength(password string) (bool, []string) {
	var violations []string

	if len(password) < h.Policy.MinLength {
		violations = append(violations,
			fmt.Sprintf("password must be at least %d characters long", h.Policy.MinLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if h.Policy.RequireUpper && !hasUpper {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if h.Policy.RequireLower && !hasLower {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if h.Policy.RequireDigit && !hasDigit {
		violations = append(violations, "password must contain at least one digit")
	}
	if h.Policy.RequireSpecial && !hasSpecial {
		violations = append(violations, "password must contain at least one special character")
	}

	return len(violations) == 0, violations
}
