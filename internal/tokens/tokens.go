package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gomart/internal/authz"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    int        `json:"user_id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      authz.Role `json:"role"`
	TokenType string     `json:"type"`
	jwt.RegisteredClaims
}

// Issuer signs and validates the stateless access/refresh token pair. Validity
// is signature + expiry only; there is no server-side revocation list.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *Issuer) IssueAccess(userID int, username, email string, role authz.Role) (string, error) {
	return i.sign(userID, username, email, role, TypeAccess, i.accessTTL)
}

func (i *Issuer) IssueRefresh(userID int, username, email string, role authz.Role) (string, error) {
	return i.sign(userID, username, email, role, TypeRefresh, i.refreshTTL)
}

func (i *Issuer) sign(userID int, username, email string, role authz.Role, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Decode verifies signature and expiry. The returned error distinguishes an
// expired token from a malformed or tampered one.
func (i *Issuer) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Verify decodes the token and additionally requires its type discriminator to
// match. A refresh token presented where an access token is expected (and vice
// versa) is invalid no matter how good the signature is.
func (i *Issuer) Verify(tokenStr, expectedType string) (*Claims, error) {
	claims, err := i.Decode(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != expectedType {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }
