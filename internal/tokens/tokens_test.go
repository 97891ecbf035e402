package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomart/internal/authz"
)

func testIssuer() *Issuer {
	return NewIssuer("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	i := testIssuer()

	tok, err := i.IssueAccess(7, "alice01", "alice@example.com", authz.RoleCustomer)
	require.NoError(t, err)

	claims, err := i.Verify(tok, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "alice01", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, authz.RoleCustomer, claims.Role)
	assert.Equal(t, TypeAccess, claims.TokenType)
}

func TestTypeDiscriminator(t *testing.T) {
	i := testIssuer()

	access, err := i.IssueAccess(7, "alice01", "alice@example.com", authz.RoleCustomer)
	require.NoError(t, err)
	refresh, err := i.IssueRefresh(7, "alice01", "alice@example.com", authz.RoleCustomer)
	require.NoError(t, err)

	_, err = i.Verify(access, TypeRefresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = i.Verify(refresh, TypeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = i.Verify(refresh, TypeRefresh)
	assert.NoError(t, err)
}

func TestExpiredToken(t *testing.T) {
	i := testIssuer()

	tok, err := i.IssueAccess(7, "alice01", "alice@example.com", authz.RoleCustomer)
	require.NoError(t, err)

	i.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	_, err = i.Decode(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTamperedToken(t *testing.T) {
	i := testIssuer()

	tok, err := i.IssueAccess(7, "alice01", "alice@example.com", authz.RoleCustomer)
	require.NoError(t, err)

	_, err = i.Decode(tok + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestWrongSecret(t *testing.T) {
	i := testIssuer()
	other := NewIssuer("other-secret", 15*time.Minute, 24*time.Hour)

	tok, err := i.IssueAccess(7, "alice01", "alice@example.com", authz.RoleCustomer)
	require.NoError(t, err)

	_, err = other.Decode(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGarbageToken(t *testing.T) {
	i := testIssuer()
	_, err := i.Decode("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
