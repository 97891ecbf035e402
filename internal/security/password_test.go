package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cost 4 keeps bcrypt fast in tests
func testHasher() *Hasher {
	return NewHasher(4, DefaultPolicy())
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()

	hash, err := h.Hash("Str0ng!Pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Str0ng!Pass", hash)

	assert.True(t, h.Verify("Str0ng!Pass", hash))
	assert.False(t, h.Verify("wrong-password", hash))
}

func TestVerifyMalformedHash(t *testing.T) {
	h := testHasher()
	assert.False(t, h.Verify("Str0ng!Pass", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("Str0ng!Pass", ""))
}

func TestHashRejectsWeakPassword(t *testing.T) {
	h := testHasher()
	_, err := h.Hash("weak")
	require.Error(t, err)
}

func TestValidateStrengthReportsAllViolations(t *testing.T) {
	h := testHasher()

	ok, violations := h.ValidateStrength("abc")
	require.False(t, ok)
	// too short, no upper, no digit, no special
	assert.Len(t, violations, 4)

	ok, violations = h.ValidateStrength("Str0ng!Pass")
	assert.True(t, ok)
	assert.Empty(t, violations)
}

func TestValidateStrengthSingleViolation(t *testing.T) {
	h := testHasher()

	ok, violations := h.ValidateStrength("Strong!Password")
	require.False(t, ok)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "digit")
}

func TestPolicyLengthOnly(t *testing.T) {
	h := NewHasher(4, Policy{MinLength: 10})

	ok, _ := h.ValidateStrength("aaaaaaaaaa")
	assert.True(t, ok)

	ok, violations := h.ValidateStrength("aaaa")
	assert.False(t, ok)
	assert.Len(t, violations, 1)
}

func TestNewHasherClampsCost(t *testing.T) {
	h := NewHasher(99, DefaultPolicy())
	hash, err := h.Hash("Str0ng!Pass")
	require.NoError(t, err)
	assert.True(t, h.Verify("Str0ng!Pass", hash))
}
