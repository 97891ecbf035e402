package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	m := NewManager(NewMemoryStore())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestIssueAndCheck(t *testing.T) {
	m, _ := newTestManager(t)

	code, err := m.Issue("user@example.com", 6, 10*time.Minute, "1", "registration")
	require.NoError(t, err)
	require.Len(t, code, 6)

	res := m.Check("user@example.com", code, 3)
	assert.Equal(t, OutcomeVerified, res.Outcome)
	assert.Equal(t, "1", res.UserID)
	assert.Equal(t, "registration", res.Purpose)
}

func TestCheckIsIdempotentAfterSuccess(t *testing.T) {
	m, _ := newTestManager(t)

	code, err := m.Issue("user@example.com", 6, 10*time.Minute, "1", "registration")
	require.NoError(t, err)

	require.Equal(t, OutcomeVerified, m.Check("user@example.com", code, 3).Outcome)

	// re-submitting the right code succeeds again
	assert.Equal(t, OutcomeVerified, m.Check("user@example.com", code, 3).Outcome)

	// a wrong candidate is still rejected after the record is verified
	assert.Equal(t, OutcomeMismatch, m.Check("user@example.com", "000000", 3).Outcome)
}

func TestCheckNoRecord(t *testing.T) {
	m, _ := newTestManager(t)
	res := m.Check("nobody@example.com", "123456", 3)
	assert.Equal(t, OutcomeNoRecord, res.Outcome)
}

func TestCheckAttemptsExhausted(t *testing.T) {
	m, _ := newTestManager(t)

	code, err := m.Issue("user@example.com", 6, 10*time.Minute, "1", "registration")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	res := m.Check("user@example.com", wrong, 3)
	assert.Equal(t, OutcomeMismatch, res.Outcome)
	assert.Equal(t, 2, res.AttemptsLeft)

	res = m.Check("user@example.com", wrong, 3)
	assert.Equal(t, OutcomeMismatch, res.Outcome)
	assert.Equal(t, 1, res.AttemptsLeft)

	res = m.Check("user@example.com", wrong, 3)
	assert.Equal(t, OutcomeMismatch, res.Outcome)
	assert.Equal(t, 0, res.AttemptsLeft)

	// even the right code is refused once attempts are spent
	res = m.Check("user@example.com", code, 3)
	assert.Equal(t, OutcomeMaxAttemptsExceeded, res.Outcome)
}

func TestCheckExpired(t *testing.T) {
	m, now := newTestManager(t)

	code, err := m.Issue("user@example.com", 6, 10*time.Minute, "1", "registration")
	require.NoError(t, err)

	*now = now.Add(10*time.Minute + time.Second)

	res := m.Check("user@example.com", code, 3)
	assert.Equal(t, OutcomeExpired, res.Outcome)

	// expiry does not consume attempts
	res = m.Check("user@example.com", code, 3)
	assert.Equal(t, OutcomeExpired, res.Outcome)
}

func TestRateLimit(t *testing.T) {
	m, now := newTestManager(t)

	assert.True(t, m.RateLimitOK("user@example.com", time.Minute))

	_, err := m.Issue("user@example.com", 6, 10*time.Minute, "1", "registration")
	require.NoError(t, err)

	assert.False(t, m.RateLimitOK("user@example.com", time.Minute))

	*now = now.Add(time.Minute)
	assert.True(t, m.RateLimitOK("user@example.com", time.Minute))
}

func TestIssueResetsAttempts(t *testing.T) {
	m, _ := newTestManager(t)

	code, err := m.Issue("user@example.com", 6, 10*time.Minute, "1", "registration")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	m.Check("user@example.com", wrong, 3)
	m.Check("user@example.com", wrong, 3)

	fresh, err := m.Issue("user@example.com", 6, 10*time.Minute, "1", "registration")
	require.NoError(t, err)

	res := m.Check("user@example.com", fresh, 3)
	assert.Equal(t, OutcomeVerified, res.Outcome)
}

func TestSweepPurgesExpired(t *testing.T) {
	m, now := newTestManager(t)

	_, err := m.Issue("old@example.com", 6, time.Minute, "1", "registration")
	require.NoError(t, err)
	_, err = m.Issue("fresh@example.com", 6, time.Hour, "2", "registration")
	require.NoError(t, err)

	*now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, OutcomeNoRecord, m.Check("old@example.com", "123456", 3).Outcome)
	assert.NotEqual(t, OutcomeNoRecord, m.Check("fresh@example.com", "123456", 3).Outcome)
}

func TestDeleteRemovesRecord(t *testing.T) {
	m, _ := newTestManager(t)

	code, err := m.Issue("user@example.com", 6, 10*time.Minute, "1", "password_reset")
	require.NoError(t, err)
	require.Equal(t, OutcomeVerified, m.Check("user@example.com", code, 3).Outcome)

	m.Delete("user@example.com")
	assert.Equal(t, OutcomeNoRecord, m.Check("user@example.com", code, 3).Outcome)
}
