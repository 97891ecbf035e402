package verification

import (
	"context"
	"log"
	"sync"
	"time"

	"gomart/internal/utils"
)

type Outcome int

const (
	OutcomeVerified Outcome = iota
	OutcomeNoRecord
	OutcomeMaxAttemptsExceeded
	OutcomeExpired
	OutcomeMismatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeNoRecord:
		return "no_record"
	case OutcomeMaxAttemptsExceeded:
		return "max_attempts_exceeded"
	case OutcomeExpired:
		return "expired"
	case OutcomeMismatch:
		return "mismatch"
	}
	return "unknown"
}

type Result struct {
	Outcome      Outcome
	AttemptsLeft int // meaningful for mismatch only
	UserID       string
	Purpose      string
}

// Manager owns the verification records. All operations are serialized under a
// single mutex so concurrent check/issue on one identifier cannot lose attempt
// updates or let two checks both pass the attempt limit.
type Manager struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{store: store, now: time.Now}
}

// Issue creates a fresh numeric code for identifier, overwriting any previous
// record and resetting the attempt counter.
func (m *Manager) Issue(identifier string, codeLength int, ttl time.Duration, userID, purpose string) (string, error) {
	code, err := utils.NumericCode(codeLength)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Put(identifier, &Record{
		Code:      code,
		CreatedAt: m.now(),
		TTL:       ttl,
		UserID:    userID,
		Purpose:   purpose,
	})
	log.Printf("[verification][issue] identifier=%s purpose=%s ttl=%s", utils.MaskIdentifier(identifier), purpose, ttl)
	return code, nil
}

// Check validates candidate against the stored code. Exhausted and expired
// records short-circuit without consuming an attempt; a plain mismatch costs
// one attempt and reports how many remain. A record that is already verified
// stays verified, but re-checking it still requires the matching code: a
// double-submit of the right code succeeds again, anything else does not.
func (m *Manager) Check(identifier, candidate string, maxAttempts int) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.store.Get(identifier)
	if !ok {
		return Result{Outcome: OutcomeNoRecord}
	}
	if rec.Verified {
		if rec.Code != candidate {
			return Result{
				Outcome:      OutcomeMismatch,
				AttemptsLeft: maxAttempts - rec.Attempts,
				UserID:       rec.UserID,
				Purpose:      rec.Purpose,
			}
		}
		return Result{Outcome: OutcomeVerified, UserID: rec.UserID, Purpose: rec.Purpose}
	}
	if rec.Attempts >= maxAttempts {
		return Result{Outcome: OutcomeMaxAttemptsExceeded, UserID: rec.UserID, Purpose: rec.Purpose}
	}
	if rec.ExpiredAt(m.now()) {
		return Result{Outcome: OutcomeExpired, UserID: rec.UserID, Purpose: rec.Purpose}
	}

	rec.Attempts++
	if rec.Code != candidate {
		log.Printf("[verification][check] mismatch identifier=%s attempts=%d/%d",
			utils.MaskIdentifier(identifier), rec.Attempts, maxAttempts)
		return Result{
			Outcome:      OutcomeMismatch,
			AttemptsLeft: maxAttempts - rec.Attempts,
			UserID:       rec.UserID,
			Purpose:      rec.Purpose,
		}
	}

	rec.Verified = true
	log.Printf("[verification][check] verified identifier=%s", utils.MaskIdentifier(identifier))
	return Result{Outcome: OutcomeVerified, UserID: rec.UserID, Purpose: rec.Purpose}
}

// RateLimitOK reports whether a new code may be issued: true when no record
// exists or the cooldown has elapsed since the last issue.
func (m *Manager) RateLimitOK(identifier string, cooldown time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.store.Get(identifier)
	if !ok {
		return true
	}
	return m.now().Sub(rec.CreatedAt) >= cooldown
}

func (m *Manager) Delete(identifier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Delete(identifier)
}

// Sweep drops expired records. Advisory cleanup only: expiry is always checked
// lazily in Check, so correctness does not depend on the sweep running.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.PurgeExpired(m.now())
}

// StartSweeper runs Sweep on a ticker until ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					log.Printf("[verification][sweep] purged %d expired records", n)
				}
			}
		}
	}()
}
