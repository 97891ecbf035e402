package verification

import "time"

// Record is the live verification state for one identifier (email or phone).
// Exactly one record exists per identifier; a new issue overwrites the old one.
type Record struct {
	Code      string
	CreatedAt time.Time
	TTL       time.Duration
	Attempts  int
	Verified  bool
	UserID    string
	Purpose   string
}

func (r *Record) ExpiredAt(now time.Time) bool {
	return now.Sub(r.CreatedAt) >= r.TTL
}

// Store is the key-value backend for verification records. The default is the
// in-memory map below; a multi-process deployment can swap in a shared store.
// Implementations are not required to be safe for concurrent use — the Manager
// serializes access.
type Store interface {
	Get(identifier string) (*Record, bool)
	Put(identifier string, rec *Record)
	Delete(identifier string)
	// PurgeExpired removes records past their TTL and returns how many were
	// dropped.
	PurgeExpired(now time.Time) int
}

type memoryStore struct {
	records map[string]*Record
}

func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]*Record)}
}

func (s *memoryStore) Get(identifier string) (*Record, bool) {
	rec, ok := s.records[identifier]
	return rec, ok
}

func (s *memoryStore) Put(identifier string, rec *Record) {
	s.records[identifier] = rec
}

func (s *memoryStore) Delete(identifier string) {
	delete(s.records, identifier)
}

func (s *memoryStore) PurgeExpired(now time.Time) int {
	var purged int
	for id, rec := range s.records {
		if rec.ExpiredAt(now) {
			delete(s.records, id)
			purged++
		}
	}
	return purged
}
