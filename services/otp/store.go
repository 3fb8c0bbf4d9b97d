package otp

import (
	"context"
	"sync"
	"time"
)

// Record is a pending one-time code for a single email. At most one live
// record exists per email; reissuing overwrites it.
type Record struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// IsExpired checks if the code has passed its validity window.
func (r *Record) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Store is a TTL-capable key-value store for OTP records keyed by email.
// A single-instance deployment uses MemoryStore; a multi-instance
// deployment needs a shared store such as RedisStore.
type Store interface {
	// Get returns the live record for the email, or nil if none exists.
	Get(ctx context.Context, email string) (*Record, error)
	// Put stores the record, overwriting any existing one, with the given TTL.
	Put(ctx context.Context, email string, rec Record, ttl time.Duration) error
	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, email string) error
}

// MemoryStore is the process-local Store. Access is serialized with a mutex
// so concurrent verification attempts for one email cannot race the attempt
// counter.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	rec       Record
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]memoryRecord),
	}
}

func (s *MemoryStore) Get(_ context.Context, email string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.records[email]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.records, email)
		return nil, nil
	}

	rec := entry.rec
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, email string, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[email] = memoryRecord{
		rec:       rec,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, email)
	return nil
}
