package authstate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"playlist-api-go/logcolors"

	log "github.com/sirupsen/logrus"
)

// Store holds one-time OAuth state values. Each value is issued for a
// single login attempt and invalidated on first consume, so a replayed
// callback fails the state check.
type Store struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
	done    chan struct{}
}

// NewStore creates a state store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go s.cleanupRoutine()

	return s
}

// Close stops the background cleanup routine. The store itself remains
// usable; expired entries are still rejected on consume.
func (s *Store) Close() {
	close(s.done)
}

// Issue generates a new random state value and registers it.
func (s *Store) Issue() (string, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random state: %w", err)
	}

	state := hex.EncodeToString(randomBytes)

	s.mu.Lock()
	s.entries[state] = time.Now().Add(s.ttl)
	s.mu.Unlock()

	log.Debugf("%s Issued state %s...", logcolors.LogState, state[:8])
	return state, nil
}

// Consume validates a state value and removes it. Returns false for
// unknown, expired, or already-consumed values.
func (s *Store) Consume(state string) bool {
	if state == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, exists := s.entries[state]
	if !exists {
		return false
	}

	// Single use: remove regardless of expiry
	delete(s.entries, state)

	if time.Now().After(expiresAt) {
		log.Debugf("%s State %s... expired", logcolors.LogState, state[:8])
		return false
	}

	return true
}

// Len reports the number of outstanding state values.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.done:
			return
		}
	}
}

func (s *Store) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cleaned := 0
	for state, expiresAt := range s.entries {
		if now.After(expiresAt) {
			delete(s.entries, state)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Debugf("%s Cleaned up %d expired state value(s)", logcolors.LogState, cleaned)
	}
}
