// Package transient è una cache in memoria con scadenza per chiave. Le fetch
// duplicate in concorrenza sono tollerate perché l'upstream è idempotente,
// quindi basta un RWMutex senza lock di popolamento.
package transient

import (
	"sync"
	"time"
)

type entry struct {
	value   any
	expires time.Time
}

// Store cache chiave/valore con TTL.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewStore costruisce lo store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get restituisce il valore se presente e non scaduto. Una voce scaduta è un
// miss e viene rimossa.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.expires) {
		s.mu.Lock()
		// ricontrollo: un Set concorrente può aver rinnovato la voce
		if cur, ok := s.entries[key]; ok && s.now().After(cur.expires) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set memorizza il valore con la durata indicata.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expires: s.now().Add(ttl)}
	s.mu.Unlock()
}

// Delete rimuove la voce.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}
