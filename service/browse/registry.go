package browse

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDebounce matches the original search input debounce interval.
const DefaultDebounce = 300 * time.Millisecond

var ErrSessionNotFound = errors.New("browse session not found")

// Registry owns the live browse sessions, keyed by opaque ID. Idle sessions
// are swept periodically; browse state is ephemeral and cheap to rebuild.
type Registry struct {
	cat      Catalog
	debounce time.Duration
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(cat Catalog, debounce, ttl time.Duration) *Registry {
	r := &Registry{
		cat:      cat,
		debounce: debounce,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
	go r.sweep()
	return r
}

// Open creates a fresh session over the full catalog.
func (r *Registry) Open() *Session {
	s := newSession(uuid.NewString(), r.cat, r.debounce)
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		r.mu.Lock()
		for id, s := range r.sessions {
			s.mu.Lock()
			idle := time.Since(s.lastUsed)
			s.mu.Unlock()
			if idle > r.ttl {
				delete(r.sessions, id)
			}
		}
		r.mu.Unlock()
	}
}
