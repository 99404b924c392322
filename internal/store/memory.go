// internal/store/memory.go
//
// In-memory registry of live game sessions.
// This is the collaborator that owns session lifecycles: it allocates
// id + secret on Create, hands out handles on Get, and releases on Stop.
//
// Characteristics:
//   - Stores *game.Session handles keyed by id in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Live state is lost when the process restarts; only finished matches
//     are persisted, elsewhere.
//   - A session the registry never hears about again simply stays parked;
//     there is no expiry or self-termination.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/numduel/internal/game"
)

// ErrNotFound is returned by Get and Stop for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Registry holds every live session plus the injected id and secret sources.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]*game.Session

	alloc   game.Allocator
	secrets game.SecretSource
}

// NewRegistry constructs an empty registry using the given allocator and
// secret source for all future sessions.
func NewRegistry(alloc game.Allocator, secrets game.SecretSource) *Registry {
	return &Registry{
		sessions: make(map[int64]*game.Session),
		alloc:    alloc,
		secrets:  secrets,
	}
}

// Create allocates a new session (id + secret) in its initial state and
// registers it. secretOverride pins the secret when non-zero; pass 0 for
// a random draw (the override exists for tests and scripted matches).
func (r *Registry) Create(ctx context.Context, secretOverride int) (*game.Session, error) {
	secrets := r.secrets
	if secretOverride != 0 {
		secrets = game.Fixed(secretOverride)
	}
	s, err := game.New(r.alloc, secrets)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
	return s, nil
}

// Get looks up a live session by id.
func (r *Registry) Get(ctx context.Context, id int64) (*game.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Stop releases a session. There is no teardown protocol: the handle is
// dropped and any outstanding references simply stop being routable here.
func (r *Registry) Stop(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
