// internal/game/session.go
//
// Session handle around the pure transition function.
// A Session owns one (state, data) pair; Send applies exactly one request
// at a time under a mutex, which gives each session the serialized-mailbox
// discipline: a request's state mutation and response emission complete
// before the next request is accepted. Sessions are otherwise independent.

package game

import (
	"fmt"
	"sync"
)

// Allocator issues session identifiers. Implementations must be safe for
// unbounded concurrent use; internal/idgen provides the production one.
type Allocator interface {
	NextID() int64
}

// Session is one live number-duel session.
type Session struct {
	mu   sync.Mutex // serializes Send; guards st and data
	st   State
	data Data
}

// New constructs a session in StateNewGame with a freshly allocated id and
// a secret drawn from secrets. Construction either succeeds fully or
// returns an error with no session produced.
func New(alloc Allocator, secrets SecretSource) (*Session, error) {
	secret, err := secrets.Generate()
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return &Session{
		st:   StateNewGame,
		data: Data{ID: alloc.NextID(), Secret: secret},
	}, nil
}

// Send applies one request and returns the ordered responses for the
// caller only. Requests from a single caller are processed in the order
// sent; across callers, arrival order at the mutex decides.
func (s *Session) Send(req Request) []Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, d, out := Transition(s.st, s.data, req)
	s.st, s.data = st, d
	return out
}

// ID returns the session's immutable identifier.
func (s *Session) ID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ID
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Snapshot returns a copy of the session record. The Players slice is
// copied so the snapshot cannot alias live state.
func (s *Session) Snapshot() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data
	d.Players = append([]string(nil), s.data.Players...)
	return d
}
