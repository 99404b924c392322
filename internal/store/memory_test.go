package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/robalobadob/numduel/internal/game"
	"github.com/robalobadob/numduel/internal/idgen"
)

func newTestRegistry() *Registry {
	return NewRegistry(idgen.New(), game.CryptoSecrets{})
}

func TestCreateGetStop(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry()

	s, err := r.Create(ctx, 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.State() != game.StateNewGame {
		t.Fatalf("state = %v, want newGame", s.State())
	}

	got, err := r.Get(ctx, s.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != s {
		t.Fatal("Get returned a different handle")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	if err := r.Stop(ctx, s.ID()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, err := r.Get(ctx, s.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Stop: err = %v, want ErrNotFound", err)
	}
	if err := r.Stop(ctx, s.ID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Stop: err = %v, want ErrNotFound", err)
	}
}

func TestGetUnknown(t *testing.T) {
	r := newTestRegistry()
	if _, err := r.Get(context.Background(), 12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateWithSecretOverride(t *testing.T) {
	r := newTestRegistry()
	s, err := r.Create(context.Background(), 7)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := s.Snapshot().Secret; got != 7 {
		t.Fatalf("secret = %d, want pinned 7", got)
	}
}

// Concurrent creations get distinct ids and all end up registered.
func TestConcurrentCreate(t *testing.T) {
	const n = 100
	ctx := context.Background()
	r := newTestRegistry()

	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := r.Create(ctx, 0)
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			ids[i] = s.ID()
		}(i)
	}
	wg.Wait()

	if r.Len() != n {
		t.Fatalf("Len = %d, want %d", r.Len(), n)
	}
	seen := make(map[int64]bool, n)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate session id %d", id)
		}
		seen[id] = true
	}
}
