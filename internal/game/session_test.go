package game

import (
	"errors"
	"sync"
	"testing"
)

// stubAlloc hands out fixed ids for deterministic tests.
type stubAlloc struct{ next int64 }

func (a *stubAlloc) NextID() int64 {
	a.next++
	return a.next
}

// failingSecrets simulates an exhausted random source.
type failingSecrets struct{}

func (failingSecrets) Generate() (int, error) { return 0, errors.New("entropy unavailable") }

func TestNewSession(t *testing.T) {
	s, err := New(&stubAlloc{}, Fixed(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.ID() != 1 {
		t.Fatalf("id = %d, want 1", s.ID())
	}
	if s.State() != StateNewGame {
		t.Fatalf("state = %v, want newGame", s.State())
	}
	if got := s.Snapshot().Secret; got != 5 {
		t.Fatalf("secret = %d, want 5", got)
	}
}

func TestNewSessionSecretFailure(t *testing.T) {
	s, err := New(&stubAlloc{}, failingSecrets{})
	if err == nil {
		t.Fatal("New: want error when the secret source fails")
	}
	if s != nil {
		t.Fatal("New: no session must be produced on failure")
	}
}

func TestSendDrivesTransitions(t *testing.T) {
	s, err := New(&stubAlloc{}, Fixed(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Send(Introduce{PlayerName: "alice"})
	out := s.Send(Introduce{PlayerName: "bob"})
	if len(out) != 2 {
		t.Fatalf("got %d responses, want Ready+YourTurn", len(out))
	}
	if s.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", s.State())
	}
	out = s.Send(Guess{PlayerName: "bob", Value: 5})
	won, ok := out[0].(Won)
	if !ok {
		t.Fatalf("response = %#v, want Won", out[0])
	}
	if won.GuessCount != 1 {
		t.Fatalf("guessCount = %d, want 1", won.GuessCount)
	}
	if s.State() != StateOver {
		t.Fatalf("state = %v, want over", s.State())
	}
}

// Two players hammer a session concurrently with wrong guesses. Send must
// process one request at a time: afterwards the accepted-guess count in the
// session equals the number of NopeTryAgain responses handed out, and no
// guess was lost or double counted.
func TestSendIsSerialized(t *testing.T) {
	s, err := New(&stubAlloc{}, Fixed(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Send(Introduce{PlayerName: "alice"})
	s.Send(Introduce{PlayerName: "bob"})

	const perPlayer = 200
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for _, name := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := 0; i < perPlayer; i++ {
				out := s.Send(Guess{PlayerName: name, Value: 99}) // never the secret
				mu.Lock()
				switch out[0].(type) {
				case NopeTryAgain:
					accepted++
				case NotYourTurn:
					rejected++
				default:
					t.Errorf("unexpected response %#v", out[0])
				}
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.GuessCount != accepted {
		t.Fatalf("guessCount = %d, want %d accepted guesses", snap.GuessCount, accepted)
	}
	if accepted+rejected != 2*perPlayer {
		t.Fatalf("accepted+rejected = %d, want %d", accepted+rejected, 2*perPlayer)
	}
	if s.State() != StatePlaying {
		t.Fatalf("state = %v, want still playing", s.State())
	}
}

func TestSnapshotDoesNotAliasPlayers(t *testing.T) {
	s, err := New(&stubAlloc{}, Fixed(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Send(Introduce{PlayerName: "alice"})
	s.Send(Introduce{PlayerName: "bob"})
	snap := s.Snapshot()
	snap.Players[0] = "mallory"
	if got := s.Snapshot().Players[0]; got != "alice" {
		t.Fatalf("players[0] = %q, snapshot must not alias live state", got)
	}
}
