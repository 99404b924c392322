// internal/game/types.go
//
// Message vocabulary and state types for the number-duel engine.
// Defines:
//   - State: the four lifecycle states of a session.
//   - Request: actions a player can send (Introduce/Guess).
//   - Response: everything a session can say back, each tagged with the
//     session id so one caller can multiplex many sessions.
//   - Hint: directional signal for an incorrect guess.
//   - Data: the immutable per-session record threaded through Transition.

package game

// State identifies where a session is in its lifecycle.
type State int

const (
	// StateNewGame is the initial state: no players registered yet.
	StateNewGame State = iota
	// StateWaitingForSecondPlayer has exactly one registered player.
	StateWaitingForSecondPlayer
	// StatePlaying has both players; guesses are accepted in turn.
	StatePlaying
	// StateOver is terminal and absorbing: the secret was found.
	StateOver
)

// String reports a coarse wire-friendly name for the state.
func (s State) String() string {
	switch s {
	case StateNewGame:
		return "newGame"
	case StateWaitingForSecondPlayer:
		return "waitingForSecondPlayer"
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	}
	return "unknown"
}

// Hint tells a guesser where the secret lies relative to their guess.
// Possible values:
//   - "higher": the secret is greater than the guess.
//   - "lower":  the secret is less than the guess.
type Hint string

const (
	HintHigher Hint = "higher"
	HintLower  Hint = "lower"
)

// Request is one player action delivered to a session.
type Request interface{ isRequest() }

// Introduce registers a player under the given name.
type Introduce struct {
	PlayerName string
}

// Guess submits one value on behalf of the named player.
type Guess struct {
	PlayerName string
	Value      int
}

func (Introduce) isRequest() {}
func (Guess) isRequest()     {}

// Response is one message a session emits back to the sender of the
// triggering Request. Responses are unicast: the engine never pushes
// anything to the other player.
type Response interface{ isResponse() }

// NotReady: the game has not started; the count says how many players
// are still missing.
type NotReady struct {
	ID                     int64
	StillWaitingForPlayers int
}

// Ready: both players are registered and play can begin.
type Ready struct {
	ID int64
}

// YourTurn names the player whose guess will be accepted next.
type YourTurn struct {
	ID         int64
	PlayerName string
}

// NotYourTurn rejects an out-of-turn guess and names whose turn it is.
type NotYourTurn struct {
	ID              int64
	OtherPlayerName string
}

// GameInProgress rejects an Introduce once both seats are taken.
type GameInProgress struct {
	ID int64
}

// Won reports the winning guess to the player who made it.
type Won struct {
	ID                int64
	WinningPlayerName string
	WinningValue      int
	GuessCount        int
}

// NopeTryAgain reports an incorrect in-turn guess, the hint, and whose
// turn it is now.
type NopeTryAgain struct {
	ID             int64
	NextPlayerName string
	IncorrectValue int
	Hint           Hint
}

// GameOver is replayed verbatim for every request after the game is won.
type GameOver struct {
	ID                int64
	WinningPlayerName string
	WinningValue      int
	GuessCount        int
}

// Lose is part of the protocol vocabulary but no transition emits it:
// the non-winning player is never notified and must poll for GameOver.
type Lose struct {
	ID int64
}

func (NotReady) isResponse()       {}
func (Ready) isResponse()          {}
func (YourTurn) isResponse()       {}
func (NotYourTurn) isResponse()    {}
func (GameInProgress) isResponse() {}
func (Won) isResponse()            {}
func (NopeTryAgain) isResponse()   {}
func (GameOver) isResponse()       {}
func (Lose) isResponse()           {}

// Data holds the record for one number-duel session.
// Transition treats it as a value: it copies, never mutates in place.
type Data struct {
	ID         int64    // Unique session identifier, assigned once at creation.
	Secret     int      // The hidden number in [1, MaxSecretNumber], fixed at creation.
	Players    []string // Registered player names, in join order; at most two.
	Current    int      // Index into Players of whose turn is next; meaningful only with two players.
	GuessCount int      // Accepted in-turn guesses only.
	Winner     string   // Set exactly when the session reaches StateOver.
}
