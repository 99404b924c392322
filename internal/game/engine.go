// internal/game/engine.go
//
// Core transition function for a single number-duel session.
// Responsibilities:
//   - Drive the four-state lifecycle: newGame → waitingForSecondPlayer →
//     playing → over.
//   - Enforce turn order: the second player to introduce moves first, and
//     the turn alternates only on accepted in-turn guesses.
//   - Evaluate guesses against the secret and compute higher/lower hints.
//   - Keep the terminal state absorbing: once won, every request replays
//     the same GameOver.
//
// Notes:
//   - Transition is pure: it takes the current (state, data) pair by value
//     and returns the next pair plus the ordered responses for the sender.
//     Callers (Session) own serialization and state replacement.
//   - Guess values and player names are deliberately unvalidated: any
//     integer is compared against the secret, and duplicate names are
//     accepted (turn identity is positional, see below).

package game

// Transition applies one request to a session and returns the next state,
// the next session record, and the ordered responses for the requester.
func Transition(st State, d Data, req Request) (State, Data, []Response) {
	switch st {
	case StateNewGame:
		switch r := req.(type) {
		case Introduce:
			d.Players = appendPlayer(d.Players, r.PlayerName)
			return StateWaitingForSecondPlayer, d, []Response{
				NotReady{ID: d.ID, StillWaitingForPlayers: 1},
			}
		case Guess:
			return st, d, []Response{NotReady{ID: d.ID, StillWaitingForPlayers: 2}}
		}

	case StateWaitingForSecondPlayer:
		switch r := req.(type) {
		case Introduce:
			d.Players = appendPlayer(d.Players, r.PlayerName)
			// The second player to arrive takes the first turn.
			d.Current = 1
			return StatePlaying, d, []Response{
				Ready{ID: d.ID},
				YourTurn{ID: d.ID, PlayerName: r.PlayerName},
			}
		case Guess:
			return st, d, []Response{NotReady{ID: d.ID, StillWaitingForPlayers: 1}}
		}

	case StatePlaying:
		switch r := req.(type) {
		case Introduce:
			return st, d, []Response{GameInProgress{ID: d.ID}}
		case Guess:
			// Turn identity is positional: the requester's name is checked
			// against the seat whose turn it is. Two players sharing a name
			// therefore both pass this check; name uniqueness is not enforced.
			if r.PlayerName != d.Players[d.Current] {
				return st, d, []Response{
					NotYourTurn{ID: d.ID, OtherPlayerName: d.Players[d.Current]},
				}
			}
			d.GuessCount++
			if r.Value == d.Secret {
				d.Winner = r.PlayerName
				return StateOver, d, []Response{Won{
					ID:                d.ID,
					WinningPlayerName: r.PlayerName,
					WinningValue:      r.Value,
					GuessCount:        d.GuessCount,
				}}
			}
			d.Current = (d.Current + 1) % 2
			return st, d, []Response{NopeTryAgain{
				ID:             d.ID,
				NextPlayerName: d.Players[d.Current],
				IncorrectValue: r.Value,
				Hint:           hintFor(r.Value, d.Secret),
			}}
		}

	case StateOver:
		// Absorbing: any request, of any shape, replays the same outcome.
		return st, d, []Response{GameOver{
			ID:                d.ID,
			WinningPlayerName: d.Winner,
			WinningValue:      d.Secret,
			GuessCount:        d.GuessCount,
		}}
	}
	return st, d, nil
}

// hintFor computes the directional hint for an incorrect guess.
// Never called with guess == secret.
func hintFor(guess, secret int) Hint {
	if guess > secret {
		return HintLower
	}
	return HintHigher
}

// appendPlayer returns a fresh slice so the caller's Data stays untouched.
func appendPlayer(players []string, name string) []string {
	out := make([]string, 0, 2)
	out = append(out, players...)
	return append(out, name)
}
