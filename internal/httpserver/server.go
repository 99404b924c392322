// internal/httpserver/server.go
//
// HTTP host for the number-duel engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Session endpoints: POST /session/new, /session/introduce,
//     /session/guess, /session/stop.
//   - Match history: GET /matches/recent (finished games only).
//   - JSON transport encoding of the engine's Request/Response vocabulary.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Responses are returned only to the HTTP caller that triggered them;
//     the engine's unicast contract holds end to end. A player waiting for
//     their turn polls with another request of their own.
//   - Finished matches are persisted best-effort: a failed insert is logged
//     and the gameplay response still goes out.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numduel/internal/game"
	"github.com/robalobadob/numduel/internal/history"
	"github.com/robalobadob/numduel/internal/store"
)

// Server bundles router, session registry, and match history store.
type Server struct {
	r        *chi.Mux
	registry *store.Registry
	matches  *history.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(reg *store.Registry, matches *history.Store) *Server {
	s := &Server{r: chi.NewRouter(), registry: reg, matches: matches}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"numduel-go","endpoints":["/health","POST /session/new","POST /session/introduce","POST /session/guess","POST /session/stop","/matches/recent"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Session lifecycle + gameplay
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Post("/session/introduce", s.handleIntroduce)
	s.r.Post("/session/guess", s.handleGuess)
	s.r.Post("/session/stop", s.handleStop)

	// Finished matches
	s.r.Get("/matches/recent", s.handleRecentMatches)

	// Debug: live session count
	s.r.Get("/debug/sessions", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"active": reg.Len()})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---------------------------- wire encoding --------------------------------

// responseBody is the flat JSON shape for every engine response. The type
// tag discriminates; unused fields are omitted.
type responseBody struct {
	Type                   string    `json:"type"`
	SessionID              int64     `json:"sessionId"`
	StillWaitingForPlayers int       `json:"stillWaitingForPlayers,omitempty"`
	PlayerName             string    `json:"playerName,omitempty"`
	OtherPlayerName        string    `json:"otherPlayerName,omitempty"`
	NextPlayerName         string    `json:"nextPlayerName,omitempty"`
	WinningPlayerName      string    `json:"winningPlayerName,omitempty"`
	WinningValue           int       `json:"winningValue,omitempty"`
	IncorrectValue         int       `json:"incorrectValue,omitempty"`
	GuessCount             int       `json:"guessCount,omitempty"`
	Hint                   game.Hint `json:"hint,omitempty"`
}

// encodeResponses maps engine responses to their wire shape, in order.
func encodeResponses(rs []game.Response) []responseBody {
	out := make([]responseBody, 0, len(rs))
	for _, r := range rs {
		out = append(out, encodeResponse(r))
	}
	return out
}

func encodeResponse(r game.Response) responseBody {
	switch v := r.(type) {
	case game.NotReady:
		return responseBody{Type: "notReady", SessionID: v.ID, StillWaitingForPlayers: v.StillWaitingForPlayers}
	case game.Ready:
		return responseBody{Type: "ready", SessionID: v.ID}
	case game.YourTurn:
		return responseBody{Type: "yourTurn", SessionID: v.ID, PlayerName: v.PlayerName}
	case game.NotYourTurn:
		return responseBody{Type: "notYourTurn", SessionID: v.ID, OtherPlayerName: v.OtherPlayerName}
	case game.GameInProgress:
		return responseBody{Type: "gameInProgress", SessionID: v.ID}
	case game.Won:
		return responseBody{Type: "won", SessionID: v.ID, WinningPlayerName: v.WinningPlayerName, WinningValue: v.WinningValue, GuessCount: v.GuessCount}
	case game.NopeTryAgain:
		return responseBody{Type: "nopeTryAgain", SessionID: v.ID, NextPlayerName: v.NextPlayerName, IncorrectValue: v.IncorrectValue, Hint: v.Hint}
	case game.GameOver:
		return responseBody{Type: "gameOver", SessionID: v.ID, WinningPlayerName: v.WinningPlayerName, WinningValue: v.WinningValue, GuessCount: v.GuessCount}
	case game.Lose:
		return responseBody{Type: "lose", SessionID: v.ID}
	}
	return responseBody{Type: "unknown"}
}

// ------------------------------ SESSION ------------------------------------

// newSessionReq/Res payloads for POST /session/new.
type newSessionReq struct {
	Secret int `json:"secret"` // optional fixed secret (testing); 0 = random
}
type newSessionRes struct {
	SessionID int64  `json:"sessionId"`
	State     string `json:"state"`
}

// handleNewSession creates and registers a fresh session.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess, err := s.registry.Create(r.Context(), req.Secret)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: sess.ID(), State: sess.State().String()})
}

// introduceReq payload for POST /session/introduce.
type introduceReq struct {
	SessionID  int64  `json:"sessionId"`
	PlayerName string `json:"playerName"`
}

func (s *Server) handleIntroduce(w http.ResponseWriter, r *http.Request) {
	var req introduceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.dispatch(w, r, req.SessionID, game.Introduce{PlayerName: req.PlayerName})
}

// guessReq payload for POST /session/guess.
type guessReq struct {
	SessionID  int64  `json:"sessionId"`
	PlayerName string `json:"playerName"`
	Value      int    `json:"value"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.dispatch(w, r, req.SessionID, game.Guess{PlayerName: req.PlayerName, Value: req.Value})
}

// dispatch routes one engine request to its session and writes the ordered
// responses back to this caller only.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, id int64, req game.Request) {
	sess, err := s.registry.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	out := sess.Send(req)

	// Persist the finished match (best effort, non-fatal if it fails).
	for _, res := range out {
		if won, ok := res.(game.Won); ok {
			m := history.Match{
				SessionID:  won.ID,
				Winner:     won.WinningPlayerName,
				Value:      won.WinningValue,
				Guesses:    won.GuessCount,
				FinishedAt: time.Now().UTC().Format(time.RFC3339),
			}
			if err := s.matches.Record(r.Context(), m); err != nil {
				log.Warn().Err(err).Int64("sessionId", won.ID).Msg("record match")
			}
		}
	}

	_ = json.NewEncoder(w).Encode(encodeResponses(out))
}

// stopReq payload for POST /session/stop.
type stopReq struct {
	SessionID int64 `json:"sessionId"`
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	var req stopReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.registry.Stop(r.Context(), req.SessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"stop_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ------------------------------ MATCHES ------------------------------------

// handleRecentMatches lists the latest finished games.
func (s *Server) handleRecentMatches(w http.ResponseWriter, r *http.Request) {
	rows, err := s.matches.Recent(r.Context(), 50)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []history.Match{}
	}
	_ = json.NewEncoder(w).Encode(rows)
}
