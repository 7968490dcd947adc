// Package shim exposes the player-state engine to a non-Go process (a
// Python or Rust binding) over JSON-over-WebSocket: a connection
// authenticates once, is bound to one seat, and from then on sends one
// mjai event per message and reads back the ActionCandidate JSON that
// event produced. This is the "language binding shim" spec.md §1
// leaves undetailed beyond "consumes update/candidates/snapshot from
// the core".
package shim

import (
	"net/http"
	"sync"

	"riichiengine/agari"
	"riichiengine/internal/rlog"
	"riichiengine/state"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    4096,
	WriteBufferSize:   4096,
	EnableCompression: true,
}

// Server accepts WebSocket connections at /ws and hands each one off
// to its own Session. It also tracks the one live session per seat so
// shim/debugsrv can dump a seat's state over HTTP without its own copy
// of the engine.
type Server struct {
	secret string
	rules  agari.RuleSet

	mu       sync.RWMutex
	sessions map[int]*Session
}

// NewServer returns a Server that verifies connections against secret
// and scores wins under rules.
func NewServer(secret string, rules agari.RuleSet) *Server {
	return &Server{secret: secret, rules: rules, sessions: make(map[int]*Session)}
}

// State returns the live PlayerState tracking seat, if a session for
// it is currently connected.
func (srv *Server) State(seat int) (*state.PlayerState, bool) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()
	s, ok := srv.sessions[seat]
	if !ok {
		return nil, false
	}
	return s.State, true
}

func (srv *Server) track(s *Session) {
	srv.mu.Lock()
	srv.sessions[s.Seat] = s
	srv.mu.Unlock()
}

func (srv *Server) untrack(s *Session) {
	srv.mu.Lock()
	if srv.sessions[s.Seat] == s {
		delete(srv.sessions, s.Seat)
	}
	srv.mu.Unlock()
}

// Run serves the WebSocket endpoint on addr until the process exits or
// ListenAndServe returns an error.
func (srv *Server) Run(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.upgrade)
	rlog.Info("shim websocket listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (srv *Server) upgrade(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	seat, err := ParseToken(token, srv.secret)
	if err != nil {
		rlog.Warn("shim: auth rejected from %s: %v", r.RemoteAddr, err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		rlog.Error("shim: upgrade failed: %v", err)
		return
	}

	s := newSession(seat, srv.rules, conn)
	srv.track(s)
	defer srv.untrack(s)

	rlog.Info("shim[%s]: session opened, seat=%d remote=%s", s.ID, seat, r.RemoteAddr)
	s.run()
}
