// Package server is the websocket relay that carries redacted field
// snapshots between the two clients of a duel.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/duelverse/duelfield/internal/card"
)

// client is one connected seat of a duel room.
type client struct {
	conn *websocket.Conn
	seat int
}

// room pairs the two clients of a duel. Messages from one seat are
// relayed verbatim to the other; the relay never inspects or stores
// snapshot contents.
type room struct {
	mu    sync.Mutex
	seats [2]*client
}

func (r *room) join(c *client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.seat < 0 || c.seat > 1 || r.seats[c.seat] != nil {
		return false
	}
	r.seats[c.seat] = c
	return true
}

func (r *room) leave(seat int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seats[seat] = nil
}

func (r *room) peer(seat int) *client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats[1-seat]
}

func (r *room) empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats[0] == nil && r.seats[1] == nil
}

// Server relays duel traffic and serves the card library.
type Server struct {
	lib *card.Library
	mux *http.ServeMux

	mu    sync.Mutex
	rooms map[string]*room
}

// NewServer builds the relay around a loaded card library.
func NewServer(lib *card.Library) *Server {
	s := &Server{
		lib:   lib,
		mux:   http.NewServeMux(),
		rooms: make(map[string]*room),
	}
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /duel", s.handleDuel)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCards(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.lib.Cards)
}

func (s *Server) roomFor(duelID string) *room {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[duelID]
	if !ok {
		r = &room{}
		s.rooms[duelID] = r
	}
	return r
}

func (s *Server) dropIfEmpty(duelID string, r *room) {
	if !r.empty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[duelID] == r && r.empty() {
		delete(s.rooms, duelID)
	}
}

func (s *Server) handleDuel(w http.ResponseWriter, r *http.Request) {
	duelID := r.URL.Query().Get("duel")
	seat, err := strconv.Atoi(r.URL.Query().Get("seat"))
	if duelID == "" || err != nil || seat < 0 || seat > 1 {
		http.Error(w, "duel and seat (0 or 1) query parameters required", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // clients connect from arbitrary origins
	})
	if err != nil {
		logrus.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	rm := s.roomFor(duelID)
	c := &client{conn: conn, seat: seat}
	if !rm.join(c) {
		conn.Close(websocket.StatusPolicyViolation, "seat taken")
		return
	}
	defer func() {
		rm.leave(seat)
		s.dropIfEmpty(duelID, rm)
	}()

	slog := logrus.WithFields(logrus.Fields{"duel_id": duelID, "seat": seat})
	slog.Info("client joined")
	defer slog.Info("client left")

	ctx := r.Context()
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		peer := rm.peer(seat)
		if peer == nil {
			continue
		}
		// Fire and forget: a failed relay drops the message and the
		// sender's next snapshot heals the peer's view.
		if err := peer.conn.Write(ctx, typ, data); err != nil {
			slog.WithError(err).Debug("relay write failed")
		}
	}
}

// ListenAndServe runs the relay until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, s *Server) error {
	srv := &http.Server{Addr: addr, Handler: s}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	logrus.WithField("addr", addr).Info("relay listening")
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
