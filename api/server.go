// Package api exposes a running game over HTTP: its state as JSON, input
// endpoints, and a websocket streaming every state change.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/battlesnakeio/classic/rules"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Game is the game the server drives, implemented by *worker.Worker.
type Game interface {
	Submit(ctx context.Context, token string) (bool, error)
	Snapshot() rules.Snapshot
	Subscribe() (<-chan rules.Snapshot, func())
}

// ReplayToken is submitted to the game for POST /replay.
const ReplayToken = "replay"

// Server is the API server.
type Server struct {
	hs      *http.Server
	game    Game
	limiter *rate.Limiter
}

// New creates a server listening on addr. Input is limited to limit requests
// per second with bursts of burst.
func New(addr string, game Game, limit rate.Limit, burst int) *Server {
	s := &Server{
		game:    game,
		limiter: rate.NewLimiter(limit, burst),
	}

	router := httprouter.New()
	router.GET("/state", s.state)
	router.POST("/direction/:dir", s.direction)
	router.POST("/replay", s.replay)
	router.GET("/socket", s.socket)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)

	s.hs = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// WaitForExit serves until Shutdown is called or listening fails.
func (s *Server) WaitForExit() error {
	log.WithField("listen", s.hs.Addr).Info("snake api listening")
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting for open requests up to ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

type inputResponse struct {
	Accepted bool           `json:"accepted"`
	State    rules.Snapshot `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) state(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) direction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dir := ps.ByName("dir")
	if _, ok := rules.ParseMove(dir); !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown direction " + dir})
		return
	}
	s.submit(w, r, dir)
}

func (s *Server) replay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.submit(w, r, ReplayToken)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request, token string) {
	if !s.limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}
	ok, err := s.game.Submit(r.Context(), token)
	if err != nil {
		log.WithError(err).WithField("token", token).Warn("unable to submit input")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, inputResponse{Accepted: ok, State: s.game.Snapshot()})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}
