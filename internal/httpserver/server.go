// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the mini-games backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", game catalog, leaderboards.
//   - Play endpoints: launch, snapshot, select, finish, results QR, live
//     websocket stream. Everything under /play/{id} needs the play token.
//   - Reap plays that saw no input for longer than the play timeout.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the token cookie works).
//   - Websocket routes skip the handler timeout; they live as long as the
//     client stays connected.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/minigames/apps/go-server/internal/catalog"
	"github.com/robalobadob/minigames/apps/go-server/internal/play"
	"github.com/robalobadob/minigames/apps/go-server/internal/results"
	"github.com/robalobadob/minigames/apps/go-server/internal/store"
	"github.com/robalobadob/minigames/apps/go-server/internal/words"
)

// Options tune the server. Zero values take the defaults below.
type Options struct {
	Secret         []byte
	TokenTTL       time.Duration
	Frame          time.Duration
	PlayTimeout    time.Duration
	CallbackURL    string
	ClientOrigin   string
	HandlerTimeout time.Duration
}

const (
	DefaultTokenTTL       = 2 * time.Hour
	DefaultPlayTimeout    = 10 * time.Minute
	DefaultClientOrigin   = "http://localhost:5173"
	DefaultHandlerTimeout = 10 * time.Second
	devSecret             = "dev_secret_change_me"
)

func (o Options) withDefaults() Options {
	if len(o.Secret) == 0 {
		o.Secret = []byte(devSecret)
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = DefaultTokenTTL
	}
	if o.Frame <= 0 {
		o.Frame = play.DefaultFrame
	}
	if o.PlayTimeout <= 0 {
		o.PlayTimeout = DefaultPlayTimeout
	}
	if o.ClientOrigin == "" {
		o.ClientOrigin = DefaultClientOrigin
	}
	if o.HandlerTimeout <= 0 {
		o.HandlerTimeout = DefaultHandlerTimeout
	}
	return o
}

// Server bundles the router, the game catalog, running plays and the
// results store.
type Server struct {
	r       *chi.Mux
	opts    Options
	catalog *catalog.Catalog
	plays   store.Store
	results *results.Store

	// runners live until Close, independent of request contexts.
	runCtx    context.Context
	runCancel context.CancelFunc
}

// New constructs a Server, installs middleware, and registers routes.
// res may be nil, in which case results are not persisted.
func New(opts Options, cat *catalog.Catalog, plays store.Store, res *results.Store) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		r:         chi.NewRouter(),
		opts:      opts.withDefaults(),
		catalog:   cat,
		plays:     plays,
		results:   res,
		runCtx:    ctx,
		runCancel: cancel,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(cors(s.opts.ClientOrigin))

	// Websocket first: no handler timeout.
	s.r.With(s.requirePlay).Get("/play/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(s.opts.HandlerTimeout))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"minigames-go","endpoints":["/health","/games","/play/launch","/play/{id}","/leaderboard/{gameId}"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "plays": s.plays.Len()})
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, c := words.Stats()
			_ = json.NewEncoder(w).Encode(map[string]int{"anagram": a, "colors": c})
		})

		s.mountGames(r)
		s.mountPlay(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// Reap removes idle plays every half play timeout until ctx is done.
func (s *Server) Reap(ctx context.Context) {
	t := time.NewTicker(s.opts.PlayTimeout / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.reapOnce(time.Now().Add(-s.opts.PlayTimeout))
		}
	}
}

// reapOnce stops and forgets every play idle since cutoff.
func (s *Server) reapOnce(cutoff time.Time) int {
	n := 0
	for _, p := range s.plays.Idle(cutoff) {
		if _, err := s.plays.Delete(context.Background(), p.ID); err != nil {
			continue
		}
		p.Stop()
		n++
	}
	if n > 0 {
		log.Info().Int("reaped", n).Int("remaining", s.plays.Len()).Msg("idle plays reaped")
	}
	return n
}

// Close stops every running play.
func (s *Server) Close() {
	s.runCancel()
	n := s.reapOnce(time.Now().Add(time.Hour))
	log.Debug().Int("stopped", n).Msg("plays stopped")
}
