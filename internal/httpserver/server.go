// internal/httpserver/server.go
//
// HTTP server wiring for the guess engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints: POST /game/new (issues a session token),
//     POST /game/key, GET /game/board, POST /game/reset (token required).
//   - Per-game locking so keys of one game apply strictly in arrival order.
//     Locks are striped by a hash of the game ID, so their number is fixed.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Game state lives in a store.Store as engine snapshots; each request
//     restores the engine, applies one action and saves it back.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/wordle/apps/go-engine/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// Options configures a Server.
type Options struct {
	Cols         int
	Rows         int
	Secret       []byte        // HS256 key for session tokens
	TokenTTL     time.Duration // 0 means tokens do not expire
	DailySalt    string
	ClientOrigin string
	Words        *words.List
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer // served on /metrics; nil disables the route
	Now          func() time.Time
}

// lockStripes is the number of mutexes shared by all games.
const lockStripes = 256

// Server bundles router, session store and game options.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
	locks [lockStripes]sync.Mutex // indexed by xxhash(game ID)
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(corsFor(opts.ClientOrigin))      // credentials-friendly CORS

	// --- diagnostics ---
	if opts.Gatherer != nil {
		s.r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"wordle-engine","endpoints":["/health","/metrics","POST /game/new","POST /game/key","GET /game/board","POST /game/reset"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.Post("/game/new", s.handleNewGame)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Post("/game/key", s.handleKey)
			r.Get("/game/board", s.handleBoard)
			r.Post("/game/reset", s.handleReset)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router (used by the serve command and tests).
func (s *Server) Handler() http.Handler { return s.r }

// lock returns the mutex serialising actions on one game. Games that share
// a stripe also serialise against each other; a handler holds one at a time.
func (s *Server) lock(id string) *sync.Mutex {
	return &s.locks[xxhash.Sum64String(id)%lockStripes]
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
