// internal/httpserver/server.go
//
// HTTP server wiring for the qalat backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (player token): /game/*, /letters/{glyph}/family.
//   - Daily endpoints (player token): /stats/me.
//   - Mapping of game errors to status codes and player-facing messages.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Every game request carries a player identity; a new one is issued on
//     first contact (see player.go).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/qalat/internal/game"
	"github.com/robalobadob/qalat/internal/play"
)

// WordStats reports dictionary sizes per word length.
type WordStats interface {
	Stats() map[int]int
}

// Options configures a Server.
type Options struct {
	TokenSecret  string
	TokenTTL     time.Duration
	ClientOrigin string
	Secure       bool // cross-site cookies (Secure + SameSite=None)
}

// Server bundles router, play service and token settings.
type Server struct {
	r      *chi.Mux
	svc    *play.Service
	words  WordStats
	tokens *tokens
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *play.Service, ws WordStats, opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 180 * 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:      chi.NewRouter(),
		svc:    svc,
		words:  ws,
		tokens: newTokens(opts.TokenSecret, opts.TokenTTL),
		opts:   opts,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "qalat",
			"endpoints": []string{
				"/health", "GET /game", "POST /game/length", "POST /game/letter",
				"POST /game/backspace", "POST /game/submit", "POST /game/guess",
				"POST /game/reset", "GET /game/hint", "GET /game/share",
				"GET /letters/{glyph}/family", "GET /stats/me",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "date": s.svc.Today()})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.words.Stats())
	})

	// Letter families need no player.
	s.r.Get("/letters/{glyph}/family", s.handleFamily)

	// Game + daily endpoints, identified by the player token.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withPlayer)
		s.mountGame(r)
		s.mountDaily(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

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

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
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
}

// accessLog writes method, path, status and duration through the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ responses -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON shape of every failed game request.
type errorBody struct {
	Error   string     `json:"error"`
	Message string     `json:"message"`
	Game    *play.View `json:"game,omitempty"`
}

// statusFor maps the error taxonomy onto HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, play.ErrBadGlyph):
		return http.StatusBadRequest, "bad_glyph"
	case errors.Is(err, game.ErrInvalidLength):
		return http.StatusBadRequest, "invalid_length"
	case errors.Is(err, game.ErrUnknownWord):
		return http.StatusUnprocessableEntity, "unknown_word"
	case errors.Is(err, game.ErrAlreadyCompletedToday):
		return http.StatusConflict, "already_completed_today"
	case errors.Is(err, game.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, game.ErrResourceLoad):
		return http.StatusServiceUnavailable, "resource_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError renders err; view is included when the request got far enough
// to load the player's session.
func writeError(w http.ResponseWriter, r *http.Request, err error, view *play.View) {
	status, code := statusFor(err)
	ev := hlog.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Error()
	}
	ev.Err(err).Str("code", code).Msg("request failed")
	if view != nil && view.Status == "" {
		view = nil
	}
	writeJSON(w, status, errorBody{Error: code, Message: play.Message(err), Game: view})
}

func badJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
}
