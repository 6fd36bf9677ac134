// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily lock.
//   - GET /stats/me → today's date, which lengths are already finished today,
//     and per-length totals of finished rounds and wins.
//
// Each player can finish each word length once per calendar day; the lock
// itself lives in the daily package and is enforced by the game engine.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/qalat/internal/daily"
)

// mountDaily registers the daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/stats/me", s.handleStats)
}

// statsRes is returned by /stats/me.
type statsRes struct {
	Player    string       `json:"player"`
	Date      string       `json:"date"`
	Completed map[int]bool `json:"completedToday"`
	Lengths   []daily.Stat `json:"lengths"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	player := playerID(r)
	done, err := s.svc.CompletedToday(r.Context(), player)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	stats, err := s.svc.Stats(r.Context(), player)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, statsRes{
		Player:    player,
		Date:      s.svc.Today(),
		Completed: done,
		Lengths:   stats,
	})
}
