// internal/httpserver/routes_game.go
//
// HTTP routes for a player's round:
//   - GET  /game            → current session (resumes today's saved game)
//   - POST /game/length     → {"length": n} start a round
//   - POST /game/letter     → {"glyph": "ሀ"} type one glyph
//   - POST /game/backspace  → remove the last glyph
//   - POST /game/submit     → score the guess in progress
//   - POST /game/guess      → {"word": "..."} type and submit a whole word
//   - POST /game/reset      → back to length selection
//   - GET  /game/hint       → hint for the target
//   - GET  /game/share      → emoji result grid
//
// The target word is only included once the round is over.

package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/qalat/internal/game"
	"github.com/robalobadob/qalat/internal/play"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleCurrent)
		r.Post("/length", s.handleLength)
		r.Post("/letter", s.handleLetter)
		r.Post("/backspace", s.handleBackspace)
		r.Post("/submit", s.handleSubmit)
		r.Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
		r.Get("/hint", s.handleHint)
		r.Get("/share", s.handleShare)
	})
}

// submitRes is returned by /game/submit and /game/guess.
type submitRes struct {
	Game  play.View   `json:"game"`
	Row   int         `json:"row"`
	Marks []game.Mark `json:"marks"`
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Current(r.Context(), playerID(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type lengthReq struct {
	Length int `json:"length"`
}

func (s *Server) handleLength(w http.ResponseWriter, r *http.Request) {
	var req lengthReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	v, err := s.svc.SelectLength(r.Context(), playerID(r), req.Length)
	if err != nil {
		writeError(w, r, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type letterReq struct {
	Glyph string `json:"glyph"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	v, err := s.svc.TypeLetter(r.Context(), playerID(r), req.Glyph)
	if err != nil {
		writeError(w, r, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Backspace(r.Context(), playerID(r))
	if err != nil {
		writeError(w, r, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	v, out, err := s.svc.Submit(r.Context(), playerID(r))
	if err != nil {
		writeError(w, r, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, submitRes{Game: v, Row: out.Row, Marks: out.Marks})
}

type guessReq struct {
	Word string `json:"word"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	v, out, err := s.svc.Guess(r.Context(), playerID(r), req.Word)
	if err != nil {
		writeError(w, r, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, submitRes{Game: v, Row: out.Row, Marks: out.Marks})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Reset(r.Context(), playerID(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	hint, err := s.svc.Hint(r.Context(), playerID(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"hint": hint})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	text, err := s.svc.Share(r.Context(), playerID(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// handleFamily lists the glyphs sharing the requested glyph's consonant root.
func (s *Server) handleFamily(w http.ResponseWriter, r *http.Request) {
	glyph, err := url.PathUnescape(chi.URLParam(r, "glyph"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_glyph"})
		return
	}
	fam := s.svc.Family(glyph)
	if fam == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no_family", "glyph": glyph})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"glyph": glyph, "family": fam})
}
