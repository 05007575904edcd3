// internal/httpserver/routes_game.go
//
// Game endpoints.
//   - POST   /game/new     → start a session (optionally with the daily root word)
//   - GET    /game         → current state
//   - POST   /game/word    → submit a word; returns the verdict and new state
//   - POST   /game/restart → new root word, used words cleared, score kept
//                            (not for daily sessions: the word cannot change)
//   - DELETE /game         → end the session

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
)

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Daily bool `json:"daily"` // use the shared word of the day
}
type newGameRes struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	State     game.Snapshot `json:"state"`
}

// handleNewGame creates a session, stores it and hands out its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var src game.WordSource = s.pool
	if req.Daily {
		d, err := s.pool.Daily(s.cfg.DailySalt, s.now())
		if err != nil {
			log.Error().Err(err).Msg("daily word")
			writeError(w, http.StatusServiceUnavailable, "cannot_start")
			return
		}
		src = d
	}

	g, err := game.New(src, s.dict, s.cfg.Language)
	if err != nil {
		log.Error().Err(err).Msg("start game")
		writeError(w, http.StatusServiceUnavailable, "cannot_start")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.issueToken(w, g.ID, req.Daily)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Info().Str("session", g.ID).Str("root", g.Root()).Bool("daily", req.Daily).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{Token: tok, ExpiresAt: exp, State: g.Snapshot()})
}

// handleState returns the session snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), sessionID(r))
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.refreshToken(w, r)
	writeJSON(w, http.StatusOK, snap)
}

// wordReq/Res payloads for POST /game/word.
type wordReq struct {
	Word string `json:"word"`
}
type wordRes struct {
	Outcome game.Outcome  `json:"outcome"`
	State   game.Snapshot `json:"state"`
}

// handleWord submits one word. Rejections are ordinary 200 responses:
// they are part of play, not request errors.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var res wordRes
	err := s.store.Update(r.Context(), sessionID(r), func(g *game.Session) error {
		res.Outcome = g.Submit(req.Word)
		res.State = g.Snapshot()
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	log.Debug().
		Str("session", sessionID(r)).
		Str("status", string(res.Outcome.Status)).
		Str("reason", string(res.Outcome.Reason)).
		Int("score", res.Outcome.Score).
		Msg("word submitted")
	s.refreshToken(w, r)
	writeJSON(w, http.StatusOK, res)
}

// handleRestart draws a new root word, keeping the score.
// A daily session would redraw the same word with its used words cleared,
// letting them be scored again, so it is refused.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if c := claimsFrom(r); c != nil && c.Daily {
		writeError(w, http.StatusConflict, "daily_no_restart")
		return
	}
	var snap game.Snapshot
	err := s.store.Update(r.Context(), sessionID(r), func(g *game.Session) error {
		if err := g.NewGame(); err != nil {
			return err
		}
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.refreshToken(w, r)
	writeJSON(w, http.StatusOK, snap)
}

// handleEnd drops the session and clears its cookie.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), sessionID(r)); err != nil {
		s.storeError(w, err)
		return
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "session_not_found")
	case errors.Is(err, game.ErrCannotStart):
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusServiceUnavailable, "cannot_start")
	default:
		log.Error().Err(err).Msg("session store")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
