// apps/go-server/internal/httpserver/routes_play.go
//
// HTTP routes for running plays.
//   - GET|POST /play/launch          → bootstrap a game from launch params, start its runner
//   - GET      /play/{id}            → current snapshot
//   - POST     /play/{id}/select     → apply a player pick
//   - POST     /play/{id}/finish     → stop, compute and persist results
//   - GET      /play/{id}/results/qr → PNG QR code of the results redirect URL
//   - GET      /play/{id}/ws         → live snapshot stream (see ws.go)
//
// Launch issues a play-scoped token; every /play/{id} route requires it.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"github.com/robalobadob/minigames/apps/go-server/internal/catalog"
	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/play"
	"github.com/robalobadob/minigames/apps/go-server/internal/results"
)

const qrSize = 320

func (s *Server) mountPlay(r chi.Router) {
	r.Get("/play/launch", s.handleLaunch)
	r.Post("/play/launch", s.handleLaunch)
	r.Route("/play/{id}", func(r chi.Router) {
		r.Use(s.requirePlay)
		r.Get("/", s.handleSnapshot)
		r.Post("/select", s.handleSelect)
		r.Post("/finish", s.handleFinish)
		r.Get("/results/qr", s.handleResultsQR)
	})
}

// launchRes is returned by /play/launch.
type launchRes struct {
	PlayID    string        `json:"playId"`
	Token     string        `json:"token"`
	Level     int           `json:"level"`
	NextLevel int           `json:"nextLevel"`
	Snapshot  core.Snapshot `json:"snapshot"`
}

// handleLaunch reads launch params from the query (and form body on POST),
// builds the game scene and starts it.
func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, `{"error":"bad_form"}`, http.StatusBadRequest)
		return
	}
	session, err := core.ParseSession(r.Form)
	if err != nil {
		http.Error(w, `{"error":"`+jsonSafe(err.Error())+`"}`, http.StatusBadRequest)
		return
	}
	if s.results != nil && session.PlayerID != "" {
		best, err := s.results.Best(r.Context(), session.GameID, session.PlayerID)
		if err != nil {
			log.Warn().Err(err).Str("game", session.GameID).Msg("best score lookup")
		}
		session.Highscore = max(session.Highscore, best)
	}

	id := uuid.NewString()
	deps := core.SceneDeps{
		Rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Log:  log.With().Str("play", id).Str("game", session.GameID).Logger(),
	}
	ctx, sc, err := s.catalog.Launch(session, s.opts.CallbackURL, deps)
	switch {
	case errors.Is(err, catalog.ErrUnknownGame):
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	case errors.Is(err, core.ErrUnknownLevel):
		http.Error(w, `{"error":"unknown_level"}`, http.StatusBadRequest)
		return
	case err != nil:
		log.Error().Err(err).Str("game", session.GameID).Msg("launch")
		http.Error(w, `{"error":"launch_failed"}`, http.StatusInternalServerError)
		return
	}

	p, err := play.New(id, ctx, sc, log.Logger)
	if err != nil {
		log.Error().Err(err).Str("game", session.GameID).Msg("begin")
		http.Error(w, `{"error":"launch_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.signPlayToken(id)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.plays.Save(r.Context(), p); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	p.Run(s.runCtx, s.opts.Frame)
	setTokenCookie(w, id, tok, exp)

	cur, next := levelNumbers(ctx)
	log.Info().Str("play", id).Str("game", session.GameID).Int("level", cur).Msg("play launched")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(launchRes{
		PlayID:    id,
		Token:     tok,
		Level:     cur,
		NextLevel: next,
		Snapshot:  p.Snapshot(),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(playFrom(r).Snapshot())
}

type selectReq struct {
	Target *int `json:"target"`
}

type selectRes struct {
	Outcome  core.Outcome  `json:"outcome"`
	Snapshot core.Snapshot `json:"snapshot"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Target == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	out, snap, err := playFrom(r).Select(*req.Target)
	switch {
	case errors.Is(err, play.ErrStopped):
		http.Error(w, `{"error":"finished"}`, http.StatusConflict)
		return
	case errors.Is(err, core.ErrBadSceneTarget):
		http.Error(w, `{"error":"bad_target"}`, http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, `{"error":"`+jsonSafe(err.Error())+`"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(selectRes{Outcome: out, Snapshot: snap})
}

// handleFinish stops the play and returns its results. The first call
// persists them; later calls return the same results.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	p := playFrom(r)
	res, created, err := p.Finish()
	if err != nil {
		log.Error().Err(err).Str("play", p.ID).Msg("results")
		http.Error(w, `{"error":"results_failed"}`, http.StatusInternalServerError)
		return
	}
	if created && s.results != nil {
		rec := results.Record{
			PlayID:        p.ID,
			GameID:        p.Ctx.Config.GameID,
			PlayerID:      p.Ctx.Session.PlayerID,
			SessionID:     p.Ctx.Session.SessionID,
			Level:         res.Level,
			Score:         res.Score,
			NewRecord:     res.NewRecord,
			UnlockedLevel: res.UnlockedLevel,
		}
		// Best effort; the hand-off still goes out.
		if err := s.results.Insert(r.Context(), rec); err != nil {
			log.Warn().Err(err).Str("play", p.ID).Msg("persist results")
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleResultsQR encodes the results redirect URL so it can be opened on
// another device.
func (s *Server) handleResultsQR(w http.ResponseWriter, r *http.Request) {
	res, ok := playFrom(r).Results()
	if !ok {
		http.Error(w, `{"error":"not_finished"}`, http.StatusConflict)
		return
	}
	png, err := qrcode.Encode(res.RedirectURL, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, `{"error":"qr_failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// jsonSafe marshals msg as a JSON string body without the quotes.
func jsonSafe(msg string) string {
	b, _ := json.Marshal(msg)
	return string(b[1 : len(b)-1])
}
