// apps/go-server/internal/httpserver/routes_games.go
//
// Read-only catalog and leaderboard routes:
//   - GET /games                   → every game's config, in menu order
//   - GET /games/{gameId}/levels   → the game's registered levels
//   - GET /leaderboard/{gameId}    → best score per player (?limit=, default 20)

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/minigames/apps/go-server/internal/catalog"
	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/results"
)

func (s *Server) mountGames(r chi.Router) {
	r.Get("/games", s.handleGames)
	r.Get("/games/{gameId}/levels", s.handleLevels)
	r.Get("/leaderboard/{gameId}", s.handleLeaderboard)
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.catalog.Games())
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.catalog.Levels(chi.URLParam(r, "gameId"))
	if errors.Is(err, catalog.ErrUnknownGame) {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(levels)
}

// lbRes is returned by /leaderboard/{gameId}.
type lbRes struct {
	GameID string          `json:"gameId"`
	Top    []results.Entry `json:"top"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameId")
	if _, err := s.catalog.Levels(gameID); err != nil {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}
	top := []results.Entry{}
	if s.results != nil {
		rows, err := s.results.Leaderboard(r.Context(), gameID, limit)
		if err != nil {
			log.Error().Err(err).Str("game", gameID).Msg("leaderboard")
			http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
			return
		}
		top = rows
	}
	_ = json.NewEncoder(w).Encode(lbRes{GameID: gameID, Top: top})
}

// levelNumbers returns the current and next level ordinals of ctx.
func levelNumbers(ctx *core.Context) (cur, next int) {
	c, err := ctx.CurrentLevel()
	if err != nil {
		return 0, 0
	}
	n, err := ctx.NextLevel()
	if err != nil {
		return c.Value, c.Value
	}
	return c.Value, n.Value
}
