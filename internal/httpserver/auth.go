package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/minigames/apps/go-server/internal/play"
	"github.com/robalobadob/minigames/apps/go-server/internal/store"
)

const tokenCookieName = "minigames_play"

var errTokenPlay = errors.New("token issued for another play")

// signPlayToken creates an HS256 JWT scoped to one play.
func (s *Server) signPlayToken(playID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   playID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.opts.Secret)
	return ss, exp, err
}

// verifyPlayToken checks the signature, expiry and play scope of tok.
func (s *Server) verifyPlayToken(tok, playID string) error {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return s.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if claims.Subject != playID {
		return errTokenPlay
	}
	return nil
}

// setTokenCookie scopes the token cookie to the play's path.
func setTokenCookie(w http.ResponseWriter, playID, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/play/" + playID,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// playToken extracts the token from the Authorization header, the play
// cookie, or the token query parameter (browsers cannot set headers on
// websocket requests).
func playToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(tokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

type ctxPlayKey struct{}

// requirePlay enforces a valid token for {id} and injects the play into
// the request context.
func (s *Server) requirePlay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tok := playToken(r)
		if tok == "" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		if err := s.verifyPlayToken(tok, id); err != nil {
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		p, err := s.plays.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
			return
		}
		ctx := context.WithValue(r.Context(), ctxPlayKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playFrom(r *http.Request) *play.Play {
	p, _ := r.Context().Value(ctxPlayKey{}).(*play.Play)
	return p
}
