package core

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SessionData is the launch record supplied by the hosting page through the
// query string. The signature is carried through untouched.
type SessionData struct {
	GameID    string `json:"gameId"`
	PlayerID  string `json:"playerId"`
	SessionID string `json:"sessionId"`
	Rank      int    `json:"rank"`
	Highscore int    `json:"highscore"`
	Level     int    `json:"level"` // 0 when not supplied
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

// ParseSession reads launch parameters. Blank numeric fields become zero;
// malformed ones are an error.
func ParseSession(q url.Values) (SessionData, error) {
	s := SessionData{
		GameID:    strings.TrimSpace(q.Get("gameId")),
		PlayerID:  q.Get("playerId"),
		SessionID: q.Get("sessionId"),
		Signature: q.Get("signature"),
	}
	var err error
	if s.Rank, err = atoi(q, "rank"); err != nil {
		return s, err
	}
	if s.Highscore, err = atoi(q, "highscore"); err != nil {
		return s, err
	}
	if s.Level, err = atoi(q, "level"); err != nil {
		return s, err
	}
	if v := strings.TrimSpace(q.Get("timestamp")); v != "" {
		if s.Timestamp, err = strconv.ParseInt(v, 10, 64); err != nil {
			return s, fmt.Errorf("timestamp: %w", err)
		}
	}
	if s.GameID == "" {
		return s, fmt.Errorf("gameId: missing")
	}
	return s, nil
}

func atoi(q url.Values, key string) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// Values encodes the session back into the launch query shape.
func (s SessionData) Values() url.Values {
	q := url.Values{}
	q.Set("gameId", s.GameID)
	q.Set("playerId", s.PlayerID)
	q.Set("sessionId", s.SessionID)
	q.Set("rank", strconv.Itoa(s.Rank))
	q.Set("highscore", strconv.Itoa(s.Highscore))
	q.Set("level", strconv.Itoa(s.Level))
	q.Set("timestamp", strconv.FormatInt(s.Timestamp, 10))
	q.Set("signature", s.Signature)
	return q
}
