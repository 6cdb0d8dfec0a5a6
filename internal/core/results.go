package core

import (
	"net/url"
)

// Results is the outcome of a finished play and the hand-off back to the
// hosting page.
type Results struct {
	Score         int    `json:"score"`
	NewRecord     bool   `json:"newRecord"`
	Highscore     int    `json:"highscore"`
	Level         int    `json:"level"`
	UnlockedLevel int    `json:"unlockedLevel"`
	Unlocked      bool   `json:"unlocked"`
	RedirectURL   string `json:"redirectUrl"`
}

// NewResults evaluates score against the session and level thresholds.
func NewResults(c *Context, score int) (Results, error) {
	cur, err := c.CurrentLevel()
	if err != nil {
		return Results{}, err
	}
	next, err := c.NextLevel()
	if err != nil {
		return Results{}, err
	}

	r := Results{
		Score:         score,
		NewRecord:     score > c.Session.Highscore,
		Highscore:     max(score, c.Session.Highscore),
		Level:         cur.Value,
		UnlockedLevel: cur.Value,
	}
	if cur.Value != next.Value && cur.NextLevelThreshold != 0 && score >= cur.NextLevelThreshold {
		r.UnlockedLevel = next.Value
		r.Unlocked = true
	}

	out := c.Session
	out.Highscore = r.Highscore
	out.Level = r.UnlockedLevel
	r.RedirectURL = handoffURL(c.CallbackURL, out.Values())
	return r, nil
}

// handoffURL appends q to base, replacing any query already on it.
// An unparsable or empty base yields a relative "?..." URL.
func handoffURL(base string, q url.Values) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return "?" + q.Encode()
	}
	u.RawQuery = q.Encode()
	return u.String()
}
