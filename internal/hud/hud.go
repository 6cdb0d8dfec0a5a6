// apps/go-server/internal/hud/hud.go
//
// Heads-up state shared by every game: countdown clock, hearts, score.
// None of these know about time; the scene's timeline drives Tick once per
// simulated second.

package hud

import "github.com/robalobadob/minigames/apps/go-server/internal/core"

// DefaultHealth is the number of hearts a player starts with.
const DefaultHealth = 3

// Clock counts down whole seconds.
type Clock struct {
	start     int
	remaining int
	running   bool
	paused    bool
}

// NewClock returns a stopped clock set to start seconds.
func NewClock(start int) *Clock {
	return &Clock{start: start, remaining: start}
}

func (c *Clock) Start() { c.running, c.paused = true, false }
func (c *Clock) Pause() { c.paused = true }
func (c *Clock) Resume() { c.paused = false }
func (c *Clock) Running() bool { return c.running && !c.paused }
func (c *Clock) Paused() bool { return c.paused }
func (c *Clock) Remaining() int { return c.remaining }
func (c *Clock) StartTime() int { return c.start }

// Reset stops the clock and restores the start value.
func (c *Clock) Reset() {
	c.running, c.paused = false, false
	c.remaining = c.start
}

// Tick advances one second. ticked is false when the clock is stopped or
// paused. At zero the tick completes the countdown and resets the clock.
func (c *Clock) Tick() (ticked, completed bool) {
	if !c.Running() {
		return false, false
	}
	if c.remaining > 0 {
		c.remaining--
		return true, false
	}
	c.Reset()
	return true, true
}

// Health tracks remaining hearts.
type Health struct {
	max    int
	amount int
}

func NewHealth(n int) *Health {
	if n <= 0 {
		n = DefaultHealth
	}
	return &Health{max: n, amount: n}
}

func (h *Health) Amount() int { return h.amount }
func (h *Health) Reset() { h.amount = h.max }

// Kill removes one heart. over is true only on the call that empties it.
func (h *Health) Kill() (left int, over bool) {
	if h.amount <= 0 {
		return 0, false
	}
	h.amount--
	return h.amount, h.amount == 0
}

// Scorer holds the cumulative score and the decaying per-round award.
type Scorer struct {
	level core.Level
	score int
	round int
}

func NewScorer(l core.Level) *Scorer {
	return &Scorer{level: l, round: l.AwardPoints}
}

func (s *Scorer) Score() int { return s.score }
func (s *Scorer) RoundScore() int { return s.round }

// ResetRound restores the round award to the level's award points.
func (s *Scorer) ResetRound() { s.round = s.level.AwardPoints }

// Decay charges the round award, floored at the level minimum.
func (s *Scorer) Decay() int {
	if s.round-s.level.ChargePoints > s.level.MinPoints {
		s.round -= s.level.ChargePoints
	} else {
		s.round = s.level.MinPoints
	}
	return s.round
}

// Award adds the current round award to the score without resetting it.
func (s *Scorer) Award() int {
	s.score += s.round
	return s.round
}

// CompleteRound awards the round and resets the award for the next round.
func (s *Scorer) CompleteRound() int {
	won := s.Award()
	s.ResetRound()
	return won
}

// Reset clears the cumulative score.
func (s *Scorer) Reset() {
	s.score = 0
	s.ResetRound()
}

// HUD bundles the pieces every scene shows.
type HUD struct {
	Clock  *Clock
	Health *Health
	Scorer *Scorer
}

func New(timerLimit int, l core.Level) *HUD {
	return &HUD{
		Clock:  NewClock(timerLimit),
		Health: NewHealth(DefaultHealth),
		Scorer: NewScorer(l),
	}
}

// Tick advances the clock; each elapsed tick decays the round award.
func (h *HUD) Tick() (completed bool) {
	ticked, completed := h.Clock.Tick()
	if ticked {
		h.Scorer.Decay()
	}
	return completed
}
