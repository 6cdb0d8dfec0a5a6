// apps/go-server/internal/core/config.go
//
// Static per-game identity and the bootstrapper that turns it into a Context.
// Responsibilities:
//   - Validate the game's timer limit (must be set and at least 10 seconds).
//   - Register levels in order, assigning 1-based ordinals.
//   - Register scene factories by key.
//   - Merge launch session data into the Context.

package core

import (
	"errors"
	"fmt"
)

// Category groups games by the skill they train.
type Category string

const (
	CategoryAttention Category = "attention"
	CategoryMemory    Category = "memory"
	CategorySpeed     Category = "speed"
)

// MinTimerLimit is the shortest allowed game clock, in seconds.
const MinTimerLimit = 10

var (
	ErrTimerLimitUnset    = errors.New("the timer limit is undefined, specify the timer limit in the configuration")
	ErrTimerLimitTooShort = fmt.Errorf("the value of the timer limit should be at least %d seconds", MinTimerLimit)
)

// GameConfig is the immutable identity of a game.
type GameConfig struct {
	GameID      string   `json:"gameId"`
	DisplayName string   `json:"displayName"`
	Category    Category `json:"category"`
	TimerLimit  int      `json:"timerLimit"` // seconds; zero means unset
}

// Validate checks the timer limit.
func (c GameConfig) Validate() error {
	switch {
	case c.TimerLimit == 0:
		return ErrTimerLimitUnset
	case c.TimerLimit < MinTimerLimit:
		return fmt.Errorf("%w: got %d", ErrTimerLimitTooShort, c.TimerLimit)
	}
	return nil
}

// Bootstrapper owns a game's Context during registration.
type Bootstrapper struct {
	ctx     *Context
	startup string
}

// NewBootstrapper validates cfg and creates an empty Context for it.
// startup is the scene key launched first.
func NewBootstrapper(cfg GameConfig, startup string) (*Bootstrapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.GameID, err)
	}
	return &Bootstrapper{ctx: newContext(cfg), startup: startup}, nil
}

// Context returns the Context being built.
func (b *Bootstrapper) Context() *Context { return b.ctx }

// StartupScene returns the key of the first scene to launch.
func (b *Bootstrapper) StartupScene() string { return b.startup }

// AddLevel appends l, overriding its ordinal with the next one in sequence.
func (b *Bootstrapper) AddLevel(l Level) Level {
	n := len(b.ctx.Levels)
	if n == 0 {
		l.Value = 1
	} else {
		l.Value = b.ctx.Levels[n-1].Value + 1
	}
	b.ctx.Levels = append(b.ctx.Levels, l)
	return l
}

// AddLevels registers every level in order.
func (b *Bootstrapper) AddLevels(levels []Level) {
	for _, l := range levels {
		b.AddLevel(l)
	}
}

// AddScene registers a scene factory under key. The first registration wins.
func (b *Bootstrapper) AddScene(key string, f SceneFactory) {
	if _, ok := b.ctx.scenes[key]; ok {
		return
	}
	b.ctx.scenes[key] = f
}

// Init merges session data and the results callback into a copy of the
// registered Context, so one Bootstrapper can serve many plays.
func (b *Bootstrapper) Init(session SessionData, callbackURL string) (*Context, error) {
	if len(b.ctx.Levels) < 1 {
		return nil, ErrNoLevels
	}
	c := b.ctx.clone()
	c.Session = session
	c.CallbackURL = callbackURL
	return c, nil
}
