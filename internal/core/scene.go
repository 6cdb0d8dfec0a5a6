package core

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// Outcome reports what a player selection did.
type Outcome string

const (
	OutcomeIgnored  Outcome = "ignored"  // input not accepted in the current state
	OutcomeProgress Outcome = "progress" // accepted, round continues
	OutcomeSuccess  Outcome = "success"  // round (or item) won
	OutcomeFailure  Outcome = "failure"  // wrong pick
)

// Snapshot is the client-facing view of a scene.
type Snapshot struct {
	Game       string `json:"game"`
	State      string `json:"state"`
	Level      int    `json:"level"`
	Score      int    `json:"score"`
	RoundScore int    `json:"roundScore"`
	Clock      int    `json:"clock"`
	Health     int    `json:"health"`
	Countdown  string `json:"countdown,omitempty"`
	Board      any    `json:"board,omitempty"`
}

// Scene is one playable game flow. Implementations are not safe for
// concurrent use; callers serialize access.
type Scene interface {
	Key() string
	// Begin starts the starter countdown.
	Begin() error
	// Advance moves scene time forward, firing due timers.
	Advance(d time.Duration)
	// Select applies a player pick on the target with the given index/ID.
	Select(target int) (Outcome, error)
	Snapshot() Snapshot
	Score() int
	Finished() bool
}

// SceneDeps are runtime collaborators handed to every scene.
type SceneDeps struct {
	Rand *rand.Rand
	Log  zerolog.Logger
}

// SceneFactory builds a scene for a Context.
type SceneFactory func(ctx *Context, deps SceneDeps) (Scene, error)
