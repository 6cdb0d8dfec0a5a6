package scene

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/hud"
)

// State names a step of a game's round state machine.
type State string

const (
	StateIdle        State = "idle"
	StateCountdown   State = "countdown"
	StatePreparing   State = "preparing" // reveal or memorize phase, input closed
	StateRoundActive State = "round_active"
	StateSuccess     State = "success"
	StateFailure     State = "failure"
	StateGameOver    State = "game_over"
)

// Durations shared by the games.
const (
	ClockPeriod     = time.Second
	CountdownBeat   = time.Second
	RoundTransition = 500 * time.Millisecond // board leaves / enters
	WrongOverlay    = time.Second
)

var countdownBeats = []string{"3", "2", "1", "GO!"}

var ErrAlreadyBegun = errors.New("scene already begun")

// Stage is the scaffolding each game scene owns: HUD, level, timeline and
// the common part of the state machine (countdown, clock, game over).
type Stage struct {
	Ctx   *core.Context
	Level core.Level
	HUD   *hud.HUD
	TL    *Timeline
	Rand  *rand.Rand
	Log   zerolog.Logger

	key       string
	state     State
	countdown string
	clock     *Timer
	gameOver  []func()
}

// NewStage resolves the current level and wires the HUD.
func NewStage(key string, ctx *core.Context, deps core.SceneDeps) (*Stage, error) {
	lvl, err := ctx.CurrentLevel()
	if err != nil {
		return nil, err
	}
	r := deps.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Stage{
		Ctx:   ctx,
		Level: lvl,
		HUD:   hud.New(ctx.Config.TimerLimit, lvl),
		TL:    NewTimeline(),
		Rand:  r,
		Log:   deps.Log.With().Str("game", ctx.Config.GameID).Int("level", lvl.Value).Logger(),
		key:   key,
		state: StateIdle,
	}, nil
}

func (s *Stage) Key() string { return s.key }
func (s *Stage) State() State { return s.state }
func (s *Stage) Finished() bool { return s.state == StateGameOver }
func (s *Stage) Score() int { return s.HUD.Scorer.Score() }
func (s *Stage) Accepting() bool { return s.state == StateRoundActive }
func (s *Stage) Advance(d time.Duration) { s.TL.Advance(d) }

// SetState moves the machine. Game over is terminal.
func (s *Stage) SetState(st State) {
	if s.state == StateGameOver || s.state == st {
		return
	}
	s.Log.Debug().Str("from", string(s.state)).Str("to", string(st)).Msg("state")
	s.state = st
}

// Begin plays the starter countdown, then calls onBegin.
func (s *Stage) Begin(onBegin func()) error {
	if s.state != StateIdle {
		return ErrAlreadyBegun
	}
	s.SetState(StateCountdown)
	s.countdown = countdownBeats[0]
	for i := 1; i <= len(countdownBeats); i++ {
		s.TL.After(time.Duration(i)*CountdownBeat, func() {
			if i < len(countdownBeats) {
				s.countdown = countdownBeats[i]
				return
			}
			s.countdown = ""
			onBegin()
		})
	}
	return nil
}

// After schedules fn unless the game has ended by the time it fires.
func (s *Stage) After(d time.Duration, fn func()) *Timer {
	return s.TL.After(d, func() {
		if !s.Finished() {
			fn()
		}
	})
}

// StartClock starts (or restarts after a pause) the game clock.
func (s *Stage) StartClock() {
	s.HUD.Clock.Start()
	if s.clock == nil || s.clock.Stopped() {
		s.clock = s.TL.Every(ClockPeriod, s.tick)
		return
	}
	s.clock.Resume()
}

func (s *Stage) PauseClock() {
	s.HUD.Clock.Pause()
	s.clock.Pause()
}

func (s *Stage) ResumeClock() {
	s.HUD.Clock.Resume()
	s.clock.Resume()
}

func (s *Stage) tick() {
	if s.HUD.Tick() {
		s.Log.Debug().Msg("timer completed")
		s.GameOver()
	}
}

// Feedback holds st for d, then runs then (unless the game ended meanwhile).
func (s *Stage) Feedback(st State, d time.Duration, then func()) {
	s.SetState(st)
	s.After(d, then)
}

// LoseHeart removes a heart and ends the game when none are left.
func (s *Stage) LoseHeart() (over bool) {
	_, over = s.HUD.Health.Kill()
	if over {
		s.Log.Debug().Msg("health exhausted")
		s.GameOver()
	}
	return over
}

// OnGameOver registers a hook run once when the game ends.
func (s *Stage) OnGameOver(fn func()) { s.gameOver = append(s.gameOver, fn) }

// GameOver ends the game: every pending timer is cancelled.
func (s *Stage) GameOver() {
	if s.Finished() {
		return
	}
	s.SetState(StateGameOver)
	s.TL.Clear()
	s.HUD.Clock.Reset()
	for _, fn := range s.gameOver {
		fn()
	}
	s.Log.Info().Int("score", s.Score()).Msg("game over")
}

// CompleteRound awards the round score and returns it.
func (s *Stage) CompleteRound() int {
	won := s.HUD.Scorer.CompleteRound()
	s.Log.Debug().Int("award", won).Int("score", s.Score()).Msg("round complete")
	return won
}

// Snapshot fills the HUD part of a snapshot.
func (s *Stage) Snapshot(board any) core.Snapshot {
	return core.Snapshot{
		Game:       s.Ctx.Config.GameID,
		State:      string(s.state),
		Level:      s.Level.Value,
		Score:      s.HUD.Scorer.Score(),
		RoundScore: s.HUD.Scorer.RoundScore(),
		Clock:      s.HUD.Clock.Remaining(),
		Health:     s.HUD.Health.Amount(),
		Countdown:  s.countdown,
		Board:      board,
	}
}

// Shuffle permutes xs in place with the stage's source.
func Shuffle[T any](r *rand.Rand, xs []T) {
	r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
}
