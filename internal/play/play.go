// apps/go-server/internal/play/play.go
//
// A running play: one game scene driven in real time.
// Responsibilities:
//   - Own the scene and serialize every access to it behind one mutex.
//   - Run a ticker goroutine that advances scene time by the wall-clock
//     time elapsed since the previous frame.
//   - Fan snapshots out to subscribers (websocket clients) each frame.
//   - Compute the results hand-off once, when the play is finished.
//
// Notes:
//   - The runner exits on Stop, on context cancellation, or one frame after
//     the scene reports game over.
//   - Subscribers get a buffered channel; slow readers drop frames.

package play

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
)

// DefaultFrame is the runner's default tick interval.
const DefaultFrame = 100 * time.Millisecond

var ErrStopped = errors.New("play already finished")

// Play is safe for concurrent use.
type Play struct {
	ID      string
	Ctx     *core.Context
	Started time.Time

	log zerolog.Logger

	mu         sync.Mutex
	scene      core.Scene
	lastFrame  time.Time
	lastActive time.Time
	results    *core.Results
	subs       map[chan core.Snapshot]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// New wraps a built scene and starts its countdown. The runner is not
// started; see Run.
func New(id string, ctx *core.Context, sc core.Scene, log zerolog.Logger) (*Play, error) {
	if err := sc.Begin(); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Play{
		ID:         id,
		Ctx:        ctx,
		Started:    now,
		log:        log.With().Str("play", id).Str("game", ctx.Config.GameID).Logger(),
		scene:      sc,
		lastFrame:  now,
		lastActive: now,
		subs:       make(map[chan core.Snapshot]struct{}),
		done:       make(chan struct{}),
	}, nil
}

// Run starts the runner goroutine.
func (p *Play) Run(parent context.Context, frame time.Duration) {
	if frame <= 0 {
		frame = DefaultFrame
	}
	ctx, cancel := context.WithCancel(parent)
	p.mu.Lock()
	p.cancel = cancel
	p.lastFrame = time.Now()
	p.mu.Unlock()
	go p.run(ctx, frame)
}

func (p *Play) run(ctx context.Context, frame time.Duration) {
	defer close(p.done)
	t := time.NewTicker(frame)
	defer t.Stop()
	p.log.Debug().Dur("frame", frame).Msg("runner started")
	for {
		select {
		case <-ctx.Done():
			p.log.Debug().Msg("runner stopped")
			return
		case now := <-t.C:
			snap, over := p.frame(now)
			p.broadcast(snap)
			if over {
				p.log.Debug().Int("score", snap.Score).Msg("runner done")
				return
			}
		}
	}
}

// frame advances the scene to now and returns the resulting snapshot.
func (p *Play) frame(now time.Time) (core.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d := now.Sub(p.lastFrame); d > 0 {
		p.scene.Advance(d)
		p.lastFrame = now
	}
	return p.scene.Snapshot(), p.scene.Finished()
}

// Step advances the scene by d outside the runner.
func (p *Play) Step(d time.Duration) core.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scene.Advance(d)
	return p.scene.Snapshot()
}

func (p *Play) broadcast(s core.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ch := range p.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe registers a snapshot listener. The returned func unsubscribes.
func (p *Play) Subscribe() (<-chan core.Snapshot, func()) {
	ch := make(chan core.Snapshot, 4)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()
	return ch, func() {
		p.mu.Lock()
		delete(p.subs, ch)
		p.mu.Unlock()
	}
}

// Snapshot returns the scene's current view.
func (p *Play) Snapshot() core.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scene.Snapshot()
}

// Select forwards a player pick to the scene.
func (p *Play) Select(target int) (core.Outcome, core.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.results != nil {
		return core.OutcomeIgnored, p.scene.Snapshot(), ErrStopped
	}
	p.lastActive = time.Now()
	out, err := p.scene.Select(target)
	return out, p.scene.Snapshot(), err
}

// Finished reports whether the game is over or results were taken.
func (p *Play) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results != nil || p.scene.Finished()
}

// LastActive is the time of the last player input (or the start).
func (p *Play) LastActive() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastActive
}

// Finish stops the runner and returns the results hand-off. Repeated calls
// return the same results; created is true only for the first.
func (p *Play) Finish() (res core.Results, created bool, err error) {
	p.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.results != nil {
		return *p.results, false, nil
	}
	r, err := core.NewResults(p.Ctx, p.scene.Score())
	if err != nil {
		return core.Results{}, false, err
	}
	p.results = &r
	p.log.Info().Int("score", r.Score).Bool("newRecord", r.NewRecord).Int("unlockedLevel", r.UnlockedLevel).Msg("play finished")
	return r, true, nil
}

// Results returns the hand-off once Finish was called.
func (p *Play) Results() (core.Results, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.results == nil {
		return core.Results{}, false
	}
	return *p.results, true
}

// Stop cancels the runner and waits for it to exit.
func (p *Play) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-p.done
}
