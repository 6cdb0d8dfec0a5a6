// apps/go-server/internal/games/memo/memo.go
//
// Memo: memorize a grid of face-up cards, then find the pairs once they
// are turned over.
// Responsibilities:
//   - Deal cards/2 pairs of distinct faces and show them for the level's
//     timing with the clock paused.
//   - Track the first pick; lock matching pairs, flip mismatches back at a
//     cost of one heart.

package memo

import (
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/scene"
)

const SceneKey = "game"

// FaceCount is the number of distinct card faces available.
const FaceCount = 67

// FlipBackDelay is how long a mismatched pair stays open.
const FlipBackDelay = 500 * time.Millisecond

var Config = core.GameConfig{
	GameID:      "memo",
	DisplayName: "Memo",
	Category:    core.CategoryMemory,
	TimerLimit:  45,
}

var ErrBadDeck = errors.New("memo: card count must be an even number of at most 134")

type LevelData struct {
	Cards  int `json:"cards"`
	Rows   int `json:"rows"`
	Timing int `json:"timing"` // ms the deal stays face up
}

func (d LevelData) withDefaults() LevelData {
	if d.Cards == 0 {
		d.Cards = 4
	}
	if d.Rows == 0 {
		d.Rows = d.Cards / 2
	}
	if d.Timing == 0 {
		d.Timing = 1000
	}
	return d
}

// Columns is the number of grid columns needed for the deck.
func (d LevelData) Columns() int {
	return (d.Cards + d.Rows - 1) / d.Rows
}

type card struct {
	face    int
	open    bool
	matched bool
}

// CardView is a card as the client sees it; Face is 0 while face down.
type CardView struct {
	Face    int  `json:"face"`
	Matched bool `json:"matched"`
}

type Board struct {
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Cards   []CardView `json:"cards"`
}

type Game struct {
	*scene.Stage

	data  LevelData
	cards []card
	first int // index of the pending first pick, -1 when none
}

func New(ctx *core.Context, deps core.SceneDeps) (core.Scene, error) {
	st, err := scene.NewStage(SceneKey, ctx, deps)
	if err != nil {
		return nil, err
	}
	var data LevelData
	if err := st.Level.Decode(&data); err != nil {
		return nil, err
	}
	data = data.withDefaults()
	if data.Cards%2 != 0 || data.Cards/2 > FaceCount || data.Rows < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadDeck, data.Cards)
	}
	return &Game{Stage: st, data: data, first: -1}, nil
}

func (g *Game) Begin() error {
	return g.Stage.Begin(func() {
		g.StartClock()
		g.startRound()
	})
}

// deal lays out pairs of distinct faces in random order, face up.
func (g *Game) deal() {
	faces := g.Rand.Perm(FaceCount)[:g.data.Cards/2]
	g.cards = g.cards[:0]
	for _, f := range faces {
		g.cards = append(g.cards, card{face: f + 1, open: true}, card{face: f + 1, open: true})
	}
	scene.Shuffle(g.Rand, g.cards)
	g.first = -1
}

func (g *Game) startRound() {
	g.HUD.Scorer.ResetRound()
	g.PauseClock()
	g.deal()
	g.SetState(scene.StatePreparing)
	memorize := time.Duration(g.data.Timing) * time.Millisecond
	g.After(scene.RoundTransition+memorize, func() {
		for i := range g.cards {
			g.cards[i].open = false
		}
		g.ResumeClock()
		g.SetState(scene.StateRoundActive)
	})
}

// Select turns over the card at index target.
func (g *Game) Select(target int) (core.Outcome, error) {
	if !g.Accepting() {
		return core.OutcomeIgnored, nil
	}
	if target < 0 || target >= len(g.cards) {
		return core.OutcomeIgnored, fmt.Errorf("%w: %d", core.ErrBadSceneTarget, target)
	}
	c := &g.cards[target]
	if c.open || c.matched {
		return core.OutcomeIgnored, nil
	}
	c.open = true
	if g.first < 0 {
		g.first = target
		return core.OutcomeProgress, nil
	}

	first := g.first
	g.first = -1
	if g.cards[first].face != c.face {
		g.SetState(scene.StateFailure)
		g.After(FlipBackDelay, func() {
			g.cards[first].open, g.cards[target].open = false, false
			if g.LoseHeart() {
				return
			}
			g.Feedback(scene.StateFailure, scene.WrongOverlay, func() {
				g.SetState(scene.StateRoundActive)
			})
		})
		return core.OutcomeFailure, nil
	}

	g.cards[first].matched, c.matched = true, true
	for _, k := range g.cards {
		if !k.matched {
			return core.OutcomeSuccess, nil
		}
	}
	g.CompleteRound()
	g.Feedback(scene.StateSuccess, scene.RoundTransition, g.startRound)
	return core.OutcomeSuccess, nil
}

func (g *Game) Snapshot() core.Snapshot {
	if g.cards == nil {
		return g.Stage.Snapshot(nil)
	}
	b := Board{Rows: g.data.Rows, Columns: g.data.Columns(), Cards: make([]CardView, len(g.cards))}
	for i, c := range g.cards {
		v := CardView{Matched: c.matched}
		if c.open || c.matched {
			v.Face = c.face
		}
		b.Cards[i] = v
	}
	return g.Stage.Snapshot(b)
}
