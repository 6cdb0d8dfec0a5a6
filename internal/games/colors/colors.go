// apps/go-server/internal/games/colors/colors.go
//
// Colors: color words pop up around the board, some painted in their own
// color, most in another. Click only the ones that match.
// Responsibilities:
//   - Spawn a word every delayEachItem ms while fewer than MaxLive are up.
//   - Paint lures in a different color, with the true color shown on a
//     fixed cadence derived from the timer limit and minCorrectItems.
//   - Place words so they never overlap each other or the board edges.
// Input is never blocked by the failure overlay.

package colors

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/placement"
	"github.com/robalobadob/minigames/apps/go-server/internal/scene"
	"github.com/robalobadob/minigames/apps/go-server/internal/words"
)

const SceneKey = "game"

// MaxLive caps the number of words on the board.
const MaxLive = 3

// Fade durations framing a word's visible time.
const (
	FadeIn  = time.Second
	FadeOut = time.Second
)

// Board geometry in logical units.
var (
	Area       = placement.Rect{W: 800, H: 600}
	charWidth  = 40.0
	wordHeight = 80.0
	wordPad    = 10.0
)

var Config = core.GameConfig{
	GameID:      "colors",
	DisplayName: "Colors",
	Category:    core.CategorySpeed,
	TimerLimit:  45,
}

var ErrNoColors = errors.New("colors: word list is empty")

type LevelData struct {
	DelayEachItem      int `json:"delayEachItem"`      // ms between spawns
	DurationVisibility int `json:"durationVisibility"` // ms fully shown
	MinCorrectItems    int `json:"minCorrectItems"`
}

func (d LevelData) withDefaults() LevelData {
	if d.DelayEachItem == 0 {
		d.DelayEachItem = 1000
	}
	if d.DurationVisibility == 0 {
		d.DurationVisibility = 2000
	}
	if d.MinCorrectItems == 0 {
		d.MinCorrectItems = 1
	}
	return d
}

type word struct {
	id      int
	text    string
	color   string // semantic color
	display string // painted color
	rect    placement.Rect
	expire  *scene.Timer
}

// WordView is a live word as the client sees it.
type WordView struct {
	ID    int            `json:"id"`
	Text  string         `json:"text"`
	Color string         `json:"color"`
	Rect  placement.Rect `json:"rect"`
}

type Board struct {
	Area  placement.Rect `json:"area"`
	Words []WordView     `json:"words"`
}

type Game struct {
	*scene.Stage

	data    LevelData
	pool    []words.Colored
	palette []string
	factor  int
	placer  placement.Placer

	live    []*word
	counter int
	nextID  int
}

// New returns a factory drawing color words from list.
func New(list []words.Colored) core.SceneFactory {
	return func(ctx *core.Context, deps core.SceneDeps) (core.Scene, error) {
		if len(list) == 0 {
			return nil, ErrNoColors
		}
		st, err := scene.NewStage(SceneKey, ctx, deps)
		if err != nil {
			return nil, err
		}
		var data LevelData
		if err := st.Level.Decode(&data); err != nil {
			return nil, err
		}
		data = data.withDefaults()
		if data.MinCorrectItems < 1 || data.MinCorrectItems > ctx.Config.TimerLimit {
			return nil, fmt.Errorf("colors: minCorrectItems %d out of range for a %ds timer", data.MinCorrectItems, ctx.Config.TimerLimit)
		}
		pool := make([]words.Colored, len(list))
		var palette []string
		for i, w := range list {
			w.Text = strings.ToUpper(w.Text)
			w.Color = strings.ToLower(w.Color)
			pool[i] = w
			if !slices.Contains(palette, w.Color) {
				palette = append(palette, w.Color)
			}
		}
		return &Game{
			Stage:   st,
			data:    data,
			pool:    pool,
			palette: palette,
			factor:  ctx.Config.TimerLimit / data.MinCorrectItems,
			placer:  placement.Placer{Rand: st.Rand},
		}, nil
	}
}

func (g *Game) Begin() error {
	return g.Stage.Begin(func() {
		g.SetState(scene.StateRoundActive)
		g.TL.Every(time.Duration(g.data.DelayEachItem)*time.Millisecond, g.spawn)
		g.StartClock()
	})
}

// lure picks a palette color other than c.
func (g *Game) lure(c string) string {
	if len(g.palette) < 2 {
		return c
	}
	for {
		if p := g.palette[g.Rand.IntN(len(g.palette))]; p != c {
			return p
		}
	}
}

func (g *Game) spawn() {
	g.counter++
	if len(g.live) >= MaxLive {
		return
	}
	g.HUD.Scorer.ResetRound()

	pick := g.pool[g.Rand.IntN(len(g.pool))]
	display := g.lure(pick.Color)
	if g.counter%g.factor == 0 {
		display = pick.Color
	}

	w := charWidth*float64(len([]rune(pick.Text))) + 2*wordPad
	h := wordHeight + 2*wordPad
	placed := make([]placement.Rect, len(g.live))
	for i, l := range g.live {
		placed[i] = l.rect
	}
	rect, err := g.placer.Place(Area, w, h, placed)
	if err != nil {
		g.Log.Debug().Err(err).Str("word", pick.Text).Msg("spawn skipped")
		return
	}

	g.nextID++
	wd := &word{id: g.nextID, text: pick.Text, color: pick.Color, display: display, rect: rect}
	life := FadeIn + time.Duration(g.data.DurationVisibility)*time.Millisecond + FadeOut
	wd.expire = g.After(life, func() { g.remove(wd) })
	g.live = append(g.live, wd)
}

func (g *Game) remove(wd *word) {
	wd.expire.Stop()
	g.live = slices.DeleteFunc(g.live, func(l *word) bool { return l == wd })
}

// Select clicks the live word with ID target. Words that already left the
// board are ignored.
func (g *Game) Select(target int) (core.Outcome, error) {
	switch g.State() {
	case scene.StateIdle, scene.StateCountdown, scene.StateGameOver:
		return core.OutcomeIgnored, nil
	}
	i := slices.IndexFunc(g.live, func(l *word) bool { return l.id == target })
	if i < 0 {
		return core.OutcomeIgnored, nil
	}
	wd := g.live[i]
	g.remove(wd)
	if wd.display == wd.color {
		won := g.HUD.Scorer.Award()
		g.Log.Debug().Int("award", won).Int("score", g.Score()).Msg("correct word")
		return core.OutcomeSuccess, nil
	}
	g.Feedback(scene.StateFailure, scene.WrongOverlay, func() {
		if !g.LoseHeart() {
			g.SetState(scene.StateRoundActive)
		}
	})
	return core.OutcomeFailure, nil
}

func (g *Game) Snapshot() core.Snapshot {
	b := Board{Area: Area, Words: make([]WordView, 0, len(g.live))}
	for _, l := range g.live {
		b.Words = append(b.Words, WordView{ID: l.id, Text: l.text, Color: l.display, Rect: l.rect})
	}
	return g.Stage.Snapshot(b)
}
