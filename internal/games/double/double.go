// apps/go-server/internal/games/double/double.go
//
// Double: two plates of objects, exactly one object appears on both.
// Responsibilities:
//   - Deal nine distinct textures: five on the top plate, four plus a copy
//     of the fifth on the bottom plate, each at a random size.
//   - Scatter objects on each plate without overlap where room allows.
//   - Win the round when the two copies are selected one after the other.
// There are no hearts; only the clock ends the game.

package double

import (
	"errors"
	"fmt"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/placement"
	"github.com/robalobadob/minigames/apps/go-server/internal/scene"
)

const SceneKey = "game"

const (
	TextureCount = 9
	TopCount     = 5
	PlateSize    = 400.0
	PlatePad     = 30.0
)

var Config = core.GameConfig{
	GameID:      "double",
	DisplayName: "Double",
	Category:    core.CategoryAttention,
	TimerLimit:  45,
}

var ErrBadObjectSize = errors.New("double: objectSize needs 0 < min <= max")

// ObjectSize bounds an object's edge length.
type ObjectSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type LevelData struct {
	ObjectSize ObjectSize `json:"objectSize"`
}

// Object is one sprite on a plate.
type Object struct {
	ID       int            `json:"id"`
	Texture  string         `json:"texture"`
	Plate    int            `json:"plate"` // 1 top, 2 bottom
	Rect     placement.Rect `json:"rect"`
	Selected bool           `json:"selected"`
}

type Board struct {
	Plate   placement.Rect `json:"plate"`
	Objects []Object       `json:"objects"`
}

type Game struct {
	*scene.Stage

	data     LevelData
	placer   placement.Placer
	objects  []Object
	selected int // -1 when nothing is selected
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
	sz := data.ObjectSize
	if sz.Min <= 0 || sz.Max < sz.Min {
		return nil, fmt.Errorf("%w: got %d..%d", ErrBadObjectSize, sz.Min, sz.Max)
	}
	return &Game{
		Stage:    st,
		data:     data,
		placer:   placement.Placer{Rand: st.Rand},
		selected: -1,
	}, nil
}

// Texture names the sprite n (1-based) of level lv.
func Texture(lv, n int) string { return fmt.Sprintf("%d_object_%d", lv, n) }

func (g *Game) Begin() error {
	return g.Stage.Begin(func() {
		g.startRound()
		g.StartClock()
	})
}

func (g *Game) size() float64 {
	sz := g.data.ObjectSize
	return float64(sz.Min + g.Rand.IntN(sz.Max-sz.Min+1))
}

// deal lays out a fresh pair of plates.
func (g *Game) deal() {
	idx := g.Rand.Perm(TextureCount)
	g.objects = g.objects[:0]
	for i, n := range idx {
		plate := 1
		if i >= TopCount {
			plate = 2
		}
		g.objects = append(g.objects, Object{Texture: Texture(g.Level.Value, n+1), Plate: plate})
	}
	g.objects = append(g.objects, Object{Texture: g.objects[TopCount-1].Texture, Plate: 2})

	inner := placement.Rect{W: PlateSize, H: PlateSize}.Inset(PlatePad)
	var placed [3][]placement.Rect
	for i := range g.objects {
		o := &g.objects[i]
		o.ID = i
		s := g.size()
		r, err := g.placer.Place(inner, s, s, placed[o.Plate])
		if err != nil {
			g.Log.Debug().Err(err).Str("texture", o.Texture).Msg("object overlaps")
		}
		o.Rect = r
		placed[o.Plate] = append(placed[o.Plate], r)
	}
	g.selected = -1
}

func (g *Game) startRound() {
	g.HUD.Scorer.ResetRound()
	g.deal()
	g.SetState(scene.StateRoundActive)
}

// Select picks the object with ID target.
func (g *Game) Select(target int) (core.Outcome, error) {
	if !g.Accepting() {
		return core.OutcomeIgnored, nil
	}
	if target < 0 || target >= len(g.objects) {
		return core.OutcomeIgnored, fmt.Errorf("%w: %d", core.ErrBadSceneTarget, target)
	}
	prev := g.selected
	if prev < 0 || prev == target {
		g.selected = target
		return core.OutcomeProgress, nil
	}
	g.selected = -1
	if g.objects[prev].Texture != g.objects[target].Texture {
		g.Feedback(scene.StateFailure, scene.WrongOverlay, func() {
			g.SetState(scene.StateRoundActive)
		})
		return core.OutcomeFailure, nil
	}
	g.CompleteRound()
	g.Feedback(scene.StateSuccess, scene.RoundTransition, g.startRound)
	return core.OutcomeSuccess, nil
}

func (g *Game) Snapshot() core.Snapshot {
	if g.objects == nil {
		return g.Stage.Snapshot(nil)
	}
	b := Board{Plate: placement.Rect{W: PlateSize, H: PlateSize}, Objects: make([]Object, len(g.objects))}
	copy(b.Objects, g.objects)
	if g.selected >= 0 {
		b.Objects[g.selected].Selected = true
	}
	return g.Stage.Snapshot(b)
}
