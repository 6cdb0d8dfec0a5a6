// apps/go-server/internal/games/bugsequence/bugsequence.go
//
// Bug sequence: watch bugs light up one after another on a grid, then tap
// them back in the same order.
// Responsibilities:
//   - Pick a sequence of distinct cells and play the reveal.
//   - Validate taps in order; a wrong tap hides the progress so far.
//   - Keep the game clock paused while a sequence is being shown.
// There are no hearts; only the clock ends the game.

package bugsequence

import (
	"fmt"
	"slices"
	"time"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/scene"
)

const SceneKey = "game"

var Config = core.GameConfig{
	GameID:      "bugsequence",
	DisplayName: "Bug Sequence",
	Category:    core.CategoryMemory,
	TimerLimit:  45,
}

// Reveal timing around each bug.
const (
	RevealPause = time.Second // before the first bug
	RevealExtra = time.Second // added to the level's reveal duration
	HideBeat    = time.Second // hidden gap after each bug
)

// LevelData is the level's data payload. Zero fields take defaults.
type LevelData struct {
	SequenceLength int `json:"sequenceLength"`
	Rows           int `json:"rows"`
	Columns        int `json:"columns"`
	RevealDuration int `json:"revealDuration"` // ms
}

func (d LevelData) withDefaults() LevelData {
	if d.SequenceLength == 0 {
		d.SequenceLength = 3
	}
	if d.Rows == 0 {
		d.Rows = 6
	}
	if d.Columns == 0 {
		d.Columns = 4
	}
	if d.RevealDuration == 0 {
		d.RevealDuration = 1000
	}
	return d
}

// CellState is what a grid cell shows.
type CellState string

const (
	CellHidden CellState = "hidden"
	CellActive CellState = "active"
	CellWrong  CellState = "wrong"
)

type Board struct {
	Rows    int         `json:"rows"`
	Columns int         `json:"columns"`
	Cells   []CellState `json:"cells"`
}

type Game struct {
	*scene.Stage

	data     LevelData
	cells    []CellState
	sequence []int // cell indices in reveal order
	found    int   // sequence prefix tapped so far
	started  bool  // clock started after the first reveal
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
	n := data.Rows * data.Columns
	if data.SequenceLength > n {
		return nil, fmt.Errorf("bugsequence: sequence of %d does not fit %dx%d grid", data.SequenceLength, data.Rows, data.Columns)
	}
	g := &Game{Stage: st, data: data, cells: make([]CellState, n)}
	g.hideAll()
	return g, nil
}

func (g *Game) Begin() error { return g.Stage.Begin(g.startRound) }

func (g *Game) startRound() {
	g.HUD.Scorer.ResetRound()
	if g.started {
		g.PauseClock()
	}
	order := g.Rand.Perm(len(g.cells))
	g.sequence = order[:g.data.SequenceLength]
	g.found = 0
	g.hideAll()
	g.SetState(scene.StatePreparing)

	// Board enters, short pause, then each bug in turn.
	hold := time.Duration(g.data.RevealDuration)*time.Millisecond + RevealExtra
	at := scene.RoundTransition + RevealPause
	for _, c := range g.sequence {
		g.After(at, func() { g.cells[c] = CellActive })
		g.After(at+hold, func() { g.cells[c] = CellHidden })
		at += hold + HideBeat
	}
	g.After(at, g.openRound)
}

func (g *Game) openRound() {
	g.SetState(scene.StateRoundActive)
	if !g.started {
		g.started = true
		g.StartClock()
		return
	}
	g.ResumeClock()
}

func (g *Game) hideAll() {
	for i := range g.cells {
		g.cells[i] = CellHidden
	}
}

// Select taps the cell at index target (row-major).
func (g *Game) Select(target int) (core.Outcome, error) {
	if !g.Accepting() {
		return core.OutcomeIgnored, nil
	}
	if target < 0 || target >= len(g.cells) {
		return core.OutcomeIgnored, fmt.Errorf("%w: %d", core.ErrBadSceneTarget, target)
	}
	i := slices.Index(g.sequence, target)
	if i < 0 || i < g.found {
		return core.OutcomeIgnored, nil
	}
	if i != g.found {
		g.cells[target] = CellWrong
		g.Feedback(scene.StateFailure, scene.WrongOverlay, func() {
			g.hideAll()
			g.found = 0
			g.SetState(scene.StateRoundActive)
		})
		return core.OutcomeFailure, nil
	}

	g.cells[target] = CellActive
	g.found++
	if g.found < len(g.sequence) {
		return core.OutcomeProgress, nil
	}
	g.Feedback(scene.StateSuccess, scene.RoundTransition, func() {
		g.CompleteRound()
		g.After(scene.RoundTransition, g.startRound)
	})
	return core.OutcomeSuccess, nil
}

func (g *Game) Snapshot() core.Snapshot {
	return g.Stage.Snapshot(Board{
		Rows:    g.data.Rows,
		Columns: g.data.Columns,
		Cells:   slices.Clone(g.cells),
	})
}
