// apps/go-server/internal/games/anagram/anagram.go
//
// Anagram: spot the one true anagram of a word among four shuffles.
// Responsibilities:
//   - Letter-multiset comparison (Check) and shuffling helpers.
//   - Round flow: pick a word of the level's length, deal four choices,
//     award on the correct pick, charge a heart on a wrong one.

package anagram

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"strings"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/scene"
)

// SceneKey is the key the game scene is registered under.
const SceneKey = "game"

// ChoiceCount is the number of options offered each round.
const ChoiceCount = 4

var Config = core.GameConfig{
	GameID:      "anagram",
	DisplayName: "Anagram",
	Category:    core.CategoryAttention,
	TimerLimit:  45,
}

var ErrNoWords = errors.New("anagram: no words of the requested length")

// LevelData is the level's data payload.
type LevelData struct {
	WordLength int `json:"wordLength"`
}

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Check reports whether a and b use exactly the same letters. Characters
// outside [A-Za-z0-9_] are dropped and case is ignored.
func Check(a, b string) bool {
	return maps.Equal(charMap(a), charMap(b))
}

func charMap(s string) map[rune]int {
	m := make(map[rune]int, len(s))
	for _, r := range strings.ToLower(s) {
		if isWordChar(r) {
			m[r]++
		}
	}
	return m
}

func isWordChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_'
}

// Shuffle permutes the letters of word. With replaceLast the final letter
// of the permutation is swapped for a different random a-z letter, which
// guarantees the result is not an anagram of word.
func Shuffle(r *rand.Rand, word string, replaceLast bool) string {
	rs := []rune(word)
	scene.Shuffle(r, rs)
	if replaceLast && len(rs) > 0 {
		last := rs[len(rs)-1]
		for {
			c := rune(alphabet[r.IntN(len(alphabet))])
			if c != last {
				rs[len(rs)-1] = c
				break
			}
		}
	}
	return string(rs)
}

// Choices returns ChoiceCount options in random order: one plain shuffle
// and three with the last letter replaced.
func Choices(r *rand.Rand, word string) []string {
	out := make([]string, 0, ChoiceCount)
	for i := 0; i < ChoiceCount-1; i++ {
		out = append(out, Shuffle(r, word, true))
	}
	out = append(out, Shuffle(r, word, false))
	scene.Shuffle(r, out)
	return out
}

// Board is the game-specific part of a snapshot.
type Board struct {
	Word    string   `json:"word"`
	Choices []string `json:"choices"`
}

// Game is the anagram play scene.
type Game struct {
	*scene.Stage

	data    LevelData
	pool    []string
	word    string
	choices []string
}

// New returns a factory drawing words from list.
func New(list []string) core.SceneFactory {
	return func(ctx *core.Context, deps core.SceneDeps) (core.Scene, error) {
		st, err := scene.NewStage(SceneKey, ctx, deps)
		if err != nil {
			return nil, err
		}
		var data LevelData
		if err := st.Level.Decode(&data); err != nil {
			return nil, err
		}
		var pool []string
		for _, w := range list {
			if len([]rune(w)) == data.WordLength {
				pool = append(pool, w)
			}
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: %d", ErrNoWords, data.WordLength)
		}
		return &Game{Stage: st, data: data, pool: pool}, nil
	}
}

func (g *Game) Begin() error {
	return g.Stage.Begin(func() {
		g.startRound()
		g.StartClock()
	})
}

func (g *Game) startRound() {
	g.HUD.Scorer.ResetRound()
	g.word = g.pool[g.Rand.IntN(len(g.pool))]
	g.choices = Choices(g.Rand, g.word)
	g.SetState(scene.StateRoundActive)
}

// Select picks the choice at index target.
func (g *Game) Select(target int) (core.Outcome, error) {
	if !g.Accepting() {
		return core.OutcomeIgnored, nil
	}
	if target < 0 || target >= len(g.choices) {
		return core.OutcomeIgnored, fmt.Errorf("%w: %d", core.ErrBadSceneTarget, target)
	}
	if !Check(g.choices[target], g.word) {
		g.Feedback(scene.StateFailure, scene.WrongOverlay, func() {
			if !g.LoseHeart() {
				g.SetState(scene.StateRoundActive)
			}
		})
		return core.OutcomeFailure, nil
	}
	g.CompleteRound()
	g.Feedback(scene.StateSuccess, scene.RoundTransition, g.startRound)
	return core.OutcomeSuccess, nil
}

func (g *Game) Snapshot() core.Snapshot {
	if g.word == "" {
		return g.Stage.Snapshot(nil)
	}
	return g.Stage.Snapshot(Board{Word: g.word, Choices: g.choices})
}
