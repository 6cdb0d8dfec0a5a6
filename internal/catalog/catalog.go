// apps/go-server/internal/catalog/catalog.go
//
// Registry of every playable game.
// Responsibilities:
//   - Bootstrap each game: validate its config, load embedded levels,
//     register its scenes.
//   - Launch a play: resolve the game from session data, merge the session
//     into a fresh Context and build the startup scene.

package catalog

import (
	"errors"
	"fmt"

	"github.com/robalobadob/minigames/apps/go-server/assets"
	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/games/anagram"
	"github.com/robalobadob/minigames/apps/go-server/internal/games/bugsequence"
	"github.com/robalobadob/minigames/apps/go-server/internal/games/colors"
	"github.com/robalobadob/minigames/apps/go-server/internal/games/double"
	"github.com/robalobadob/minigames/apps/go-server/internal/games/memo"
	"github.com/robalobadob/minigames/apps/go-server/internal/words"
)

var ErrUnknownGame = errors.New("unknown game")

// Definition describes one game before bootstrapping.
type Definition struct {
	Config   core.GameConfig
	SceneKey string
	Scene    core.SceneFactory
}

// Definitions lists the games in menu order.
func Definitions(anagramWords []string, colorWords []words.Colored) []Definition {
	return []Definition{
		{anagram.Config, anagram.SceneKey, anagram.New(anagramWords)},
		{bugsequence.Config, bugsequence.SceneKey, bugsequence.New},
		{double.Config, double.SceneKey, double.New},
		{colors.Config, colors.SceneKey, colors.New(colorWords)},
		{memo.Config, memo.SceneKey, memo.New},
	}
}

// Catalog holds one bootstrapped game per ID.
type Catalog struct {
	order []string
	games map[string]*core.Bootstrapper
}

// New bootstraps every definition, loading levels from the embedded assets.
func New(defs []Definition) (*Catalog, error) {
	c := &Catalog{games: make(map[string]*core.Bootstrapper, len(defs))}
	for _, d := range defs {
		b, err := core.NewBootstrapper(d.Config, d.SceneKey)
		if err != nil {
			return nil, err
		}
		f, err := assets.Levels(d.Config.GameID)
		if err != nil {
			return nil, fmt.Errorf("%s levels: %w", d.Config.GameID, err)
		}
		levels, err := core.LoadLevels(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Config.GameID, err)
		}
		b.AddLevels(levels)
		b.AddScene(d.SceneKey, d.Scene)
		c.Add(b)
	}
	return c, nil
}

// Add registers a bootstrapped game. A game ID already present is kept.
func (c *Catalog) Add(b *core.Bootstrapper) {
	id := b.Context().Config.GameID
	if _, ok := c.games[id]; ok {
		return
	}
	c.order = append(c.order, id)
	c.games[id] = b
}

// Games returns every game's config in registration order.
func (c *Catalog) Games() []core.GameConfig {
	out := make([]core.GameConfig, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.games[id].Context().Config)
	}
	return out
}

// Levels returns a game's registered levels.
func (c *Catalog) Levels(gameID string) ([]core.Level, error) {
	b, ok := c.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
	}
	return b.Context().Levels, nil
}

// Launch builds the startup scene of the game named by the session, with
// the session merged into a per-play Context.
func (c *Catalog) Launch(session core.SessionData, callbackURL string, deps core.SceneDeps) (*core.Context, core.Scene, error) {
	b, ok := c.games[session.GameID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownGame, session.GameID)
	}
	ctx, err := b.Init(session, callbackURL)
	if err != nil {
		return nil, nil, err
	}
	sc, err := ctx.NewScene(b.StartupScene(), deps)
	if err != nil {
		return nil, nil, err
	}
	return ctx, sc, nil
}
