package core

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrNoLevels       = errors.New("no levels defined, add at least one game level")
	ErrUnknownLevel   = errors.New("session requested a level that is not registered")
	ErrUnknownScene   = errors.New("scene not registered")
	ErrBadSceneTarget = errors.New("selection target out of range")
)

// Context aggregates a game's configuration, levels, scenes and the current
// play session. Scenes receive it directly through their factory.
type Context struct {
	Config      GameConfig
	Levels      []Level
	AssetsPath  string
	Session     SessionData
	CallbackURL string

	scenes map[string]SceneFactory
}

func newContext(cfg GameConfig) *Context {
	return &Context{
		Config:     cfg,
		AssetsPath: "assets/" + cfg.GameID,
		scenes:     make(map[string]SceneFactory),
	}
}

// clone copies the registry so per-play session data stays isolated.
func (c *Context) clone() *Context {
	out := *c
	out.Levels = slices.Clone(c.Levels)
	out.scenes = maps.Clone(c.scenes)
	return &out
}

// CurrentLevel resolves the session's level. Without a session level the
// first registered level is used.
func (c *Context) CurrentLevel() (Level, error) {
	if len(c.Levels) < 1 {
		return Level{}, ErrNoLevels
	}
	if c.Session.Level == 0 {
		return c.Levels[0], nil
	}
	for _, l := range c.Levels {
		if l.Value == c.Session.Level {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %d", ErrUnknownLevel, c.Session.Level)
}

// NextLevel returns the level after the current one, or the current level
// when it is the last.
func (c *Context) NextLevel() (Level, error) {
	cur, err := c.CurrentLevel()
	if err != nil {
		return Level{}, err
	}
	i := slices.IndexFunc(c.Levels, func(l Level) bool { return l.Value == cur.Value })
	if i == len(c.Levels)-1 {
		return cur, nil
	}
	return c.Levels[i+1], nil
}

// NewScene builds the scene registered under key.
func (c *Context) NewScene(key string, deps SceneDeps) (Scene, error) {
	f, ok := c.scenes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, key)
	}
	return f(c, deps)
}

// SceneKeys lists registered scene keys in sorted order.
func (c *Context) SceneKeys() []string {
	return slices.Sorted(maps.Keys(c.scenes))
}
