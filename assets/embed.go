package assets

import (
	"embed"
	"io/fs"
	"path"
)

// FS holds per-game data files under games/<gameId>/.
//
//go:embed games
var FS embed.FS

// Open opens a data file of one game.
func Open(gameID, name string) (fs.File, error) {
	return FS.Open(path.Join("games", gameID, name))
}

// Levels opens a game's levels.json.
func Levels(gameID string) (fs.File, error) {
	return Open(gameID, "levels.json")
}
