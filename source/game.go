// Package source defines the domain models for the music archive traversal.
package source

import (
	"path/filepath"

	"github.com/vgmirror-cli/vgmirror/util"
)

// Game represents a single soundtrack entry belonging to exactly one console.
type Game struct {
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Console Console `json:"console"`
}

func (g Game) String() string {
	return g.Name
}

// Dirname returns the filesystem directory segment for the game.
func (g Game) Dirname() string {
	return util.SanitizeFilename(g.Name)
}

// Dir resolves the game's local directory under the given downloads root.
func (g Game) Dir(root string) string {
	return filepath.Join(root, g.Console.Dirname(), g.Dirname())
}
