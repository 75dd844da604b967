// Package source defines the domain models for the music archive traversal.
package source

import (
	"strings"

	"github.com/vgmirror-cli/vgmirror/util"
)

// Console represents a hardware platform category under which games are grouped on the archive.
type Console struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (c Console) String() string {
	return c.Name
}

// Dirname returns the filesystem directory segment for the console.
// Names like "Game Boy / GBC" keep only the part before the slash.
func (c Console) Dirname() string {
	name := c.Name
	if idx := strings.Index(name, "/"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	return util.SanitizeFilename(name)
}
