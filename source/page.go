// Package source defines the domain models for the music archive traversal.
package source

import "github.com/samber/mo"

// FormatOption is one available file encoding of a game's soundtrack.
type FormatOption struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

func (f FormatOption) String() string {
	return f.Label
}

// GamePage holds everything extracted from a single game's detail page.
// Cover is absent rather than empty when the page carries no cover art.
type GamePage struct {
	Cover   mo.Option[string]
	Formats []FormatOption

	ReleaseDate string
	Developer   string
	Publisher   string
}
