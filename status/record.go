package status

import (
	"fmt"

	"github.com/vgmirror-cli/vgmirror/source"
)

// Outcome classifies the terminal result of a game's download attempt.
type Outcome string

const (
	Done     Outcome = "done"
	Fail     Outcome = "fail"
	NoFormat Outcome = "no_format"
)

// Record represents a single game's download outcome preserved in the ledger.
type Record struct {
	Console     string  `json:"console"`
	Game        string  `json:"game"`
	URL         string  `json:"url"`
	Outcome     Outcome `json:"outcome"`
	Comment     string  `json:"comment"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Developer   string  `json:"developer,omitempty"`
	Publisher   string  `json:"publisher,omitempty"`
}

func (r *Record) key() string {
	return r.URL
}

func (r *Record) String() string {
	return fmt.Sprintf("%s / %s: %s", r.Console, r.Game, r.Outcome)
}

// NewRecord seeds a ledger record from a traversed game and its parsed page.
func NewRecord(game source.Game, page source.GamePage) *Record {
	return &Record{
		Console:     game.Console.Name,
		Game:        game.Name,
		URL:         game.URL,
		ReleaseDate: page.ReleaseDate,
		Developer:   page.Developer,
		Publisher:   page.Publisher,
	}
}
