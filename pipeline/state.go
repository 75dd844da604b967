package pipeline

import (
	"github.com/vgmirror-cli/vgmirror/fetch"
	"github.com/vgmirror-cli/vgmirror/source"
)

// State tracks a game's progress through the download state machine.
type State string

const (
	StatePending         State = "PENDING"
	StateDirReconciled   State = "DIR_RECONCILED"
	StateCoverDone       State = "COVER_DONE"
	StateSkippedNoCover  State = "SKIPPED_NO_COVER"
	StateFormatSelected  State = "FORMAT_SELECTED"
	StateSkippedNoFormat State = "SKIPPED_NO_FORMAT"
	StateMusicDone       State = "MUSIC_DONE"
	StateFailed          State = "FAILED"
)

// Terminal reports whether the state ends a game's processing.
func (s State) Terminal() bool {
	switch s {
	case StateMusicDone, StateSkippedNoFormat, StateFailed:
		return true
	default:
		return false
	}
}

// Report is the terminal outcome of a single game's traversal step.
// Every game produces exactly one Report; no game's failure blocks another's
// processing.
type Report struct {
	Game  source.Game
	State State
	Fetch fetch.Status
	Err   error
}
