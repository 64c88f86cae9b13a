package service

import (
	"sync"

	ierr "github.com/oficinago/oficinago/internal/errors"
)

// Action names a user-triggered pipeline run
type Action string

const (
	ActionSubmit   Action = "submit"
	ActionShare    Action = "share"
	ActionDownload Action = "download"
	ActionRender   Action = "render"
)

// Interaction serializes user-triggered actions: only one may be in flight at
// a time, and the status text exists purely for user feedback, never for
// control flow.
type Interaction struct {
	mu         sync.Mutex
	busy       bool
	action     Action
	statusText string
}

func NewInteraction() *Interaction {
	return &Interaction{}
}

// Begin claims the machine for an action. A second concurrent action is
// rejected, mirroring disabled buttons while busy.
func (i *Interaction) Begin(action Action) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.busy {
		return ierr.NewErrorf("action %s already in flight", i.action).
			WithHint("Aguarde a ação atual terminar").
			Mark(ierr.ErrBusy)
	}
	i.busy = true
	i.action = action
	i.statusText = ""
	return nil
}

// SetStatus updates the user-facing milestone text
func (i *Interaction) SetStatus(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.statusText = text
}

// End returns the machine to Idle. Called in a deferred cleanup so the
// terminal transition happens regardless of which cascade tier was reached
// or whether anything errored.
func (i *Interaction) End() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.busy = false
	i.action = ""
	i.statusText = ""
}

// Snapshot reports the current state for the status endpoint
func (i *Interaction) Snapshot() (busy bool, action Action, statusText string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.busy, i.action, i.statusText
}
