package tui

import "github.com/Veraticus/claimflow/internal/lifecycle"

// stateChangedMsg tells the model to take a fresh controller snapshot.
// It carries no state so late deliveries can never roll the view back.
type stateChangedMsg struct{}

// actionDoneMsg reports the outcome of a status transition.
type actionDoneMsg struct {
	err    error
	action lifecycle.Action
}

// openedMsg reports the outcome of opening an attachment in the browser.
type openedMsg struct {
	err  error
	name string
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	err  error
	what string
}

// passwordStoredMsg reports a credential store failure on submit.
type passwordStoredMsg struct {
	err error
}

// Focus selects which panel receives navigation keys.
type Focus int

// Panels.
const (
	FocusAttachments Focus = iota
	FocusChart
)
