package tui

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/claimflow/internal/detail"
	"github.com/Veraticus/claimflow/internal/lifecycle"
)

// errLinkUnavailable is reported when no download URL could be resolved.
var errLinkUnavailable = errors.New("download link unavailable")

// load fetches the claim through the controller.
func (m Model) load() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		if err := ctrl.Load(ctx); err != nil {
			slog.Debug("Claim load failed", "claim_id", ctrl.ID(), "error", err)
		}
		return stateChangedMsg{}
	}
}

// submitPassword stores the password and reloads. Load failures show up in
// the snapshot; only a storage failure needs its own message.
func (m Model) submitPassword(password string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		err := ctrl.SubmitPassword(ctx, password)
		if errors.Is(err, detail.ErrStorePassword) {
			slog.Error("Failed to store claim password", "claim_id", ctrl.ID(), "error", err)
			return passwordStoredMsg{err: err}
		}
		return stateChangedMsg{}
	}
}

// perform runs a status transition.
func (m Model) perform(action lifecycle.Action) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: ctrl.Perform(ctx, action)}
	}
}

// ensureFresh re-resolves an attachment URL when it is about to expire.
func (m Model) ensureFresh(photoID string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		ctrl.EnsureFresh(ctx, photoID)
		return stateChangedMsg{}
	}
}

// openSelected opens the focused attachment with a fresh URL.
func (m Model) openSelected() tea.Cmd {
	if m.snap.Claim == nil || len(m.snap.Claim.Photos) == 0 {
		return nil
	}
	photo := m.snap.Claim.Photos[m.selected]
	ctx, ctrl, open := m.ctx, m.ctrl, m.config.OpenURL
	return func() tea.Msg {
		d, ok := ctrl.EnsureFresh(ctx, photo.ID)
		if !ok {
			return openedMsg{name: photo.Name(), err: errLinkUnavailable}
		}
		slog.Debug("Opening attachment", "claim_id", ctrl.ID(), "photo_id", photo.ID)
		return openedMsg{name: photo.Name(), err: open(d.URL)}
	}
}

// copyLink copies the claim's web link, never including a password.
func (m Model) copyLink() tea.Cmd {
	link, err := detail.ShareLink(detail.ClaimLink(m.config.WebBaseURL, m.snap.ClaimID))
	if err != nil {
		return func() tea.Msg { return copiedMsg{what: "link", err: err} }
	}
	return m.copyText("link", link)
}

func (m Model) copyText(what, text string) tea.Cmd {
	write := m.config.Clipboard
	return func() tea.Msg {
		return copiedMsg{what: what, err: write(text)}
	}
}
