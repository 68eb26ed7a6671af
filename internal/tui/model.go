// Package tui is the interactive claim detail view.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/claimflow/internal/detail"
	"github.com/Veraticus/claimflow/internal/flowchart"
	"github.com/Veraticus/claimflow/internal/i18n"
	"github.com/Veraticus/claimflow/internal/lifecycle"
	"github.com/Veraticus/claimflow/internal/tui/themes"
)

// chartChrome is the space the chart border takes on each axis.
const chartChrome = 2

// Model holds the detail view state. Claim data always comes from the
// controller snapshot; the model only adds presentation state.
type Model struct {
	ctx         context.Context
	ctrl        *detail.Controller
	canvas      *flowchart.Canvas
	theme       themes.Theme
	tr          *i18n.Printer
	config      Config
	snap        detail.Snapshot
	chartStyles flowchart.Styles
	keymap      KeyMap
	help        help.Model
	spinner     spinner.Model
	password    textinput.Model
	chart       flowchart.View
	flash       string
	confirm     lifecycle.Action
	width       int
	height      int
	selected    int
	focus       Focus
	flashErr    bool
	quitting    bool
}

// newModel creates a model for ctrl. ctx bounds every command the view starts.
func newModel(ctx context.Context, ctrl *detail.Controller, cfg Config) Model {
	pw := textinput.New()
	pw.Placeholder = cfg.Printer.T("claim password")
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.CharLimit = 256
	pw.Prompt = "› "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = sp.Style.Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:         ctx,
		ctrl:        ctrl,
		config:      cfg,
		theme:       cfg.Theme,
		tr:          cfg.Printer,
		chartStyles: cfg.Theme.Flowchart(),
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		password:    pw,
		chart:       flowchart.NewView(0, 0),
		snap:        ctrl.Snapshot(),
	}
	m.resize(cfg.Width, cfg.Height)
	return m
}

// Init starts the spinner and the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateChangedMsg:
		return m, m.sync()

	case actionDoneMsg:
		m.handleActionDone(msg)
		return m, m.sync()

	case passwordStoredMsg:
		m.setFlash(m.tr.Text(msg.err.Error()), true)
		return m, m.sync()

	case openedMsg:
		if msg.err != nil {
			m.setFlash(m.tr.T("Could not open %s: %v", msg.name, m.tr.Text(msg.err.Error())), true)
		} else {
			m.setFlash(m.tr.T("Opened %s", msg.name), false)
		}
		return m, m.sync()

	case copiedMsg:
		if msg.err != nil {
			m.setFlash(m.tr.T("Could not copy %s: %v", m.tr.Text(msg.what), msg.err), true)
		} else {
			m.setFlash(m.tr.T("Copied %s", m.tr.Text(msg.what)), false)
		}
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	}

	return m, nil
}

// sync takes a fresh snapshot and adjusts presentation state to it.
func (m *Model) sync() tea.Cmd {
	m.snap = m.ctrl.Snapshot()

	switch m.snap.Phase {
	case detail.PhasePasswordRequired:
		m.confirm = ""
		if !m.password.Focused() {
			m.password.Reset()
			return m.password.Focus()
		}
		return nil
	case detail.PhaseContent:
		m.password.Blur()
		photos := len(m.snap.Claim.Photos)
		m.selected = min(m.selected, max(photos-1, 0))
		if m.canvas == nil || m.canvas.Current() != m.snap.Claim.Status {
			m.rebuildChart(true)
		}
		if m.confirm != "" && !m.snap.Actions[m.confirm] {
			m.confirm = ""
		}
	default:
		m.password.Blur()
		m.confirm = ""
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return tea.Quit
	}

	if m.snap.Phase == detail.PhasePasswordRequired {
		return m.handlePasswordKey(msg)
	}
	if m.confirm != "" {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keymap.Refresh):
		if m.snap.Phase == detail.PhaseLoading {
			return nil
		}
		m.flash = ""
		return m.load()
	}

	if m.snap.Phase != detail.PhaseContent {
		return nil
	}
	return m.handleContentKey(msg)
}

func (m *Model) handleContentKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.ToggleView):
		if m.focus == FocusChart {
			m.focus = FocusAttachments
		} else {
			m.focus = FocusChart
		}
	case key.Matches(msg, m.keymap.Up):
		if m.focus == FocusChart {
			m.panChart(0, -1)
			return nil
		}
		return m.moveSelection(-1)
	case key.Matches(msg, m.keymap.Down):
		if m.focus == FocusChart {
			m.panChart(0, 1)
			return nil
		}
		return m.moveSelection(1)
	case key.Matches(msg, m.keymap.Left):
		m.panChart(-4, 0)
	case key.Matches(msg, m.keymap.Right):
		m.panChart(4, 0)
	case key.Matches(msg, m.keymap.ZoomIn):
		m.chart = m.chart.ZoomIn()
		m.rebuildChart(true)
	case key.Matches(msg, m.keymap.ZoomOut):
		m.chart = m.chart.ZoomOut()
		m.rebuildChart(true)
	case key.Matches(msg, m.keymap.Center):
		m.rebuildChart(true)
	case key.Matches(msg, m.keymap.Open):
		return m.openSelected()
	case key.Matches(msg, m.keymap.Withdraw):
		m.requestAction(lifecycle.ActionWithdraw)
	case key.Matches(msg, m.keymap.Finish):
		m.requestAction(lifecycle.ActionConfirmFinish)
	case key.Matches(msg, m.keymap.CopyLink):
		return m.copyLink()
	case key.Matches(msg, m.keymap.CopyID):
		return m.copyText("claim id", m.snap.ClaimID)
	}
	return nil
}

func (m *Model) handlePasswordKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		value := m.password.Value()
		if value == "" {
			m.setFlash(m.tr.T("Enter the claim password or press Esc to cancel"), true)
			return nil
		}
		m.flash = ""
		m.password.Reset()
		m.password.Blur()
		return m.submitPassword(value)
	case key.Matches(msg, m.keymap.Cancel):
		m.password.Reset()
		m.password.Blur()
		m.ctrl.CancelPassword()
		return m.sync()
	}

	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		action := m.confirm
		m.confirm = ""
		return m.perform(action)
	case key.Matches(msg, m.keymap.Decline):
		m.confirm = ""
		m.setFlash(m.tr.T("Cancelled"), false)
	}
	return nil
}

func (m *Model) requestAction(a lifecycle.Action) {
	switch {
	case m.snap.Busy:
		m.setFlash(m.tr.Text(detail.ErrActionInProgress.Error()), true)
	case !m.snap.Actions[a]:
		m.setFlash(m.tr.T("%s is not available for a %s claim", m.actionTitle(a), m.tr.Status(m.snap.Claim.Status)), true)
	default:
		m.flash = ""
		m.confirm = a
	}
}

func (m *Model) handleActionDone(msg actionDoneMsg) {
	switch {
	case msg.err == nil:
		m.setFlash(m.actionDoneText(msg.action), false)
	case errors.Is(msg.err, detail.ErrActionNotAllowed), errors.Is(msg.err, detail.ErrActionInProgress):
		m.setFlash(m.tr.Text(msg.err.Error()), true)
	default:
		// The controller records API failures in the snapshot.
		m.flash = ""
	}
}

func (m *Model) moveSelection(delta int) tea.Cmd {
	photos := m.snap.Claim.Photos
	if len(photos) == 0 {
		return nil
	}
	next := min(max(m.selected+delta, 0), len(photos)-1)
	if next == m.selected {
		return nil
	}
	m.selected = next
	return m.ensureFresh(photos[next].ID)
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.password.Width = min(40, max(width-8, 10))
	m.rebuildChart(false)
}

// chartSize is the viewport the chart may use inside its border.
func (m *Model) chartSize() (int, int) {
	w := max(m.width-chartChrome-2, 10)
	h := max(m.height-22, 5)
	return w, h
}

// rebuildChart redraws the canvas for the current status and zoom. With
// recenter the window scrolls to the current node.
func (m *Model) rebuildChart(recenter bool) {
	if m.snap.Claim == nil {
		return
	}
	status := m.snap.Claim.Status
	if m.canvas == nil || m.canvas.Current() != status || m.canvas.Zoom() != m.chart.Zoom {
		m.canvas = flowchart.Build(status, m.chart.Zoom)
		recenter = true
	}
	m.chart.Width, m.chart.Height = m.chartSize()
	if recenter {
		m.chart = m.chart.Focus(m.canvas, status)
		return
	}
	m.chart = m.chart.Clamp(m.canvas)
}

func (m *Model) panChart(dx, dy int) {
	if m.canvas == nil {
		return
	}
	m.chart = m.chart.Pan(dx, dy)
	m.chart.Width, m.chart.Height = m.chartSize()
	m.chart = m.chart.Clamp(m.canvas)
}

func (m Model) actionTitle(a lifecycle.Action) string {
	switch a {
	case lifecycle.ActionWithdraw:
		return m.tr.T("Withdraw")
	case lifecycle.ActionConfirmFinish:
		return m.tr.T("Confirm receipt")
	}
	return string(a)
}

func (m Model) actionDoneText(a lifecycle.Action) string {
	switch a {
	case lifecycle.ActionWithdraw:
		return m.tr.T("Claim withdrawn")
	case lifecycle.ActionConfirmFinish:
		return m.tr.T("Receipt confirmed, claim finished")
	}
	return m.tr.T("Claim updated")
}
