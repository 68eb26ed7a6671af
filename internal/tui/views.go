package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/detail"
	"github.com/Veraticus/claimflow/internal/lifecycle"
	"github.com/Veraticus/claimflow/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.snap.Phase {
	case detail.PhaseLoading:
		content = m.renderLoading()
	case detail.PhasePasswordRequired:
		content = m.renderPassword()
	case detail.PhaseError:
		content = m.renderError()
	default:
		content = m.renderContent()
	}

	return m.theme.Box.Render(content)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(cli.ClaimIcon+" "+m.tr.T("Claim %s", m.snap.ClaimID)),
		m.spinner.View()+" "+m.tr.T("Loading claim..."),
	)
}

// renderPassword shows the prompt alone; no claim data is rendered here.
func (m Model) renderPassword() string {
	lines := []string{
		m.theme.Title.Render(cli.LockIcon + " " + m.tr.T("Password required")),
		m.theme.Italic.Render(m.tr.T("Claim %s is protected. Enter its password to continue.", m.snap.ClaimID)),
		"",
		m.password.View(),
	}
	if m.snap.WrongPassword {
		lines = append(lines, "", m.theme.StatusError.Render(cli.ErrorIcon+" "+m.tr.T("Wrong password, try again.")))
	}
	if m.flash != "" {
		lines = append(lines, "", m.renderFlash())
	}
	prompt := m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.JoinVertical(lipgloss.Left, prompt, "", m.help.View(promptHelp{k: m.keymap}))
}

func (m Model) renderError() string {
	lines := []string{
		m.theme.Title.Render(cli.ClaimIcon + " " + m.tr.T("Claim %s", m.snap.ClaimID)),
		m.theme.StatusError.Render(cli.ErrorIcon + " " + m.tr.Text(m.snap.Err)),
		"",
		m.theme.StatusPending.Render(m.tr.T("Press r to retry or q to quit.")),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderContent() string {
	claim := m.snap.Claim
	sections := []string{
		m.renderHeader(claim),
		m.renderFields(claim),
		m.renderChart(),
		m.renderAttachments(claim),
		m.renderActions(),
	}
	if m.flash != "" {
		sections = append(sections, m.renderFlash())
	}
	sections = append(sections, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(claim *model.Claim) string {
	header := m.theme.Title.UnsetMargins().Render(claim.Title) + "  " +
		m.theme.StatusStyle(claim.Status).Render(m.tr.Status(claim.Status))
	if meter := m.renderMeter(claim.Status); meter != "" {
		header += "  " + meter
	}
	if m.snap.Refreshing {
		header += "  " + m.spinner.View()
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.theme.StatusPending.Render("ID ")+m.theme.Code.Render(claim.ID),
	)
}

// renderMeter shows how far along the main path a claim is, e.g. "■■□□ 2/4".
// Claims on a side branch get no meter.
func (m Model) renderMeter(status model.ClaimStatus) string {
	pos := lifecycle.MainIndex(status)
	if pos < 0 {
		return ""
	}
	total := len(lifecycle.MainPath)
	return m.theme.ProgressFull.Render(strings.Repeat("■", pos+1)) +
		m.theme.ProgressEmpty.Render(strings.Repeat("□", total-pos-1)) +
		" " + m.theme.ProgressBar.Render(fmt.Sprintf("%d/%d", pos+1, total))
}

func (m Model) renderFields(claim *model.Claim) string {
	var rows []string
	row := func(label, value string) {
		if value == "" {
			return
		}
		rows = append(rows, m.theme.Label.Render(m.tr.T(label))+m.theme.Normal.Render(value))
	}

	loc := m.config.Location
	row("Amount", cli.FormatAmount(claim.Amount, claim.Currency))
	row("Expense at", cli.FormatTime(claim.ExpenseAt, loc))
	row("Recipient", claim.Recipient)
	row("Description", claim.Description)
	if len(claim.Tags) > 0 {
		chips := make([]string, 0, len(claim.Tags))
		for _, t := range claim.Tags {
			chips = append(chips, m.theme.Tag(t))
		}
		rows = append(rows, m.theme.Label.Render(m.tr.T("Tags"))+strings.Join(chips, " "))
	}
	row("Created", cli.FormatTime(claim.CreatedAt, loc))
	row("Updated", cli.FormatTime(claim.UpdatedAt, loc))

	return lipgloss.NewStyle().MarginTop(1).Render(strings.Join(rows, "\n"))
}

func (m Model) renderChart() string {
	if m.canvas == nil {
		return ""
	}
	border := m.theme.Border
	if m.focus == FocusChart {
		border = m.theme.Primary
	}
	box := m.theme.RoundedBox.Padding(0).BorderForeground(border)
	title := m.theme.Subtitle.UnsetMargins().Render(m.tr.T("Progress")) +
		m.theme.StatusPending.Render("  "+m.tr.T("zoom: %s", m.chart.Zoom))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		title,
		box.Render(m.canvas.Render(m.chart, &m.chartStyles)),
	)
}

func (m Model) renderAttachments(claim *model.Claim) string {
	title := m.theme.Subtitle.UnsetMargins().Render(cli.PhotoIcon + " " + m.tr.T("Attachments (%d)", len(claim.Photos)))
	if len(claim.Photos) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, "", title, m.theme.StatusPending.Render("  "+m.tr.T("none")))
	}

	now := time.Now()
	lines := []string{"", title}
	for i, p := range claim.Photos {
		cursor := "  "
		name := m.theme.Normal.Render(p.Name())
		if i == m.selected {
			if m.focus == FocusAttachments {
				cursor = "› "
				name = m.theme.Selected.Render(p.Name())
			} else {
				name = m.theme.Highlighted.Render(p.Name())
			}
		}
		lines = append(lines, cursor+name+"  "+m.urlState(p.ID, now))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// urlState describes an attachment's download link.
func (m Model) urlState(photoID string, now time.Time) string {
	d, ok := m.snap.URL(photoID)
	switch {
	case !ok:
		return m.theme.StatusPending.Render(m.tr.T("resolving link..."))
	case !d.Available():
		return m.theme.StatusWarning.Render(m.tr.T("link unavailable"))
	case d.Stale(now, detail.DefaultStaleBuffer):
		return m.theme.StatusPending.Render(m.tr.T("refreshing link..."))
	case d.ExpiresAt.IsZero():
		return m.theme.StatusSuccess.Render(m.tr.T("ready"))
	default:
		return m.theme.StatusSuccess.Render(m.tr.T("ready")) + " " +
			m.theme.Italic.Render(m.tr.T("until %s", d.ExpiresAt.In(m.config.Location).Format("15:04")))
	}
}

func (m Model) renderActions() string {
	var parts []string
	for _, a := range []lifecycle.Action{lifecycle.ActionWithdraw, lifecycle.ActionConfirmFinish} {
		label := "[" + actionKey(a) + "] " + m.actionTitle(a)
		if m.snap.Actions[a] && !m.snap.Busy {
			parts = append(parts, m.theme.Bold.Render(label))
		} else {
			parts = append(parts, m.theme.StatusPending.Render(label))
		}
	}

	lines := []string{"", strings.Join(parts, "   ")}
	switch {
	case m.confirm != "":
		lines = append(lines, m.theme.StatusWarning.Render(m.confirmText(m.confirm)+" (y/n)"))
	case m.snap.Busy:
		lines = append(lines, m.spinner.View()+" "+m.tr.T("Updating claim..."))
	}
	if m.snap.ActionErr != "" {
		lines = append(lines, m.theme.StatusError.Render(cli.ErrorIcon+" "+m.tr.Text(m.snap.ActionErr)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFlash() string {
	if m.flashErr {
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.flash)
	}
	return m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.flash)
}

func (m Model) confirmText(a lifecycle.Action) string {
	if a == lifecycle.ActionWithdraw {
		return m.tr.T("Withdraw this claim? This cannot be undone.")
	}
	return m.tr.T("Confirm that you received the payout?")
}

func actionKey(a lifecycle.Action) string {
	if a == lifecycle.ActionWithdraw {
		return "w"
	}
	return "f"
}
