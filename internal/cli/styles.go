// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/claimflow/internal/i18n"
	"github.com/Veraticus/claimflow/internal/model"
)

var (
	// PrimaryColor is the main theme color (violet).
	PrimaryColor = lipgloss.Color("#7C3AED")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#10B981") // Green
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F59E0B") // Amber
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#EF4444") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#60A5FA") // Blue
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// LabelStyle is used for field labels in detail output.
	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(14)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// BadgeStyle is the base for status badges.
	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	ClaimIcon   = "🧾"
	LockIcon    = "🔒"
	PhotoIcon   = "📎"
	TagIcon     = "🏷️"
)

// statusColors maps each lifecycle state to its badge color.
var statusColors = map[model.ClaimStatus]lipgloss.Color{
	model.StatusSubmitted:     InfoColor,
	model.StatusApproved:      PrimaryColor,
	model.StatusPaid:          SuccessColor,
	model.StatusFinished:      SuccessColor,
	model.StatusRejected:      ErrorColor,
	model.StatusPaymentFailed: WarningColor,
	model.StatusWithdraw:      SubtleColor,
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the claim icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(ClaimIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// StatusBadge renders a colored status label in p's language.
func StatusBadge(p *i18n.Printer, s model.ClaimStatus) string {
	color, ok := statusColors[s]
	if !ok {
		color = SubtleColor
	}
	return BadgeStyle.Foreground(color).Render(p.Status(s))
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
