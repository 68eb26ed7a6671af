package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/claimflow/internal/i18n"
	"github.com/Veraticus/claimflow/internal/model"
)

// TimeLayout is used for every timestamp shown to the user.
const TimeLayout = "2006-01-02 15:04"

// FormatAmount renders an amount with its currency symbol when one exists,
// e.g. "$42.50", and falls back to "42.50 CHF".
func FormatAmount(a model.Amount, c model.Currency) string {
	if c == "" {
		return a.StringFixed(2)
	}
	sym := c.Symbol()
	if sym == "" || sym == string(c) {
		return a.Format(c)
	}
	return sym + a.StringFixed(2)
}

// FormatTime renders t in loc, or "-" for the zero time.
func FormatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimeLayout)
}

// MaskAccount keeps the last four characters of an account identifier.
func MaskAccount(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("•", len(s)-4) + s[len(s)-4:]
}

// TagLabels joins tag labels for display.
func TagLabels(tags []model.Tag) string {
	labels := make([]string, 0, len(tags))
	for _, t := range tags {
		label := t.Label
		if label == "" {
			label = t.ID
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}

// ClaimDetail renders the read-only fields of a claim in p's language. urls
// supplies download links for attachments; a missing entry is shown as
// unavailable.
func ClaimDetail(p *i18n.Printer, c *model.Claim, urls map[string]model.DownloadURL, loc *time.Location) string {
	var b strings.Builder

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(p.T(label)), value))
		b.WriteByte('\n')
	}

	b.WriteString(FormatTitle(c.Title))
	b.WriteByte('\n')
	row("Status", StatusBadge(p, c.Status))
	row("Amount", BoldStyle.Render(FormatAmount(c.Amount, c.Currency)))
	row("Expense at", FormatTime(c.ExpenseAt, loc))
	row("Recipient", c.Recipient)
	row("Description", c.Description)
	row("Tags", TagLabels(c.Tags))
	row("Bank", c.Payout.BankName)
	if c.Payout.IBAN != "" {
		row("IBAN", MaskAccount(c.Payout.IBAN))
	} else {
		row("Account", MaskAccount(c.Payout.AccountNumber))
	}
	row("SWIFT", c.Payout.SWIFT)
	row("Created", FormatTime(c.CreatedAt, loc))
	row("Updated", FormatTime(c.UpdatedAt, loc))

	if len(c.Photos) > 0 {
		b.WriteByte('\n')
		b.WriteString(BoldStyle.Render(PhotoIcon + " " + p.T("Attachments (%d)", len(c.Photos))))
		b.WriteByte('\n')
		for i, photo := range c.Photos {
			b.WriteString(fmt.Sprintf("  %d. %s", i+1, photo.Name()))
			if d, ok := urls[photo.ID]; ok && d.Available() {
				b.WriteString("  " + SubtleStyle.Render(d.URL))
			} else {
				b.WriteString("  " + WarningStyle.Render(p.T("link unavailable")))
			}
			b.WriteByte('\n')
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
