package flowchart

import (
	"strings"

	"github.com/Veraticus/claimflow/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Styles maps cell classes to lipgloss styles.
type Styles struct {
	NodeCurrent lipgloss.Style
	NodeActive  lipgloss.Style
	NodeIdle    lipgloss.Style
	EdgeActive  lipgloss.Style
	EdgeIdle    lipgloss.Style
}

// DefaultStyles highlights the current node, colors the traversed path and
// dims everything else.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.Color("#7c3aed"), lipgloss.Color("#10b981"), lipgloss.Color("#737373"))
}

// NewStyles builds styles from three colors.
func NewStyles(current, active, idle lipgloss.TerminalColor) Styles {
	return Styles{
		NodeCurrent: lipgloss.NewStyle().Foreground(current).Bold(true),
		NodeActive:  lipgloss.NewStyle().Foreground(active),
		NodeIdle:    lipgloss.NewStyle().Foreground(idle),
		EdgeActive:  lipgloss.NewStyle().Foreground(active),
		EdgeIdle:    lipgloss.NewStyle().Foreground(idle).Faint(true),
	}
}

func (s *Styles) style(c Class) (lipgloss.Style, bool) {
	if s == nil {
		return lipgloss.Style{}, false
	}
	switch c {
	case ClassNodeCurrent:
		return s.NodeCurrent, true
	case ClassNodeActive:
		return s.NodeActive, true
	case ClassNodeIdle:
		return s.NodeIdle, true
	case ClassEdgeActive:
		return s.EdgeActive, true
	case ClassEdgeIdle:
		return s.EdgeIdle, true
	default:
		return lipgloss.Style{}, false
	}
}

// Render draws the part of the canvas inside v. A nil styles renders plain
// text. Trailing spaces are kept so every line has the view's width.
func (c *Canvas) Render(v View, styles *Styles) string {
	v = v.Clamp(c)
	lines := make([]string, 0, v.Height)
	for y := v.Y; y < v.Y+v.Height; y++ {
		lines = append(lines, c.renderLine(y, v.X, v.X+v.Width, styles))
	}
	return strings.Join(lines, "\n")
}

// renderLine styles runs of equally classed cells in one call.
func (c *Canvas) renderLine(y, from, to int, styles *Styles) string {
	var b strings.Builder
	var run []rune
	runClass := ClassBlank

	flush := func() {
		if len(run) == 0 {
			return
		}
		if st, ok := styles.style(runClass); ok {
			b.WriteString(st.Render(string(run)))
		} else {
			b.WriteString(string(run))
		}
		run = run[:0]
	}

	for x := from; x < to; x++ {
		cell := c.At(x, y)
		if cell.Class != runClass {
			flush()
			runClass = cell.Class
		}
		run = append(run, cell.Rune)
	}
	flush()
	return b.String()
}

// String renders the whole canvas without styles.
func (c *Canvas) String() string {
	return c.Render(View{Zoom: c.zoom}, nil)
}

// Text renders the full, unstyled chart for current at zoom.
func Text(current model.ClaimStatus, zoom Zoom) string {
	return Build(current, zoom).String()
}
