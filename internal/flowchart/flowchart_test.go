package flowchart

import (
	"strings"
	"testing"

	"github.com/Veraticus/claimflow/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_Compact(t *testing.T) {
	lines := strings.Split(Text(model.StatusSubmitted, ZoomCompact), "\n")
	require.Len(t, lines, 15)

	want := map[int]string{
		0:  "             ┌───────┐                          ",
		1:  "    ┌───────▶│  WDR  │                          ",
		4:  "┌───┴───┐    ┌───────┐    ┌───────┐    ┌───────┐",
		5:  "│  SUB  ├───▶│  APR  ├───▶│ PAID  ├───▶│  FIN  │",
		6:  "└───┬───┘    └───┬───┘    └───────┘    └───────┘",
		9:  "    │            ├───────▶│ PFAIL │             ",
		13: "    └────────────┴───────▶│  REJ  │             ",
	}
	for i, line := range want {
		assert.Equal(t, line, lines[i], "line %d", i)
	}
}

func TestBuild_SizeGrowsWithZoom(t *testing.T) {
	w0, h0 := Build(model.StatusSubmitted, ZoomCompact).Size()
	w1, h1 := Build(model.StatusSubmitted, ZoomNormal).Size()
	w2, h2 := Build(model.StatusSubmitted, ZoomWide).Size()

	assert.Equal(t, 48, w0)
	assert.Equal(t, 15, h0)
	assert.Equal(t, 90, w1)
	assert.Equal(t, 15, h1)
	assert.Greater(t, w2, w1)
	assert.Greater(t, h2, h1)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "PFAIL", Label(model.StatusPaymentFailed, ZoomCompact))
	assert.Equal(t, "Payment failed", Label(model.StatusPaymentFailed, ZoomNormal))
	assert.Equal(t, "PAYMENT_FAILED", Label(model.StatusPaymentFailed, ZoomWide))
}

func TestLabel_ClampsOutOfRangeZoom(t *testing.T) {
	assert.Equal(t, Label(model.StatusPaymentFailed, ZoomWide), Label(model.StatusPaymentFailed, Zoom(42)))
	assert.Equal(t, Label(model.StatusPaymentFailed, ZoomCompact), Label(model.StatusPaymentFailed, Zoom(-3)))
	assert.Equal(t, "Zoom(42)", Zoom(42).String())

	w, h := Build(model.StatusSubmitted, Zoom(42)).Size()
	ww, wh := Build(model.StatusSubmitted, ZoomWide).Size()
	assert.Equal(t, ww, w)
	assert.Equal(t, wh, h)
}

func nodeClassOf(t *testing.T, c *Canvas, s model.ClaimStatus) Class {
	t.Helper()
	r, ok := c.NodeRect(s)
	require.True(t, ok)
	return c.At(r.X+1, r.MidY()).Class
}

func TestBuild_Classes(t *testing.T) {
	c := Build(model.StatusPaid, ZoomCompact)

	assert.Equal(t, ClassNodeActive, nodeClassOf(t, c, model.StatusSubmitted))
	assert.Equal(t, ClassNodeActive, nodeClassOf(t, c, model.StatusApproved))
	assert.Equal(t, ClassNodeCurrent, nodeClassOf(t, c, model.StatusPaid))
	assert.Equal(t, ClassNodeIdle, nodeClassOf(t, c, model.StatusFinished))
	assert.Equal(t, ClassNodeIdle, nodeClassOf(t, c, model.StatusRejected))
	assert.Equal(t, ClassNodeIdle, nodeClassOf(t, c, model.StatusWithdraw))

	// Main path edges up to the current node are active, the rest idle.
	assert.Equal(t, ClassEdgeActive, c.At(10, 5).Class, "SUBMITTED → APPROVED")
	assert.Equal(t, ClassEdgeActive, c.At(22, 5).Class, "APPROVED → PAID")
	assert.Equal(t, ClassEdgeIdle, c.At(36, 5).Class, "PAID → FINISHED")
	assert.Equal(t, ClassEdgeIdle, c.At(4, 2).Class, "SUBMITTED → WITHDRAW")
	assert.Equal(t, ClassEdgeIdle, c.At(20, 13).Class, "→ REJECTED")
	assert.Equal(t, ClassBlank, c.At(0, 0).Class)
}

func TestBuild_BranchCurrentOnlyHighlightsNode(t *testing.T) {
	c := Build(model.StatusRejected, ZoomCompact)

	assert.Equal(t, ClassNodeCurrent, nodeClassOf(t, c, model.StatusRejected))
	assert.Equal(t, ClassNodeIdle, nodeClassOf(t, c, model.StatusSubmitted))
	assert.Equal(t, ClassEdgeIdle, c.At(10, 5).Class)
	assert.Equal(t, ClassEdgeIdle, c.At(20, 13).Class)
}

func TestBuild_UnknownStatus(t *testing.T) {
	c := Build(model.StatusUnknown, ZoomNormal)
	for _, s := range []model.ClaimStatus{model.StatusSubmitted, model.StatusFinished, model.StatusWithdraw} {
		assert.Equal(t, ClassNodeIdle, nodeClassOf(t, c, s))
	}
}

func TestRender_View(t *testing.T) {
	c := Build(model.StatusSubmitted, ZoomCompact)

	assert.Equal(t, "│  SUB ", c.Render(View{X: 0, Y: 5, Width: 7, Height: 1}, nil))
	assert.Equal(t, "├───▶│", c.Render(View{X: 8, Y: 5, Width: 6, Height: 1}, nil))

	full := c.Render(View{}, nil)
	assert.Equal(t, c.String(), full)

	styles := DefaultStyles()
	styled := c.Render(View{Width: 20, Height: 3, Y: 4}, &styles)
	for _, line := range strings.Split(styled, "\n") {
		assert.Equal(t, 20, lipgloss.Width(line))
	}
}

func TestView_Clamp(t *testing.T) {
	c := Build(model.StatusSubmitted, ZoomCompact)

	v := View{X: 100, Y: -5, Width: 10, Height: 4}.Clamp(c)
	assert.Equal(t, View{X: 38, Y: 0, Width: 10, Height: 4}, v)

	v = View{Width: 500, Height: 500}.Clamp(c)
	assert.Equal(t, 48, v.Width)
	assert.Equal(t, 15, v.Height)
	assert.Zero(t, v.X)

	v = NewView(10, 3).Pan(5, 2).Pan(-1, 0)
	assert.Equal(t, 4, v.X)
	assert.Equal(t, 2, v.Y)
}

func TestView_Zoom(t *testing.T) {
	v := NewView(10, 3)
	assert.Equal(t, ZoomWide, v.ZoomIn().ZoomIn().ZoomIn().Zoom)
	assert.Equal(t, ZoomCompact, v.ZoomOut().ZoomOut().Zoom)
}

func TestView_Focus(t *testing.T) {
	c := Build(model.StatusFinished, ZoomCompact)
	v := View{Width: 9, Height: 3}.Focus(c, model.StatusFinished)

	assert.Equal(t, "│  FIN  │", strings.Split(c.Render(v, nil), "\n")[1])
}

func TestDOT(t *testing.T) {
	dot := DOT(model.StatusApproved)

	assert.True(t, strings.HasPrefix(dot, "digraph claim {"))
	assert.Contains(t, dot, "rankdir=LR;")
	assert.Contains(t, dot, `"APPROVED" [label="Approved", fillcolor="#7c3aed"`)
	assert.Contains(t, dot, `"SUBMITTED" [label="Submitted", fillcolor="#d1fae5"`)
	assert.Contains(t, dot, `"SUBMITTED" -> "APPROVED" [color="#10b981", penwidth=2];`)
	assert.Contains(t, dot, `"APPROVED" -> "PAID" [color="#a3a3a3", penwidth=1];`)
	assert.Equal(t, 7, strings.Count(dot, " -> "))
}

func TestParseZoom(t *testing.T) {
	tests := []struct {
		in      string
		want    Zoom
		wantErr bool
	}{
		{in: "compact", want: ZoomCompact},
		{in: " Wide ", want: ZoomWide},
		{in: "1", want: ZoomNormal},
		{in: "3", wantErr: true},
		{in: "huge", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseZoom(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Zoom {
	t.Helper()
	z, err := ParseZoom(s)
	require.NoError(t, err)
	return z
}
