// Package flowchart draws the claim lifecycle graph as text.
//
// The graph is laid out left to right on a character canvas: the main path on
// one row, WITHDRAW above it and the failure branches below. Every cell is
// classified so a renderer can highlight the traversed path and the current
// status.
package flowchart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/claimflow/internal/model"
)

// Zoom selects label form and spacing.
type Zoom int

// Zoom levels.
const (
	ZoomCompact Zoom = iota
	ZoomNormal
	ZoomWide

	MinZoom     = ZoomCompact
	MaxZoom     = ZoomWide
	DefaultZoom = ZoomNormal
)

var zoomNames = [...]string{"compact", "normal", "wide"}

func (z Zoom) String() string {
	if z < MinZoom || z > MaxZoom {
		return fmt.Sprintf("Zoom(%d)", int(z))
	}
	return zoomNames[z]
}

// ParseZoom accepts a level name or its number (0-2).
func ParseZoom(s string) (Zoom, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range zoomNames {
		if s == name {
			return Zoom(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || Zoom(n) < MinZoom || Zoom(n) > MaxZoom {
		return DefaultZoom, fmt.Errorf("invalid zoom %q: want compact, normal, wide or 0-2", s)
	}
	return Zoom(n), nil
}

// In returns the next larger zoom level.
func (z Zoom) In() Zoom {
	if z >= MaxZoom {
		return MaxZoom
	}
	return z + 1
}

// Out returns the next smaller zoom level.
func (z Zoom) Out() Zoom {
	if z <= MinZoom {
		return MinZoom
	}
	return z - 1
}

func (z Zoom) clamp() Zoom {
	switch {
	case z < MinZoom:
		return MinZoom
	case z > MaxZoom:
		return MaxZoom
	default:
		return z
	}
}

type spacing struct {
	hgap int
	vgap int
}

func (z Zoom) spacing() spacing {
	switch z {
	case ZoomCompact:
		return spacing{hgap: 4, vgap: 1}
	case ZoomWide:
		return spacing{hgap: 10, vgap: 2}
	default:
		return spacing{hgap: 6, vgap: 1}
	}
}

var abbreviations = map[model.ClaimStatus]string{
	model.StatusSubmitted:     "SUB",
	model.StatusApproved:      "APR",
	model.StatusPaid:          "PAID",
	model.StatusFinished:      "FIN",
	model.StatusRejected:      "REJ",
	model.StatusPaymentFailed: "PFAIL",
	model.StatusWithdraw:      "WDR",
}

// Label returns the node text for s at zoom z. Out-of-range zooms are
// clamped to the nearest level, as in Build.
func Label(s model.ClaimStatus, z Zoom) string {
	switch z.clamp() {
	case ZoomCompact:
		if a, ok := abbreviations[s]; ok {
			return a
		}
		return string(s)
	case ZoomWide:
		return string(s)
	default:
		return s.Label()
	}
}

// slot is a node's grid position. Column 0 is SUBMITTED, row 0 the main path.
type slot struct {
	col int
	row int
}

var slots = map[model.ClaimStatus]slot{
	model.StatusSubmitted:     {0, 0},
	model.StatusApproved:      {1, 0},
	model.StatusPaid:          {2, 0},
	model.StatusFinished:      {3, 0},
	model.StatusWithdraw:      {1, -1},
	model.StatusPaymentFailed: {2, 1},
	model.StatusRejected:      {2, 2},
}

const (
	minRow    = -1
	boxHeight = 3
)

// Rect is a node's box on the canvas.
type Rect struct {
	X, Y, W, H int
}

// Right is the x of the box's right border.
func (r Rect) Right() int { return r.X + r.W - 1 }

// Bottom is the y of the box's bottom border.
func (r Rect) Bottom() int { return r.Y + r.H - 1 }

// MidY is the label row.
func (r Rect) MidY() int { return r.Y + r.H/2 }

// CenterX is the horizontal center column.
func (r Rect) CenterX() int { return r.X + r.W/2 }

func layout(statuses []model.ClaimStatus, z Zoom) (map[model.ClaimStatus]Rect, int, int) {
	boxW := 0
	for _, s := range statuses {
		if w := len([]rune(Label(s, z))) + 4; w > boxW {
			boxW = w
		}
	}
	sp := z.spacing()

	rects := make(map[model.ClaimStatus]Rect, len(statuses))
	width, height := 0, 0
	for _, s := range statuses {
		pos, ok := slots[s]
		if !ok {
			continue
		}
		r := Rect{
			X: pos.col * (boxW + sp.hgap),
			Y: (pos.row - minRow) * (boxHeight + sp.vgap),
			W: boxW,
			H: boxHeight,
		}
		rects[s] = r
		width = max(width, r.Right()+1)
		height = max(height, r.Bottom()+1)
	}
	return rects, width, height
}
