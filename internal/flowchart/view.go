package flowchart

import "github.com/Veraticus/claimflow/internal/model"

// View is a window onto the canvas. A zero Width or Height means the full
// canvas extent.
type View struct {
	X      int
	Y      int
	Width  int
	Height int
	Zoom   Zoom
}

// NewView returns a view of width x height at the default zoom.
func NewView(width, height int) View {
	return View{Width: width, Height: height, Zoom: DefaultZoom}
}

// Clamp fits v inside c: the window never exceeds the canvas and never
// scrolls past its edges.
func (v View) Clamp(c *Canvas) View {
	w, h := c.Size()
	if v.Width <= 0 || v.Width > w {
		v.Width = w
	}
	if v.Height <= 0 || v.Height > h {
		v.Height = h
	}
	v.X = min(max(v.X, 0), w-v.Width)
	v.Y = min(max(v.Y, 0), h-v.Height)
	return v
}

// Pan moves the window by dx, dy.
func (v View) Pan(dx, dy int) View {
	v.X += dx
	v.Y += dy
	return v
}

// ZoomIn increases the zoom level.
func (v View) ZoomIn() View {
	v.Zoom = v.Zoom.In()
	return v
}

// ZoomOut decreases the zoom level.
func (v View) ZoomOut() View {
	v.Zoom = v.Zoom.Out()
	return v
}

// Focus scrolls so the box of s is centered when it fits in the window.
func (v View) Focus(c *Canvas, s model.ClaimStatus) View {
	r, ok := c.NodeRect(s)
	if !ok {
		return v.Clamp(c)
	}
	v = v.Clamp(c)
	v.X = r.CenterX() - v.Width/2
	v.Y = r.MidY() - v.Height/2
	return v.Clamp(c)
}
