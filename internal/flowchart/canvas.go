package flowchart

import (
	"strings"

	"github.com/Veraticus/claimflow/internal/lifecycle"
	"github.com/Veraticus/claimflow/internal/model"
)

// Class tells a renderer how to style a cell.
type Class int

// Cell classes. Higher values win when a cell is drawn twice.
const (
	ClassBlank Class = iota
	ClassEdgeIdle
	ClassEdgeActive
	ClassNodeIdle
	ClassNodeActive
	ClassNodeCurrent
)

// Direction bits for line cells.
const (
	dirUp uint8 = 1 << iota
	dirDown
	dirLeft
	dirRight
)

const arrowHead = '▶'

var junctions = map[uint8]rune{
	dirLeft | dirRight:                   '─',
	dirLeft:                              '─',
	dirRight:                             '─',
	dirUp | dirDown:                      '│',
	dirUp:                                '│',
	dirDown:                              '│',
	dirDown | dirRight:                   '┌',
	dirDown | dirLeft:                    '┐',
	dirUp | dirRight:                     '└',
	dirUp | dirLeft:                      '┘',
	dirUp | dirDown | dirRight:           '├',
	dirUp | dirDown | dirLeft:            '┤',
	dirLeft | dirRight | dirDown:         '┬',
	dirLeft | dirRight | dirUp:           '┴',
	dirUp | dirDown | dirLeft | dirRight: '┼',
}

// Cell is one character of the canvas.
type Cell struct {
	Rune  rune
	Class Class
	dirs  uint8
	fixed bool
}

// Canvas is the laid-out graph for one current status and zoom level.
type Canvas struct {
	rects   map[model.ClaimStatus]Rect
	cells   [][]Cell
	current model.ClaimStatus
	width   int
	height  int
	zoom    Zoom
}

// Build lays out and draws the graph for current.
func Build(current model.ClaimStatus, zoom Zoom) *Canvas {
	zoom = zoom.clamp()
	graph := lifecycle.Annotate(current)

	statuses := make([]model.ClaimStatus, 0, len(graph.Nodes))
	for _, n := range graph.Nodes {
		statuses = append(statuses, n.Status)
	}
	rects, width, height := layout(statuses, zoom)

	c := &Canvas{
		rects:   rects,
		current: current,
		width:   width,
		height:  height,
		zoom:    zoom,
		cells:   make([][]Cell, height),
	}
	for y := range c.cells {
		c.cells[y] = make([]Cell, width)
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}

	for _, n := range graph.Nodes {
		c.drawNode(n)
	}
	for _, e := range graph.Edges {
		c.drawEdge(e)
	}
	c.resolveJunctions()
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Zoom returns the zoom level the canvas was built at.
func (c *Canvas) Zoom() Zoom {
	return c.zoom
}

// Current returns the highlighted status.
func (c *Canvas) Current() model.ClaimStatus {
	return c.current
}

// NodeRect returns the box of s.
func (c *Canvas) NodeRect(s model.ClaimStatus) (Rect, bool) {
	r, ok := c.rects[s]
	return r, ok
}

// At returns the cell at x, y, or a blank cell outside the canvas.
func (c *Canvas) At(x, y int) Cell {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

func nodeClass(n lifecycle.Node) Class {
	switch {
	case n.Current:
		return ClassNodeCurrent
	case n.Active:
		return ClassNodeActive
	default:
		return ClassNodeIdle
	}
}

func edgeClass(e lifecycle.GraphEdge) Class {
	if e.Active {
		return ClassEdgeActive
	}
	return ClassEdgeIdle
}

func (c *Canvas) drawNode(n lifecycle.Node) {
	r, ok := c.rects[n.Status]
	if !ok {
		return
	}
	class := nodeClass(n)

	for x := r.X; x <= r.Right(); x++ {
		var top, bottom uint8
		if x > r.X {
			top |= dirLeft
			bottom |= dirLeft
		}
		if x < r.Right() {
			top |= dirRight
			bottom |= dirRight
		}
		if x == r.X || x == r.Right() {
			top |= dirDown
			bottom |= dirUp
		}
		c.mark(x, r.Y, top, class)
		c.mark(x, r.Bottom(), bottom, class)
	}
	for y := r.Y + 1; y < r.Bottom(); y++ {
		c.mark(r.X, y, dirUp|dirDown, class)
		c.mark(r.Right(), y, dirUp|dirDown, class)
	}

	label := Label(n.Status, c.zoom)
	inner := r.W - 2
	pad := (inner - len([]rune(label))) / 2
	text := strings.Repeat(" ", pad) + label
	for i, ch := range []rune(text) {
		c.put(r.X+1+i, r.MidY(), ch, class)
	}
	for x := r.X + 1 + len([]rune(text)); x < r.Right(); x++ {
		c.put(x, r.MidY(), ' ', class)
	}
}

// drawEdge routes from the source box to an arrowhead left of the target box:
// straight right on the same row, otherwise vertically from the source's
// top or bottom border and then right.
func (c *Canvas) drawEdge(e lifecycle.GraphEdge) {
	src, ok1 := c.rects[e.From]
	dst, ok2 := c.rects[e.To]
	if !ok1 || !ok2 {
		return
	}
	class := edgeClass(e)
	endX, endY := dst.X-1, dst.MidY()

	var points [][2]int
	switch {
	case src.MidY() == endY:
		points = [][2]int{{src.Right(), endY}, {endX, endY}}
	case endY < src.Y:
		points = [][2]int{{src.CenterX(), src.Y}, {src.CenterX(), endY}, {endX, endY}}
	default:
		points = [][2]int{{src.CenterX(), src.Bottom()}, {src.CenterX(), endY}, {endX, endY}}
	}
	c.polyline(points, class)
	c.put(endX, endY, arrowHead, class)
}

// polyline connects orthogonal points. The first point sits on the source
// border and keeps its node class.
func (c *Canvas) polyline(points [][2]int, class Class) {
	for i := 0; i+1 < len(points); i++ {
		x0, y0 := points[i][0], points[i][1]
		x1, y1 := points[i+1][0], points[i+1][1]
		dx, dy := sign(x1-x0), sign(y1-y0)
		out, in := direction(dx, dy)
		for x, y := x0, y0; x != x1 || y != y1; x, y = x+dx, y+dy {
			c.mark(x, y, out, class)
			c.mark(x+dx, y+dy, in, class)
		}
	}
}

func direction(dx, dy int) (out, in uint8) {
	switch {
	case dx > 0:
		return dirRight, dirLeft
	case dx < 0:
		return dirLeft, dirRight
	case dy > 0:
		return dirDown, dirUp
	default:
		return dirUp, dirDown
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func (c *Canvas) mark(x, y int, dirs uint8, class Class) {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return
	}
	cell := &c.cells[y][x]
	if !cell.fixed {
		cell.dirs |= dirs
	}
	if class > cell.Class {
		cell.Class = class
	}
}

func (c *Canvas) put(x, y int, r rune, class Class) {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return
	}
	cell := &c.cells[y][x]
	cell.Rune = r
	cell.dirs = 0
	cell.fixed = true
	if class > cell.Class {
		cell.Class = class
	}
}

func (c *Canvas) resolveJunctions() {
	for y := range c.cells {
		for x := range c.cells[y] {
			cell := &c.cells[y][x]
			if cell.fixed || cell.dirs == 0 {
				continue
			}
			if r, ok := junctions[cell.dirs]; ok {
				cell.Rune = r
			}
		}
	}
}
