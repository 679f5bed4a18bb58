/*
 Drawing surface used by the interpreter
*/
package plotter

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

func (lc LineCap) String() string {
	switch lc {
	case LineCapButt:
		return "butt cap"
	case LineCapRound:
		return "round cap"
	case LineCapSquare:
		return "square cap"
	default:
	}
	return "Unknown line cap"
}

/*
	Canvas receives everything the interpreter draws. Coordinates are in
	points with y growing upwards.
*/
type Canvas interface {
	SetFillColor(c gg.RGBA)
	SetStrokeColor(c gg.RGBA)
	SetLineWidth(w float64)
	SetLineCap(lc LineCap)
	LineWidth() float64
	LineCap() LineCap

	// saves and restores colors, width and cap
	SaveState()
	RestoreState()

	FillPath(p *Path)
	StrokePath(p *Path)
	FillCircle(x, y, r float64)
	StrokeCircle(x, y, r float64)
	Line(x1, y1, x2, y2 float64)
	// x, y is the lower left corner
	Rect(x, y, w, h float64)
	RoundRect(x, y, w, h, r float64)

	// finishes the current page and starts a new one
	ShowPage()
}

/*
	Drawing statistic
*/
type Stats struct {
	Fills   int
	Strokes int
	Pages   int
}

func (s Stats) String() string {
	return "fills: " + strconv.Itoa(s.Fills) + ", strokes: " + strconv.Itoa(s.Strokes) +
		", pages: " + strconv.Itoa(s.Pages)
}

type PathOp int

const (
	OpMoveTo PathOp = iota + 1
	OpLineTo
	OpArc
	OpClose
)

func (op PathOp) String() string {
	switch op {
	case OpMoveTo:
		return "moveto"
	case OpLineTo:
		return "lineto"
	case OpArc:
		return "arc"
	case OpClose:
		return "close"
	default:
	}
	return "Unknown path operation"
}

// PathElement is a path step. Arcs use X, Y as the center, angles in degrees,
// a negative Extent runs clockwise.
type PathElement struct {
	Op     PathOp
	X, Y   float64
	R      float64
	Start  float64
	Extent float64
}

type Path struct {
	elems []PathElement
}

func NewPath() *Path {
	return &Path{elems: make([]PathElement, 0, 8)}
}

func (p *Path) MoveTo(x, y float64) {
	p.elems = append(p.elems, PathElement{Op: OpMoveTo, X: x, Y: y})
}

func (p *Path) LineTo(x, y float64) {
	p.elems = append(p.elems, PathElement{Op: OpLineTo, X: x, Y: y})
}

// ArcTo continues the path along an arc of the circle (cx, cy, r).
func (p *Path) ArcTo(cx, cy, r, startDeg, extentDeg float64) {
	p.elems = append(p.elems, PathElement{Op: OpArc, X: cx, Y: cy, R: r, Start: startDeg, Extent: extentDeg})
}

func (p *Path) Close() {
	p.elems = append(p.elems, PathElement{Op: OpClose})
}

func (p *Path) Elements() []PathElement {
	return p.elems
}

func (p *Path) Empty() bool {
	return p == nil || len(p.elems) == 0
}

func (p *Path) Len() int {
	return len(p.elems)
}

/*
	Cubic Bezier approximation of arcs
*/
type CubicSegment struct {
	X0, Y0 float64
	X1, Y1 float64
	X2, Y2 float64
	X3, Y3 float64
}

// ArcSegments splits an arc into cubic segments of at most 90 degrees.
func ArcSegments(cx, cy, r, startDeg, extentDeg float64) []CubicSegment {
	n := int(math.Ceil(math.Abs(extentDeg) / 90.0))
	if n == 0 || r <= 0 {
		return nil
	}
	step := mgl64.DegToRad(extentDeg) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a1 := mgl64.DegToRad(startDeg)
	segs := make([]CubicSegment, 0, n)
	for i := 0; i < n; i++ {
		a2 := a1 + step
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		cos2, sin2 := math.Cos(a2), math.Sin(a2)
		seg := CubicSegment{
			X0: cx + r*cos1, Y0: cy + r*sin1,
			X3: cx + r*cos2, Y3: cy + r*sin2,
		}
		seg.X1 = seg.X0 - k*r*sin1
		seg.Y1 = seg.Y0 + k*r*cos1
		seg.X2 = seg.X3 + k*r*sin2
		seg.Y2 = seg.Y3 - k*r*cos2
		segs = append(segs, seg)
		a1 = a2
	}
	return segs
}
