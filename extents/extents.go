// Package extents tracks the bounding box of everything drawn during a pass.
package extents

import (
	"fmt"
	"math"

	"github.com/akavel/polyclip-go"
)

// Sentinel is the magnitude of the initial, inverted box.
var Sentinel = math.Inf(1)

// Extents is a running bounding box. It only grows until Reset.
type Extents struct {
	box polyclip.Rectangle
}

func New() *Extents {
	e := new(Extents)
	e.Reset()
	return e
}

// Reset restores the inverted sentinel box (+Inf, +Inf, -Inf, -Inf).
func (e *Extents) Reset() {
	e.box = polyclip.Rectangle{
		Min: polyclip.Point{X: Sentinel, Y: Sentinel},
		Max: polyclip.Point{X: -Sentinel, Y: -Sentinel},
	}
}

func (e *Extents) UpdatePoint(x, y float64) {
	if x < e.box.Min.X {
		e.box.Min.X = x
	}
	if y < e.box.Min.Y {
		e.box.Min.Y = y
	}
	if x > e.box.Max.X {
		e.box.Max.X = x
	}
	if y > e.box.Max.Y {
		e.box.Max.Y = y
	}
}

// UpdateRect accepts the corners in any order.
func (e *Extents) UpdateRect(x1, y1, x2, y2 float64) {
	e.UpdatePoint(x1, y1)
	e.UpdatePoint(x2, y2)
}

// UpdateCircle grows the box by a circle of radius r stroked with thickness t.
func (e *Extents) UpdateCircle(x, y, r, t float64) {
	d := r + t/2
	e.UpdateRect(x-d, y-d, x+d, y+d)
}

// UpdateLine grows the box by the segment box padded by the full thickness t.
func (e *Extents) UpdateLine(x1, y1, x2, y2, t float64) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	e.UpdateRect(x1-t, y1-t, x2+t, y2+t)
}

// UpdateContour grows the box by the bounding box of a polygon.
func (e *Extents) UpdateContour(c polyclip.Contour) {
	if len(c) == 0 {
		return
	}
	bb := c.BoundingBox()
	e.UpdateRect(bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)
}

// Bounds returns xmin, ymin, xmax, ymax.
func (e *Extents) Bounds() (float64, float64, float64, float64) {
	return e.box.Min.X, e.box.Min.Y, e.box.Max.X, e.box.Max.Y
}

// Rect returns a copy of the box.
func (e *Extents) Rect() polyclip.Rectangle {
	return e.box
}

// IsEmpty reports whether nothing was recorded since the last Reset.
func (e *Extents) IsEmpty() bool {
	return e.box.Min.X > e.box.Max.X || e.box.Min.Y > e.box.Max.Y
}

func (e *Extents) String() string {
	if e.IsEmpty() {
		return "extents: <empty>"
	}
	return fmt.Sprintf("extents: (%.4f, %.4f) - (%.4f, %.4f)",
		e.box.Min.X, e.box.Min.Y, e.box.Max.X, e.box.Max.Y)
}
